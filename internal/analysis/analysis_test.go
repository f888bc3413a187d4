package analysis

import (
	"math"
	"reflect"
	"testing"

	"github.com/iwvelando/rental-analysis/pkg/constants"
	"github.com/iwvelando/rental-analysis/pkg/mathutil"
)

func TestAnalyzeReferenceFixture(t *testing.T) {
	data := DefaultPropertyData()
	results := Analyze(data, DefaultAssumptions())

	if got := data.LoanAmount(); math.Abs(got-240000) > 1e-6 {
		t.Errorf("LoanAmount() = %.2f, expected 240000", got)
	}
	if data.NumPayments() != 360 || math.Abs(data.MonthlyRate()-0.07/12) > 1e-12 {
		t.Errorf("loan terms = %d payments at %.6f", data.NumPayments(), data.MonthlyRate())
	}

	tests := []struct {
		name      string
		got       float64
		expected  float64
		tolerance float64
	}{
		{"monthly mortgage", results.MonthlyMortgage, 1596.73, 0.005},
		{"total cash invested", results.TotalCashInvested, 63000, 1e-9},
		{"monthly property taxes", results.MonthlyPropertyTaxes, 300, 1e-9},
		{"monthly insurance", results.MonthlyInsurance, 100, 1e-9},
		{"monthly maintenance", results.MonthlyMaintenance, 250, 1e-9},
		{"vacancy loss", results.VacancyLoss, 240, 1e-9},
		{"management fee", results.ManagementFee, 300, 1e-9},
		{"total monthly expenses", results.TotalMonthlyExpenses, 2786.73, 0.01},
		{"monthly cash flow", results.MonthlyCashFlow, 213.27, 0.01},
		{"annual cash flow", results.AnnualCashFlow, 2559.24, 0.06},
		{"cash on cash return", results.CashOnCashReturn, 4.06, 0.01},
		{"monthly ROI", results.MonthlyROI, 0.3385, 0.001},
		{"year one total mortgage", results.Year1TotalMortgage, 19160.76, 0.06},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > tt.tolerance {
				t.Errorf("%s = %.4f, expected %.4f (tolerance %.4f)", tt.name, tt.got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestAnalyzeYearOneSplit(t *testing.T) {
	data := DefaultPropertyData()
	results := Analyze(data, DefaultAssumptions())
	loan := data.Loan()

	if math.Abs(results.Year1Principal+results.Year1Interest-results.Year1TotalMortgage) > 0.001 {
		t.Errorf("year one principal %.2f + interest %.2f != total mortgage %.2f",
			results.Year1Principal, results.Year1Interest, results.Year1TotalMortgage)
	}

	expectedPrincipal := loan.Balance(0) - loan.Balance(12)
	if math.Abs(results.Year1Principal-expectedPrincipal) > 0.001 {
		t.Errorf("Year1Principal = %.4f, expected %.4f", results.Year1Principal, expectedPrincipal)
	}

	expectedReturn := (results.AnnualCashFlow + results.Year1Principal) / results.TotalCashInvested * 100
	if math.Abs(results.Year1Return-expectedReturn) > 1e-9 {
		t.Errorf("Year1Return = %.4f, expected %.4f", results.Year1Return, expectedReturn)
	}
}

func TestAnalyzeZeroInvestment(t *testing.T) {
	data := DefaultPropertyData()
	data.PurchasePrice = 0
	data.ClosingCosts = 0

	results := Analyze(data, DefaultAssumptions())

	if results.TotalCashInvested != 0 {
		t.Fatalf("TotalCashInvested = %v, expected 0", results.TotalCashInvested)
	}
	if results.CashOnCashReturn != 0 {
		t.Errorf("CashOnCashReturn = %v, expected 0", results.CashOnCashReturn)
	}
	if results.Year1Return != 0 {
		t.Errorf("Year1Return = %v, expected 0", results.Year1Return)
	}
	if results.MonthlyROI != 0 {
		t.Errorf("MonthlyROI = %v, expected 0", results.MonthlyROI)
	}

	for _, row := range YearlyTable(data, DefaultAssumptions(), 2025) {
		if row.TotalReturnPercent != 0 || row.EquityMultiple != 0 {
			t.Errorf("row %d has non-zero ratios with nothing invested: %+v", row.Index, row)
		}
	}
}

func TestResultsFinite(t *testing.T) {
	if !Analyze(DefaultPropertyData(), DefaultAssumptions()).Finite() {
		t.Fatal("default results should be finite")
	}

	nan := Analyze(DefaultPropertyData(), DefaultAssumptions())
	nan.MonthlyMortgage = math.NaN()
	if nan.Finite() {
		t.Error("NaN payment reported as finite")
	}

	inf := Analyze(DefaultPropertyData(), DefaultAssumptions())
	inf.Year1Return = math.Inf(1)
	if inf.Finite() {
		t.Error("infinite return reported as finite")
	}
}

func TestAnalyzeZeroInterestRate(t *testing.T) {
	data := DefaultPropertyData()
	data.InterestRate = 0

	results := Analyze(data, DefaultAssumptions())

	if math.Abs(results.MonthlyMortgage-240000.0/360) > 1e-9 {
		t.Errorf("MonthlyMortgage = %.4f, expected straight-line %.4f", results.MonthlyMortgage, 240000.0/360)
	}
	if results.Year1Interest != 0 {
		t.Errorf("Year1Interest = %.4f, expected 0", results.Year1Interest)
	}
	for _, v := range []float64{results.CashOnCashReturn, results.Year1Return, results.MonthlyROI} {
		if !mathutil.IsFinite(v) {
			t.Errorf("expected finite return metrics, got %v", v)
		}
	}
}

func TestSnapshotAppreciationIdentity(t *testing.T) {
	data := DefaultPropertyData()
	s := SnapshotAt(data, At(0), DefaultAssumptions())

	if s.Rent != data.MonthlyRent {
		t.Errorf("Rent at offset 0 = %v, expected %v", s.Rent, data.MonthlyRent)
	}
	if s.PropertyValue != data.PurchasePrice {
		t.Errorf("PropertyValue at offset 0 = %v, expected %v", s.PropertyValue, data.PurchasePrice)
	}
	if s.PropertyTaxes != data.PropertyTaxes || s.Insurance != data.Insurance || s.Maintenance != data.Maintenance {
		t.Errorf("fixed costs changed at offset 0: %+v", s)
	}
	if s.LoanBalance != data.LoanAmount() {
		t.Errorf("LoanBalance at offset 0 = %v, expected %v", s.LoanBalance, data.LoanAmount())
	}
}

func TestSnapshotInflation(t *testing.T) {
	data := DefaultPropertyData()
	s := SnapshotAt(data, At(2), DefaultAssumptions())

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"rent", s.Rent, 3000 * 1.03 * 1.03},
		{"property value", s.PropertyValue, 300000 * 1.035 * 1.035},
		{"property taxes", s.PropertyTaxes, 3600 * 1.02 * 1.02},
		{"insurance", s.Insurance, 1200 * 1.03 * 1.03},
		{"maintenance", s.Maintenance, 3000 * 1.03 * 1.03},
		{"vacancy loss", s.VacancyLoss, 3000 * 1.03 * 1.03 * 12 * 0.08},
		{"management fee", s.ManagementFee, 3000 * 1.03 * 1.03 * 12 * 0.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > 1e-6 {
				t.Errorf("%s = %.6f, expected %.6f", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestSnapshotCustomAssumptions(t *testing.T) {
	data := DefaultPropertyData()
	a := DefaultAssumptions()
	a.TaxInflation = 0
	a.InsuranceInflation = 10

	s := SnapshotAt(data, At(1), a)
	if s.PropertyTaxes != data.PropertyTaxes {
		t.Errorf("PropertyTaxes = %v, expected no inflation", s.PropertyTaxes)
	}
	if math.Abs(s.Insurance-1320) > 1e-9 {
		t.Errorf("Insurance = %v, expected 1320", s.Insurance)
	}
}

func TestSnapshotMortgageStopsAfterTerm(t *testing.T) {
	data := DefaultPropertyData()
	data.LoanTerm = 5
	a := DefaultAssumptions()

	during := SnapshotAt(data, At(4), a)
	after := SnapshotAt(data, At(5), a)

	if during.MortgagePayments == 0 {
		t.Error("expected mortgage payments in the final year of the loan")
	}
	if after.MortgagePayments != 0 {
		t.Errorf("MortgagePayments after term = %v, expected 0", after.MortgagePayments)
	}
	if after.LoanBalance != 0 {
		t.Errorf("LoanBalance after term = %v, expected 0", after.LoanBalance)
	}
	if after.Principal != 0 || after.Interest != 0 {
		t.Errorf("expected no principal or interest after term, got %.2f/%.2f", after.Principal, after.Interest)
	}
	if after.AnnualCashFlow <= during.AnnualCashFlow {
		t.Errorf("cash flow should jump once the loan is paid off: %.2f <= %.2f", after.AnnualCashFlow, during.AnnualCashFlow)
	}
}

func TestRowCounts(t *testing.T) {
	data := DefaultPropertyData()
	a := DefaultAssumptions()

	for _, term := range constants.SupportedLoanTerms {
		data.LoanTerm = term
		rows := YearlyTable(data, a, 2025)
		points := ChartSeries(data, a, 2025)

		expectedRows := term + 5
		if expectedRows > 30 {
			expectedRows = 30
		}
		if len(rows) != expectedRows {
			t.Errorf("term %d: %d yearly rows, expected %d", term, len(rows), expectedRows)
		}
		if len(points) != term+6 {
			t.Errorf("term %d: %d chart points, expected %d", term, len(points), term+6)
		}
	}
}

func TestYearlyTableOffsets(t *testing.T) {
	data := DefaultPropertyData()
	a := DefaultAssumptions()
	rows := YearlyTable(data, a, 2025)

	for _, row := range rows {
		offsets := TableOffsets(row.Index)
		s := SnapshotAt(data, offsets, a)

		value := mathutil.Compound(data.PurchasePrice, data.PropertyAppreciation, row.Index-1)
		balance := data.Loan().Balance(row.Index * 12)
		if expected := mathutil.RoundWhole(value - balance); row.Equity != expected {
			t.Errorf("row %d equity = %v, expected %v", row.Index, row.Equity, expected)
		}
		if expected := mathutil.RoundWhole(s.PropertyValue - s.LoanBalance); row.Equity != expected {
			t.Errorf("row %d equity = %v, snapshot decomposition gives %v", row.Index, row.Equity, expected)
		}
		if row.Year != 2025+row.Index {
			t.Errorf("row %d labelled %d, expected %d", row.Index, row.Year, 2025+row.Index)
		}
	}

	first := rows[0]
	results := Analyze(data, a)
	if first.Principal != mathutil.RoundWhole(results.Year1Principal) {
		t.Errorf("row 1 principal = %v, expected %v", first.Principal, mathutil.RoundWhole(results.Year1Principal))
	}
	if first.CashFlow != mathutil.RoundWhole(results.AnnualCashFlow) {
		t.Errorf("row 1 cash flow = %v, expected %v", first.CashFlow, mathutil.RoundWhole(results.AnnualCashFlow))
	}
}

func TestYearlyTableRatios(t *testing.T) {
	data := DefaultPropertyData()
	a := DefaultAssumptions()
	invested := data.TotalCashInvested()

	for _, row := range YearlyTable(data, a, 2025) {
		s := SnapshotAt(data, TableOffsets(row.Index), a)
		totalReturn := s.AnnualCashFlow + s.Principal

		if expected := mathutil.RoundHundredths(totalReturn / invested * 100); row.TotalReturnPercent != expected {
			t.Errorf("row %d return percent = %v, expected %v", row.Index, row.TotalReturnPercent, expected)
		}
		if expected := mathutil.RoundHundredths(s.Equity / invested); row.EquityMultiple != expected {
			t.Errorf("row %d equity multiple = %v, expected %v", row.Index, row.EquityMultiple, expected)
		}
		if expected := mathutil.RoundWhole(totalReturn); row.TotalReturn != expected {
			t.Errorf("row %d total return = %v, expected %v", row.Index, row.TotalReturn, expected)
		}
	}
}

func TestChartSeries(t *testing.T) {
	data := DefaultPropertyData()
	a := DefaultAssumptions()
	points := ChartSeries(data, a, 2025)

	first := points[0]
	if first.Year != 2025 {
		t.Errorf("first point year = %d, expected 2025", first.Year)
	}
	if first.PropertyValue != 300000 {
		t.Errorf("first point property value = %v, expected 300000", first.PropertyValue)
	}
	if first.LoanBalance != 240000 {
		t.Errorf("first point loan balance = %v, expected 240000", first.LoanBalance)
	}
	if first.Equity != 60000 {
		t.Errorf("first point equity = %v, expected 60000", first.Equity)
	}

	for i, point := range points {
		if point.Year != 2025+i {
			t.Errorf("point %d year = %d, expected %d", i, point.Year, 2025+i)
		}
		if i > 0 && point.LoanBalance > points[i-1].LoanBalance {
			t.Errorf("loan balance increased at point %d", i)
		}
		if i >= data.LoanTerm && point.LoanBalance != 0 {
			t.Errorf("point %d loan balance = %v, expected 0 after term", i, point.LoanBalance)
		}
	}
}

func TestChartUsesEqualOffsets(t *testing.T) {
	data := DefaultPropertyData()
	a := DefaultAssumptions()
	points := ChartSeries(data, a, 2025)

	for i, point := range points {
		s := SnapshotAt(data, Offsets{Appreciation: i, Amortization: i}, a)
		if point.Equity != mathutil.RoundWhole(s.Equity) {
			t.Errorf("point %d equity = %v, expected %v", i, point.Equity, mathutil.RoundWhole(s.Equity))
		}
		if point.CashFlow != mathutil.RoundWhole(s.AnnualCashFlow) {
			t.Errorf("point %d cash flow = %v, expected %v", i, point.CashFlow, mathutil.RoundWhole(s.AnnualCashFlow))
		}
	}
}

func TestProjectIsDeterministic(t *testing.T) {
	data := DefaultPropertyData()
	a := DefaultAssumptions()

	first := Project(data, a, 2030)
	second := Project(data, a, 2030)
	if !reflect.DeepEqual(first, second) {
		t.Error("Project() returned different results for identical inputs")
	}

	shifted := Project(data, a, 2031)
	for i := range first.Chart {
		if first.Chart[i].Equity != shifted.Chart[i].Equity {
			t.Fatalf("calendar year changed a computed value at point %d", i)
		}
	}
}

func TestTableRowsUncapped(t *testing.T) {
	a := DefaultAssumptions()
	a.MaxTableYears = 0
	if got := a.TableRows(40); got != 45 {
		t.Errorf("TableRows(40) uncapped = %d, expected 45", got)
	}

	a.ExtraYears = -50
	if got := a.ProjectionYears(30); got != 0 {
		t.Errorf("ProjectionYears() = %d, expected 0 for a negative window", got)
	}
}
