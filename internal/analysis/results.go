package analysis

import (
	"github.com/iwvelando/rental-analysis/pkg/constants"
	"github.com/iwvelando/rental-analysis/pkg/mathutil"
)

// Results are the headline figures at the time of purchase.
type Results struct {
	MonthlyMortgage      float64 `json:"monthlyMortgage"`
	MonthlyPropertyTaxes float64 `json:"monthlyPropertyTaxes"`
	MonthlyInsurance     float64 `json:"monthlyInsurance"`
	MonthlyMaintenance   float64 `json:"monthlyMaintenance"`
	VacancyLoss          float64 `json:"vacancyLoss"`
	ManagementFee        float64 `json:"managementFee"`
	TotalMonthlyExpenses float64 `json:"totalMonthlyExpenses"`
	MonthlyCashFlow      float64 `json:"monthlyCashFlow"`
	AnnualCashFlow       float64 `json:"annualCashFlow"`
	TotalCashInvested    float64 `json:"totalCashInvested"`
	CashOnCashReturn     float64 `json:"cashOnCashReturn"`
	Year1Return          float64 `json:"year1Return"`
	MonthlyROI           float64 `json:"monthlyROI"`
	Year1Principal       float64 `json:"year1Principal"`
	Year1Interest        float64 `json:"year1Interest"`
	Year1TotalMortgage   float64 `json:"year1TotalMortgage"`
}

// Analyze computes the headline results from the purchase-year snapshot.
// Percent metrics are zero when nothing was invested.
func Analyze(data PropertyData, a Assumptions) Results {
	s := SnapshotAt(data, At(0), a)
	months := float64(constants.MonthsPerYear)

	r := Results{
		MonthlyMortgage:      data.Loan().Payment(),
		MonthlyPropertyTaxes: s.PropertyTaxes / months,
		MonthlyInsurance:     s.Insurance / months,
		MonthlyMaintenance:   s.Maintenance / months,
		VacancyLoss:          s.VacancyLoss / months,
		ManagementFee:        s.ManagementFee / months,
		TotalCashInvested:    data.TotalCashInvested(),
		Year1Principal:       s.Principal,
		Year1Interest:        s.Interest,
	}

	r.TotalMonthlyExpenses = s.MortgagePayments/months + r.MonthlyPropertyTaxes + r.MonthlyInsurance +
		r.MonthlyMaintenance + r.VacancyLoss + r.ManagementFee
	r.MonthlyCashFlow = s.Rent - r.TotalMonthlyExpenses
	r.AnnualCashFlow = r.MonthlyCashFlow * months
	r.Year1TotalMortgage = r.MonthlyMortgage * months

	r.CashOnCashReturn = mathutil.CalculatePercentage(r.AnnualCashFlow, r.TotalCashInvested)
	r.Year1Return = mathutil.CalculatePercentage(r.AnnualCashFlow+r.Year1Principal, r.TotalCashInvested)
	r.MonthlyROI = mathutil.CalculatePercentage(r.MonthlyCashFlow, r.TotalCashInvested)

	return r
}

// Finite reports whether every figure is a real number. Extreme inputs
// can overflow the amortization math into NaN or Inf.
func (r Results) Finite() bool {
	for _, v := range []float64{
		r.MonthlyMortgage, r.MonthlyPropertyTaxes, r.MonthlyInsurance, r.MonthlyMaintenance,
		r.VacancyLoss, r.ManagementFee, r.TotalMonthlyExpenses, r.MonthlyCashFlow,
		r.AnnualCashFlow, r.TotalCashInvested, r.CashOnCashReturn, r.Year1Return,
		r.MonthlyROI, r.Year1Principal, r.Year1Interest, r.Year1TotalMortgage,
	} {
		if !mathutil.IsFinite(v) {
			return false
		}
	}
	return true
}
