package analysis

import (
	"github.com/iwvelando/rental-analysis/pkg/constants"
	"github.com/iwvelando/rental-analysis/pkg/mathutil"
)

// Offsets are the year offsets, counted from the purchase year, at which a
// snapshot is taken.
//
// Appreciation drives rent and value growth, cost inflation, the mortgage
// payments of the year and its principal paydown. Amortization drives the
// loan balance, and through it equity. The yearly table advances
// Amortization one year ahead of Appreciation; the chart keeps them equal.
type Offsets struct {
	Appreciation int
	Amortization int
}

// At returns offsets where both clocks read the same year.
func At(yearOffset int) Offsets {
	return Offsets{Appreciation: yearOffset, Amortization: yearOffset}
}

// Snapshot is the economic picture of the property at one pair of offsets.
// Rent is monthly; every other flow is annual.
type Snapshot struct {
	Offsets          Offsets
	Rent             float64
	PropertyValue    float64
	PropertyTaxes    float64
	Insurance        float64
	Maintenance      float64
	VacancyLoss      float64
	ManagementFee    float64
	MortgagePayments float64
	TotalExpenses    float64
	AnnualCashFlow   float64
	LoanBalance      float64
	Equity           float64
	Principal        float64
	Interest         float64
}

// SnapshotAt computes the snapshot of data at the given offsets.
func SnapshotAt(data PropertyData, offsets Offsets, a Assumptions) Snapshot {
	loan := data.Loan()
	n := loan.NumPayments()
	years := offsets.Appreciation

	s := Snapshot{Offsets: offsets}

	s.Rent = mathutil.Compound(data.MonthlyRent, data.RentAppreciation, years)
	s.PropertyValue = mathutil.Compound(data.PurchasePrice, data.PropertyAppreciation, years)

	s.PropertyTaxes = mathutil.Compound(data.PropertyTaxes, a.TaxInflation, years)
	s.Insurance = mathutil.Compound(data.Insurance, a.InsuranceInflation, years)
	s.Maintenance = mathutil.Compound(data.Maintenance, a.MaintenanceInflation, years)

	annualRent := s.Rent * constants.MonthsPerYear
	s.VacancyLoss = mathutil.ApplyPercentage(annualRent, data.Vacancy)
	s.ManagementFee = mathutil.ApplyPercentage(annualRent, data.PropertyManagement)

	firstMonth := years*constants.MonthsPerYear + 1
	if firstMonth-1 < n {
		s.MortgagePayments = loan.Payment() * constants.MonthsPerYear
	}

	s.TotalExpenses = s.MortgagePayments + s.PropertyTaxes + s.Insurance + s.Maintenance +
		s.VacancyLoss + s.ManagementFee
	s.AnnualCashFlow = annualRent - s.TotalExpenses

	s.LoanBalance = loan.Balance(offsets.Amortization * constants.MonthsPerYear)
	s.Equity = s.PropertyValue - s.LoanBalance

	year := loan.Between(firstMonth, firstMonth+constants.MonthsPerYear-1)
	s.Principal = year.Principal
	s.Interest = year.Interest

	return s
}
