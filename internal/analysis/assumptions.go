package analysis

import "github.com/iwvelando/rental-analysis/pkg/constants"

// Assumptions are the model constants that are not part of PropertyData.
// Inflation rates are annual percentages applied to the fixed yearly costs.
type Assumptions struct {
	TaxInflation         float64 `json:"taxInflation" yaml:"taxInflation"`
	InsuranceInflation   float64 `json:"insuranceInflation" yaml:"insuranceInflation"`
	MaintenanceInflation float64 `json:"maintenanceInflation" yaml:"maintenanceInflation"`
	// ExtraYears extends the projection past the end of the loan term.
	ExtraYears int `json:"extraYears" yaml:"extraYears"`
	// MaxTableYears caps the yearly table; zero or less means uncapped.
	MaxTableYears int `json:"maxTableYears" yaml:"maxTableYears"`
}

// DefaultAssumptions returns the built-in model constants: taxes rise 2% a
// year, insurance and maintenance 3%, and projections run five years past
// the loan term with at most 30 table rows.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		TaxInflation:         constants.DefaultTaxInflation,
		InsuranceInflation:   constants.DefaultInsuranceInflation,
		MaintenanceInflation: constants.DefaultMaintenanceInflation,
		ExtraYears:           constants.DefaultExtraYears,
		MaxTableYears:        constants.DefaultMaxTableYears,
	}
}

// ProjectionYears is the last year offset covered by a projection.
func (a Assumptions) ProjectionYears(loanTerm int) int {
	years := loanTerm + a.ExtraYears
	if years < 0 {
		return 0
	}
	return years
}

// TableRows is the number of rows in the yearly table.
func (a Assumptions) TableRows(loanTerm int) int {
	rows := a.ProjectionYears(loanTerm)
	if a.MaxTableYears > 0 && rows > a.MaxTableYears {
		return a.MaxTableYears
	}
	return rows
}
