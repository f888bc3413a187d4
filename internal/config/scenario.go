package config

import "github.com/iwvelando/rental-analysis/internal/analysis"

// PropertyOverrides holds the property fields a scenario replaces. Nil
// fields keep the common value.
type PropertyOverrides struct {
	PurchasePrice        *float64 `yaml:"purchasePrice,omitempty"`
	DownPayment          *float64 `yaml:"downPayment,omitempty"`
	InterestRate         *float64 `yaml:"interestRate,omitempty"`
	LoanTerm             *int     `yaml:"loanTerm,omitempty"`
	MonthlyRent          *float64 `yaml:"monthlyRent,omitempty"`
	PropertyTaxes        *float64 `yaml:"propertyTaxes,omitempty"`
	Insurance            *float64 `yaml:"insurance,omitempty"`
	Maintenance          *float64 `yaml:"maintenance,omitempty"`
	Vacancy              *float64 `yaml:"vacancy,omitempty"`
	PropertyManagement   *float64 `yaml:"propertyManagement,omitempty"`
	ClosingCosts         *float64 `yaml:"closingCosts,omitempty"`
	RentAppreciation     *float64 `yaml:"rentAppreciation,omitempty"`
	PropertyAppreciation *float64 `yaml:"propertyAppreciation,omitempty"`
}

// Apply returns base with every set override applied.
func (o PropertyOverrides) Apply(base analysis.PropertyData) analysis.PropertyData {
	out := base
	setFloat(&out.PurchasePrice, o.PurchasePrice)
	setFloat(&out.DownPayment, o.DownPayment)
	setFloat(&out.InterestRate, o.InterestRate)
	if o.LoanTerm != nil {
		out.LoanTerm = *o.LoanTerm
	}
	setFloat(&out.MonthlyRent, o.MonthlyRent)
	setFloat(&out.PropertyTaxes, o.PropertyTaxes)
	setFloat(&out.Insurance, o.Insurance)
	setFloat(&out.Maintenance, o.Maintenance)
	setFloat(&out.Vacancy, o.Vacancy)
	setFloat(&out.PropertyManagement, o.PropertyManagement)
	setFloat(&out.ClosingCosts, o.ClosingCosts)
	setFloat(&out.RentAppreciation, o.RentAppreciation)
	setFloat(&out.PropertyAppreciation, o.PropertyAppreciation)
	return out
}

// AssumptionOverrides holds model constants that replace the defaults.
type AssumptionOverrides struct {
	TaxInflation         *float64 `yaml:"taxInflation,omitempty"`
	InsuranceInflation   *float64 `yaml:"insuranceInflation,omitempty"`
	MaintenanceInflation *float64 `yaml:"maintenanceInflation,omitempty"`
	ExtraYears           *int     `yaml:"extraYears,omitempty"`
	MaxTableYears        *int     `yaml:"maxTableYears,omitempty"`
}

// Apply returns base with every set override applied.
func (o AssumptionOverrides) Apply(base analysis.Assumptions) analysis.Assumptions {
	out := base
	setFloat(&out.TaxInflation, o.TaxInflation)
	setFloat(&out.InsuranceInflation, o.InsuranceInflation)
	setFloat(&out.MaintenanceInflation, o.MaintenanceInflation)
	if o.ExtraYears != nil {
		out.ExtraYears = *o.ExtraYears
	}
	if o.MaxTableYears != nil {
		out.MaxTableYears = *o.MaxTableYears
	}
	return out
}

// Resolve merges the scenario onto the common block. Assumptions layer as
// defaults, then common overrides, then scenario overrides.
func (s Scenario) Resolve(common Common) (analysis.PropertyData, analysis.Assumptions) {
	property := s.Property.Apply(common.Property)
	assumptions := s.Assumptions.Apply(common.Assumptions.Apply(analysis.DefaultAssumptions()))
	return property, assumptions
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
