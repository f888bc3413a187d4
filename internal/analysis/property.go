// Package analysis is the rental property investment model. It turns a set
// of property, loan and income parameters into headline return metrics, a
// yearly projection table and a chart-friendly time series.
//
// Every function in this package is a pure mapping of its arguments: there
// is no I/O, no logging and no retained state between calls.
package analysis

import (
	"github.com/iwvelando/rental-analysis/pkg/constants"
	"github.com/iwvelando/rental-analysis/pkg/loans"
	"github.com/iwvelando/rental-analysis/pkg/mathutil"
)

// PropertyData holds the user-editable inputs of one analysis. Percent
// fields are expressed in percent, e.g. 20 for 20%. Annual cost fields are
// yearly currency amounts.
type PropertyData struct {
	PurchasePrice        float64 `json:"purchasePrice" yaml:"purchasePrice"`
	DownPayment          float64 `json:"downPayment" yaml:"downPayment"`
	InterestRate         float64 `json:"interestRate" yaml:"interestRate"`
	LoanTerm             int     `json:"loanTerm" yaml:"loanTerm"`
	MonthlyRent          float64 `json:"monthlyRent" yaml:"monthlyRent"`
	PropertyTaxes        float64 `json:"propertyTaxes" yaml:"propertyTaxes"`
	Insurance            float64 `json:"insurance" yaml:"insurance"`
	Maintenance          float64 `json:"maintenance" yaml:"maintenance"`
	Vacancy              float64 `json:"vacancy" yaml:"vacancy"`
	PropertyManagement   float64 `json:"propertyManagement" yaml:"propertyManagement"`
	ClosingCosts         float64 `json:"closingCosts" yaml:"closingCosts"`
	RentAppreciation     float64 `json:"rentAppreciation" yaml:"rentAppreciation"`
	PropertyAppreciation float64 `json:"propertyAppreciation" yaml:"propertyAppreciation"`
}

// DefaultPropertyData returns the sample property the analysis tool starts with.
func DefaultPropertyData() PropertyData {
	return PropertyData{
		PurchasePrice:        300000,
		DownPayment:          20,
		InterestRate:         7.0,
		LoanTerm:             30,
		MonthlyRent:          3000,
		PropertyTaxes:        3600,
		Insurance:            1200,
		Maintenance:          3000,
		Vacancy:              8,
		PropertyManagement:   10,
		ClosingCosts:         3000,
		RentAppreciation:     3.0,
		PropertyAppreciation: 3.5,
	}
}

// DownPaymentAmount is the cash paid toward the purchase price.
func (p PropertyData) DownPaymentAmount() float64 {
	return mathutil.ApplyPercentage(p.PurchasePrice, p.DownPayment)
}

// LoanAmount is the financed part of the purchase price.
func (p PropertyData) LoanAmount() float64 {
	return p.PurchasePrice * (1 - p.DownPayment/constants.PercentageMultiplier)
}

// TotalCashInvested is the down payment plus closing costs. It is the
// denominator of every percent-return metric.
func (p PropertyData) TotalCashInvested() float64 {
	return p.DownPaymentAmount() + p.ClosingCosts
}

// Loan returns the amortization model of the property's mortgage.
func (p PropertyData) Loan() loans.Model {
	return loans.NewModel(p.LoanAmount(), p.InterestRate, p.LoanTerm)
}

// MonthlyRate is the mortgage rate per month as a fraction.
func (p PropertyData) MonthlyRate() float64 {
	return loans.MonthlyRate(p.InterestRate)
}

// NumPayments is the number of monthly mortgage payments.
func (p PropertyData) NumPayments() int {
	return loans.NumPayments(p.LoanTerm)
}
