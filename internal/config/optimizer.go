package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/rental-analysis/internal/analysis"
)

const (
	OptimizerFieldMonthlyRent   = "monthlyRent"
	OptimizerFieldPurchasePrice = "purchasePrice"
	OptimizerFieldDownPayment   = "downPayment"
	OptimizerFieldInterestRate  = "interestRate"

	OptimizerMetricMonthlyCashFlow = "monthlyCashFlow"
	OptimizerMetricCashOnCash      = "cashOnCash"
	OptimizerMetricYear1Return     = "year1Return"

	defaultToleranceCurrency = 0.01
	defaultTolerancePercent  = 0.001
	defaultMaxIterations     = 60
)

// OptimizerConfig defines a single-parameter search: find the value of Field
// at which Metric just reaches Target, holding every other input fixed.
type OptimizerConfig struct {
	Field         string   `yaml:"field,omitempty" json:"field,omitempty"`
	Metric        string   `yaml:"metric,omitempty" json:"metric,omitempty"`
	Target        float64  `yaml:"target,omitempty" json:"target,omitempty"`
	Min           *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max           *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Tolerance     float64  `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	MaxIterations int      `yaml:"maxIterations,omitempty" json:"maxIterations,omitempty"`
}

// CanonicalOptimizerField returns the canonical identifier for an optimizer field.
func CanonicalOptimizerField(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return OptimizerFieldMonthlyRent
	}
	switch strings.ToLower(trimmed) {
	case "monthlyrent", "monthly_rent", "monthly-rent", "rent":
		return OptimizerFieldMonthlyRent
	case "purchaseprice", "purchase_price", "purchase-price", "price":
		return OptimizerFieldPurchasePrice
	case "downpayment", "down_payment", "down-payment":
		return OptimizerFieldDownPayment
	case "interestrate", "interest_rate", "interest-rate", "rate":
		return OptimizerFieldInterestRate
	default:
		return strings.ToLower(trimmed)
	}
}

// CanonicalOptimizerMetric returns the canonical identifier for an optimizer metric.
func CanonicalOptimizerMetric(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return OptimizerMetricMonthlyCashFlow
	}
	switch strings.ToLower(trimmed) {
	case "monthlycashflow", "monthly_cash_flow", "monthly-cash-flow", "cashflow":
		return OptimizerMetricMonthlyCashFlow
	case "cashoncash", "cash_on_cash", "cash-on-cash", "coc":
		return OptimizerMetricCashOnCash
	case "year1return", "year1_return", "year-1-return":
		return OptimizerMetricYear1Return
	default:
		return strings.ToLower(trimmed)
	}
}

// IsPercentField reports whether field is expressed in percent.
func IsPercentField(field string) bool {
	switch CanonicalOptimizerField(field) {
	case OptimizerFieldDownPayment, OptimizerFieldInterestRate:
		return true
	}
	return false
}

// Normalize ensures defaults and canonical values are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	o.Field = CanonicalOptimizerField(o.Field)
	o.Metric = CanonicalOptimizerMetric(o.Metric)

	if o.Tolerance <= 0 {
		if IsPercentField(o.Field) {
			o.Tolerance = defaultTolerancePercent
		} else {
			o.Tolerance = defaultToleranceCurrency
		}
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
}

// Validate checks the directive after normalization.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}
	o.Normalize()

	switch o.Field {
	case OptimizerFieldMonthlyRent, OptimizerFieldPurchasePrice, OptimizerFieldDownPayment, OptimizerFieldInterestRate:
	default:
		return fmt.Errorf("optimizer field %q is not supported", o.Field)
	}
	switch o.Metric {
	case OptimizerMetricMonthlyCashFlow, OptimizerMetricCashOnCash, OptimizerMetricYear1Return:
	default:
		return fmt.Errorf("optimizer metric %q is not supported", o.Metric)
	}

	if math.IsNaN(o.Target) || math.IsInf(o.Target, 0) {
		return fmt.Errorf("optimizer target must be a finite number")
	}
	if o.Min != nil && o.Max != nil && *o.Min > *o.Max {
		return fmt.Errorf("optimizer min %.2f must not exceed max %.2f", *o.Min, *o.Max)
	}
	if o.Min != nil && *o.Min < 0 {
		return fmt.Errorf("optimizer min must not be negative")
	}
	return nil
}

// Bounds returns the search interval for the directive. Missing ends default
// to zero and to a field-specific ceiling derived from p.
func (o OptimizerConfig) Bounds(p analysis.PropertyData) (float64, float64) {
	lower := 0.0
	var upper float64
	switch CanonicalOptimizerField(o.Field) {
	case OptimizerFieldMonthlyRent:
		upper = math.Max(p.MonthlyRent*4, p.PurchasePrice*0.05)
	case OptimizerFieldPurchasePrice:
		upper = p.PurchasePrice * 4
	case OptimizerFieldDownPayment:
		upper = 100
	case OptimizerFieldInterestRate:
		upper = 20
	}
	if o.Min != nil {
		lower = *o.Min
	}
	if o.Max != nil {
		upper = *o.Max
	}
	if upper < lower {
		upper = lower
	}
	return lower, upper
}
