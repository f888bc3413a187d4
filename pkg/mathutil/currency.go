// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/rental-analysis/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundWhole rounds to the nearest whole unit with halves rounded up, so
// -2.5 becomes -2 and 2.5 becomes 3.
func RoundWhole(val float64) float64 {
	return math.Floor(val + 0.5)
}

// RoundHundredths rounds half up to two decimals.
func RoundHundredths(val float64) float64 {
	return RoundWhole(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// SafeDivide divides value by total, returning 0 when total is zero or the
// quotient is not finite.
func SafeDivide(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	q := value / total
	if !IsFinite(q) {
		return 0
	}
	return q
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	return SafeDivide(value, total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// Compound grows base by ratePercent per period over the given number of
// periods. Zero periods returns base unchanged.
func Compound(base, ratePercent float64, periods int) float64 {
	if periods == 0 {
		return base
	}
	return base * math.Pow(1+ratePercent/constants.PercentageMultiplier, float64(periods))
}
