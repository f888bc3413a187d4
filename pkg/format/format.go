// Package format renders the currency, percent and multiple strings shown
// in reports.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a dollar amount with cents and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return signed(amount, groupThousands(fmt.Sprintf("%.2f", math.Abs(amount))))
}

// WholeCurrency returns a dollar amount rounded half up to whole units (e.g., "-$1,235").
func WholeCurrency(amount float64) string {
	rounded := math.Floor(amount + 0.5)
	return signed(rounded, groupThousands(fmt.Sprintf("%.0f", math.Abs(rounded))))
}

// Percent returns a percentage with two decimals (e.g., "4.06%").
func Percent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// Multiple returns an equity multiple with two decimals (e.g., "1.23x").
func Multiple(value float64) string {
	return fmt.Sprintf("%.2fx", value)
}

func signed(amount float64, digits string) string {
	// A value that prints as zero never carries a sign.
	if amount < 0 && strings.Trim(digits, "0.,") != "" {
		return "-$" + digits
	}
	return "$" + digits
}

// groupThousands inserts separators into the integer part of a formatted
// non-negative number.
func groupThousands(formatted string) string {
	intPart, decPart, hasDec := strings.Cut(formatted, ".")
	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}
	if !hasDec {
		return intPart
	}
	return intPart + "." + decPart
}
