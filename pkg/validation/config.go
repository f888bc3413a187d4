package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/rental-analysis/pkg/constants"
)

// Bound is an inclusive range check for one named input.
type Bound struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

// CheckBound returns a warning when the value is outside its range or not a
// finite number, and an empty string otherwise.
func CheckBound(label string, b Bound) string {
	if math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
		return fmt.Sprintf("%s: %s is not a finite number", label, b.Field)
	}
	if b.Value < b.Min || b.Value > b.Max {
		return fmt.Sprintf("%s: %s of %g is outside the expected range %g to %g",
			label, b.Field, b.Value, b.Min, b.Max)
	}
	return ""
}

// CheckBounds applies CheckBound to every bound and collects the warnings.
func CheckBounds(label string, bounds []Bound) []string {
	var warnings []string
	for _, b := range bounds {
		if w := CheckBound(label, b); w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// ValidateLoanTerm warns when the term is not positive or is not one of the
// conventional loan terms.
func ValidateLoanTerm(label string, termYears int) string {
	if termYears <= 0 {
		return fmt.Sprintf("%s: loanTerm of %d years is not positive, no mortgage will be modeled", label, termYears)
	}
	for _, supported := range constants.SupportedLoanTerms {
		if termYears == supported {
			return ""
		}
	}
	terms := make([]string, len(constants.SupportedLoanTerms))
	for i, supported := range constants.SupportedLoanTerms {
		terms[i] = fmt.Sprint(supported)
	}
	return fmt.Sprintf("%s: loanTerm of %d years is not a conventional term (%s)",
		label, termYears, strings.Join(terms, ", "))
}

// CheckLoanTermRange returns an error when the term cannot be modeled:
// it is not positive or exceeds constants.MaxLoanTerm years.
func CheckLoanTermRange(termYears int) error {
	if termYears < 1 || termYears > constants.MaxLoanTerm {
		return fmt.Errorf("loanTerm of %d years is outside the supported range 1 to %d",
			termYears, constants.MaxLoanTerm)
	}
	return nil
}

// ValidateScenarioNames warns about empty and duplicate scenario names.
func ValidateScenarioNames(names []string) []string {
	var warnings []string
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			warnings = append(warnings, fmt.Sprintf("Scenario %d has no name", i+1))
			continue
		}
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' is defined more than once", name))
		}
		seen[name] = true
	}
	return warnings
}
