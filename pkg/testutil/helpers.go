// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/rental-analysis/internal/analysis"
	"github.com/iwvelando/rental-analysis/internal/forecast"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindScenario(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// NewForecast analyzes property under the default assumptions and wraps the
// projection as a named forecast.
func NewForecast(name string, property analysis.PropertyData, currentYear int) forecast.Forecast {
	assumptions := analysis.DefaultAssumptions()
	return forecast.Forecast{
		Name:        name,
		Property:    property,
		Assumptions: assumptions,
		Projection:  analysis.Project(property, assumptions, currentYear),
	}
}
