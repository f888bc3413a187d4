// Package forecast runs the rental analysis for every active scenario of a
// configuration.
package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/rental-analysis/internal/analysis"
	"github.com/iwvelando/rental-analysis/internal/config"
	"github.com/iwvelando/rental-analysis/internal/metrics"
	"github.com/iwvelando/rental-analysis/internal/optimizer"
	"github.com/iwvelando/rental-analysis/internal/rates"
	"github.com/iwvelando/rental-analysis/pkg/optimization"
	"github.com/iwvelando/rental-analysis/pkg/validation"
	"go.uber.org/zap"
)

// CommonScenarioName names the forecast of the common property when no
// scenario is active.
const CommonScenarioName = "Common"

// Forecast holds all information related to a specific scenario.
type Forecast struct {
	Name        string                `json:"name"`
	Property    analysis.PropertyData `json:"property"`
	Assumptions analysis.Assumptions  `json:"assumptions"`
	Projection  analysis.Projection   `json:"projection"`
	Warnings    []string              `json:"warnings,omitempty"`
	// Optimizations holds the results of the scenario's optimize directives.
	Optimizations []optimization.Summary `json:"optimizations,omitempty"`
}

// GetForecast processes the Forecasts for all active Scenarios. currentYear
// labels the purchase year of every projection.
func GetForecast(logger *zap.Logger, conf config.Configuration, currentYear int) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	scenarios := conf.ActiveScenarios()
	if len(scenarios) == 0 {
		logger.Debug("no active scenarios, analyzing the common property",
			zap.String("op", "forecast.GetForecast"),
		)
		scenarios = []config.Scenario{{Name: CommonScenarioName, Active: true}}
	}

	runner := optimizer.NewRunner(logger)

	var results []Forecast
	for _, scenario := range scenarios {
		property, assumptions := scenario.Resolve(conf.Common)
		if err := checkInputs(property); err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		start := time.Now()
		projection := analysis.Project(property, assumptions, currentYear)
		metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
		metrics.Analyses.WithLabelValues("config").Inc()

		logger.Debug(fmt.Sprintf("analyzed scenario %s", scenario.Name),
			zap.String("op", "forecast.GetForecast"),
			zap.Float64("monthlyCashFlow", projection.Results.MonthlyCashFlow),
			zap.Int("yearlyRows", len(projection.Yearly)),
		)

		summaries, err := runner.Run(scenario.Name, property, assumptions, scenario.Optimize)
		if err != nil {
			return results, err
		}

		results = append(results, Forecast{
			Name:          scenario.Name,
			Property:      property,
			Assumptions:   assumptions,
			Projection:    projection,
			Warnings:      config.PropertyWarnings(fmt.Sprintf("Scenario '%s'", scenario.Name), property),
			Optimizations: summaries,
		})
	}

	return results, nil
}

// RateSource resolves the current interest rate for a loan term.
type RateSource interface {
	Current(ctx context.Context, termYears int) (rates.Quote, error)
}

// ApplyCurrentRates replaces interest rates in conf with current market
// rates: the common property gets the rate for its term, and scenarios that
// change the term without pinning a rate get the rate for their own term.
func ApplyCurrentRates(ctx context.Context, logger *zap.Logger, conf *config.Configuration, source RateSource) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	quote, err := source.Current(ctx, conf.Common.Property.LoanTerm)
	if err != nil {
		return fmt.Errorf("failed to look up rate for common property: %w", err)
	}
	conf.Common.Property.InterestRate = quote.Rate
	logger.Info("using current interest rate",
		zap.String("op", "forecast.ApplyCurrentRates"),
		zap.String("series", quote.Series),
		zap.Float64("rate", quote.Rate),
		zap.Bool("fallback", quote.Fallback),
	)

	for i := range conf.Scenarios {
		overrides := &conf.Scenarios[i].Property
		if overrides.LoanTerm == nil || overrides.InterestRate != nil {
			continue
		}
		quote, err := source.Current(ctx, *overrides.LoanTerm)
		if err != nil {
			return fmt.Errorf("failed to look up rate for scenario %s: %w", conf.Scenarios[i].Name, err)
		}
		rate := quote.Rate
		overrides.InterestRate = &rate
	}
	return nil
}

// checkInputs rejects property data the engine cannot model: non-finite
// numbers and loan terms outside the supported range.
func checkInputs(p analysis.PropertyData) error {
	if err := validation.CheckLoanTermRange(p.LoanTerm); err != nil {
		return err
	}
	values := map[string]float64{
		"purchasePrice":        p.PurchasePrice,
		"downPayment":          p.DownPayment,
		"interestRate":         p.InterestRate,
		"monthlyRent":          p.MonthlyRent,
		"propertyTaxes":        p.PropertyTaxes,
		"insurance":            p.Insurance,
		"maintenance":          p.Maintenance,
		"vacancy":              p.Vacancy,
		"propertyManagement":   p.PropertyManagement,
		"closingCosts":         p.ClosingCosts,
		"rentAppreciation":     p.RentAppreciation,
		"propertyAppreciation": p.PropertyAppreciation,
	}
	for field, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not a finite number", field)
		}
	}
	return nil
}
