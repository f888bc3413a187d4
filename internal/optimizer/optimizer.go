// Package optimizer searches a single property input for the value at which
// a return metric just reaches a target, e.g. the break-even rent.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/rental-analysis/internal/analysis"
	"github.com/iwvelando/rental-analysis/internal/config"
	"github.com/iwvelando/rental-analysis/pkg/format"
	"github.com/iwvelando/rental-analysis/pkg/mathutil"
	"github.com/iwvelando/rental-analysis/pkg/optimization"
	"go.uber.org/zap"
)

// Runner solves optimize directives against a single property.
type Runner struct {
	logger *zap.Logger
}

type evaluation struct {
	value  float64
	metric float64
	target float64
}

func (e evaluation) feasible() bool {
	return e.metric >= e.target
}

func (e evaluation) headroom() float64 {
	return e.metric - e.target
}

// NewRunner constructs a Runner.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Run executes every directive against the same property and assumptions.
// scope labels the summaries, typically with the scenario name.
func (r *Runner) Run(scope string, data analysis.PropertyData, a analysis.Assumptions, directives []config.OptimizerConfig) ([]optimization.Summary, error) {
	var summaries []optimization.Summary
	for i := range directives {
		summary, err := r.Solve(scope, data, a, directives[i])
		if err != nil {
			return nil, fmt.Errorf("%s optimizer %d: %w", scope, i+1, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Solve bisects cfg.Field between its bounds until the boundary between
// meeting and missing the target is narrower than the tolerance. The
// reported value always meets the target when the search converges.
func (r *Runner) Solve(scope string, data analysis.PropertyData, a analysis.Assumptions, cfg config.OptimizerConfig) (optimization.Summary, error) {
	if err := cfg.Validate(); err != nil {
		return optimization.Summary{}, err
	}

	original := fieldValue(data, cfg.Field)
	minVal, maxVal := cfg.Bounds(data)
	minVal = snapFieldValue(cfg.Field, minVal)
	maxVal = snapFieldValue(cfg.Field, maxVal)

	evaluate := func(value float64) evaluation {
		results := analysis.Analyze(withField(data, cfg.Field, value), a)
		return evaluation{value: value, metric: metricValue(results, cfg.Metric), target: cfg.Target}
	}

	lowerEval := evaluate(minVal)
	upperEval := evaluate(maxVal)

	summary := optimization.Summary{
		Scope:           "scenario",
		TargetName:      scope,
		Field:           cfg.Field,
		Metric:          cfg.Metric,
		Target:          cfg.Target,
		Original:        original,
		OriginalDisplay: formatFieldDisplay(cfg.Field, original),
	}

	var final evaluation
	iterations := 0

	switch {
	case !lowerEval.feasible() && !upperEval.feasible():
		final = upperEval
		if lowerEval.headroom() > upperEval.headroom() {
			final = lowerEval
		}
		summary.Notes = append(summary.Notes, fmt.Sprintf(
			"unable to reach %s %s within bounds %s to %s",
			cfg.Metric,
			formatMetricDisplay(cfg.Metric, cfg.Target),
			formatFieldDisplay(cfg.Field, minVal),
			formatFieldDisplay(cfg.Field, maxVal),
		))
	case lowerEval.feasible() && upperEval.feasible():
		final = upperEval
		if lowerEval.headroom() < upperEval.headroom() {
			final = lowerEval
		}
		summary.Converged = true
		summary.Notes = append(summary.Notes, fmt.Sprintf(
			"%s meets %s across bounds %s to %s",
			cfg.Metric,
			formatMetricDisplay(cfg.Metric, cfg.Target),
			formatFieldDisplay(cfg.Field, minVal),
			formatFieldDisplay(cfg.Field, maxVal),
		))
	default:
		good, bad := lowerEval, upperEval
		if upperEval.feasible() {
			good, bad = upperEval, lowerEval
		}
		for iterations < cfg.MaxIterations && math.Abs(good.value-bad.value) > cfg.Tolerance {
			mid := snapFieldValue(cfg.Field, bad.value+(good.value-bad.value)/2)
			if mid == good.value || mid == bad.value {
				break
			}
			evalMid := evaluate(mid)
			iterations++
			if evalMid.feasible() {
				good = evalMid
			} else {
				bad = evalMid
			}
		}
		final = good
		summary.Converged = true
	}

	summary.Value = final.value
	summary.ValueDisplay = formatFieldDisplay(cfg.Field, final.value)
	summary.MetricValue = final.metric
	summary.Headroom = final.headroom()
	summary.Iterations = iterations

	r.logger.Info("optimizer solved property field",
		zap.String("op", "optimizer.Solve"),
		zap.String("scenario", scope),
		zap.String("field", cfg.Field),
		zap.String("metric", cfg.Metric),
		zap.Float64("target", cfg.Target),
		zap.Float64("originalNumeric", original),
		zap.Float64("optimizedNumeric", summary.Value),
		zap.String("optimizedDisplay", summary.ValueDisplay),
		zap.Float64("headroom", summary.Headroom),
		zap.Int("iterations", iterations),
		zap.Bool("converged", summary.Converged),
	)

	return summary, nil
}

func fieldValue(p analysis.PropertyData, field string) float64 {
	switch config.CanonicalOptimizerField(field) {
	case config.OptimizerFieldMonthlyRent:
		return p.MonthlyRent
	case config.OptimizerFieldPurchasePrice:
		return p.PurchasePrice
	case config.OptimizerFieldDownPayment:
		return p.DownPayment
	case config.OptimizerFieldInterestRate:
		return p.InterestRate
	}
	return 0
}

func withField(p analysis.PropertyData, field string, value float64) analysis.PropertyData {
	switch config.CanonicalOptimizerField(field) {
	case config.OptimizerFieldMonthlyRent:
		p.MonthlyRent = value
	case config.OptimizerFieldPurchasePrice:
		p.PurchasePrice = value
	case config.OptimizerFieldDownPayment:
		p.DownPayment = value
	case config.OptimizerFieldInterestRate:
		p.InterestRate = value
	}
	return p
}

func metricValue(r analysis.Results, metric string) float64 {
	switch config.CanonicalOptimizerMetric(metric) {
	case config.OptimizerMetricCashOnCash:
		return r.CashOnCashReturn
	case config.OptimizerMetricYear1Return:
		return r.Year1Return
	default:
		return r.MonthlyCashFlow
	}
}

// snapFieldValue keeps currency fields on cents and percent fields on
// thousandths of a percent.
func snapFieldValue(field string, value float64) float64 {
	if config.IsPercentField(field) {
		return math.Round(value*1000) / 1000
	}
	return mathutil.Round(value)
}

func formatFieldDisplay(field string, value float64) string {
	if config.IsPercentField(field) {
		return fmt.Sprintf("%.3f%%", value)
	}
	return format.Currency(value)
}

func formatMetricDisplay(metric string, value float64) string {
	if config.CanonicalOptimizerMetric(metric) == config.OptimizerMetricMonthlyCashFlow {
		return format.Currency(value)
	}
	return format.Percent(value)
}
