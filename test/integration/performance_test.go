package integration

import (
	"testing"
	"time"

	"github.com/iwvelando/rental-analysis/internal/analysis"
	"github.com/iwvelando/rental-analysis/internal/config"
	"github.com/iwvelando/rental-analysis/internal/forecast"
	"go.uber.org/zap"
)

// TestPerformanceBaseline guards against accidental quadratic blowups in
// the projection loops.
func TestPerformanceBaseline(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	start := time.Now()
	for i := 0; i < 100; i++ {
		if _, err := forecast.GetForecast(zap.NewNop(), *conf, currentYear); err != nil {
			t.Fatalf("GetForecast failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("100 forecasts took %v", elapsed)
	}
}

func BenchmarkProject(b *testing.B) {
	property := analysis.DefaultPropertyData()
	assumptions := analysis.DefaultAssumptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		analysis.Project(property, assumptions, currentYear)
	}
}

func BenchmarkProject40Year(b *testing.B) {
	property := analysis.DefaultPropertyData()
	property.LoanTerm = 40
	assumptions := analysis.DefaultAssumptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		analysis.Project(property, assumptions, currentYear)
	}
}
