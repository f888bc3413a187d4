package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/rental-analysis/internal/analysis"
	"github.com/iwvelando/rental-analysis/internal/forecast"
	"github.com/iwvelando/rental-analysis/pkg/optimization"
)

func testResults() []forecast.Forecast {
	property := analysis.DefaultPropertyData()
	assumptions := analysis.DefaultAssumptions()
	return []forecast.Forecast{
		{
			Name:        "Test Scenario",
			Property:    property,
			Assumptions: assumptions,
			Projection:  analysis.Project(property, assumptions, 2026),
			Warnings:    []string{"Scenario 'Test Scenario': sample warning"},
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, testResults(), Options{})
	output := buf.String()

	expected := []string{
		"--- Results for scenario Test Scenario ---",
		"Cash-on-Cash Return",
		"Year 1 Return",
		"$240,000",
		"Warning: Scenario 'Test Scenario': sample warning",
		"Year | Principal    | Cash Flow",
		"(26 more years)",
		"Loan Balance",
	}
	for _, fragment := range expected {
		if !strings.Contains(output, fragment) {
			t.Errorf("PrettyFormat missing %q", fragment)
		}
	}
	if strings.Contains(output, "Month | Payment") {
		t.Error("schedule should only be printed when requested")
	}
}

func TestPrettyFormatTargets(t *testing.T) {
	results := testResults()
	results[0].Optimizations = []optimization.Summary{
		{
			TargetName:      "Test Scenario",
			Field:           "monthlyRent",
			Metric:          "monthlyCashFlow",
			Original:        3000,
			OriginalDisplay: "$3,000.00",
			Value:           2739.91,
			ValueDisplay:    "$2,739.91",
			Iterations:      21,
			Converged:       true,
		},
		{
			Field:        "monthlyRent",
			Metric:       "cashOnCash",
			Target:       12.5,
			ValueDisplay: "$1,000.00",
			Notes:        []string{"unable to reach cashOnCash 12.50% within bounds $0.00 to $1,000.00"},
		},
	}

	var buf bytes.Buffer
	PrettyFormat(&buf, results, Options{})
	output := buf.String()

	expected := []string{
		"Targets",
		"$3,000.00 -> $2,739.91 (monthlyCashFlow >= 0, converged)",
		"(cashOnCash >= 12.5, not converged)",
		"Note: unable to reach cashOnCash",
	}
	for _, fragment := range expected {
		if !strings.Contains(output, fragment) {
			t.Errorf("PrettyFormat missing %q", fragment)
		}
	}
}

func TestPrettyFormatExpandedWithSchedule(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, testResults(), Options{Expand: true, Schedule: true})
	output := buf.String()

	if strings.Contains(output, "more years)") {
		t.Error("expanded output should not contain a placeholder row")
	}
	if !strings.Contains(output, "Month | Payment") {
		t.Error("schedule header missing")
	}
	if !strings.Contains(output, "  360 | ") {
		t.Error("schedule should run through the last month")
	}
}

func TestCsvFormat(t *testing.T) {
	results := testResults()
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	want := 1 + len(results[0].Projection.Yearly) + len(results[0].Projection.Chart)
	if len(records) != want {
		t.Fatalf("expected %d records, got %d", want, len(records))
	}
	if records[0][0] != "series" || len(records[0]) != len(csvHeader) {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "yearly" || records[1][2] != "2027" {
		t.Errorf("unexpected first yearly record: %v", records[1])
	}
	last := records[len(records)-1]
	if last[0] != "chart" || last[2] != "2061" || last[10] != "0" {
		t.Errorf("unexpected last chart record: %v", last)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, testResults()); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["name"] != "Test Scenario" {
		t.Errorf("unexpected JSON: %s", buf.String())
	}
	projection, ok := decoded[0]["projection"].(map[string]interface{})
	if !ok {
		t.Fatalf("projection missing from JSON")
	}
	if _, ok := projection["yearly"]; !ok {
		t.Error("yearly table missing from JSON")
	}
}
