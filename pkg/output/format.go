// Package output provides utilities for formatting and displaying analysis results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/rental-analysis/internal/analysis"
	"github.com/iwvelando/rental-analysis/internal/forecast"
	"github.com/iwvelando/rental-analysis/pkg/format"
	"github.com/iwvelando/rental-analysis/pkg/loans"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Options controls the pretty printer.
type Options struct {
	// Expand prints every yearly row instead of the collapsed view.
	Expand bool
	// Schedule appends the month-by-month amortization schedule.
	Schedule bool
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, results []forecast.Forecast, opts Options) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		r := result.Projection.Results
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)

		_, _ = fmt.Fprintf(w, "Summary\n")
		_, _ = p.Fprintf(w, "  Monthly Cash Flow    | $%.2f\n", r.MonthlyCashFlow)
		_, _ = p.Fprintf(w, "  Annual Cash Flow     | $%.2f\n", r.AnnualCashFlow)
		_, _ = p.Fprintf(w, "  Total Cash Invested  | $%.2f\n", r.TotalCashInvested)
		_, _ = fmt.Fprintf(w, "  Cash-on-Cash Return  | %s (%s)\n", format.Percent(r.CashOnCashReturn), CashOnCashTier(r.CashOnCashReturn))
		_, _ = fmt.Fprintf(w, "  Year 1 Return        | %s (%s)\n", format.Percent(r.Year1Return), Year1ReturnTier(r.Year1Return))
		_, _ = fmt.Fprintf(w, "  Monthly ROI          | %s\n", format.Percent(r.MonthlyROI))

		_, _ = fmt.Fprintf(w, "Monthly Breakdown\n")
		_, _ = p.Fprintf(w, "  Rent                 | $%.2f\n", result.Property.MonthlyRent)
		_, _ = p.Fprintf(w, "  Mortgage             | $%.2f\n", r.MonthlyMortgage)
		_, _ = p.Fprintf(w, "  Property Taxes       | $%.2f\n", r.MonthlyPropertyTaxes)
		_, _ = p.Fprintf(w, "  Insurance            | $%.2f\n", r.MonthlyInsurance)
		_, _ = p.Fprintf(w, "  Maintenance          | $%.2f\n", r.MonthlyMaintenance)
		_, _ = p.Fprintf(w, "  Vacancy              | $%.2f\n", r.VacancyLoss)
		_, _ = p.Fprintf(w, "  Management           | $%.2f\n", r.ManagementFee)
		_, _ = p.Fprintf(w, "  Total Expenses       | $%.2f\n", r.TotalMonthlyExpenses)

		_, _ = fmt.Fprintf(w, "Year 1 Mortgage\n")
		_, _ = p.Fprintf(w, "  Principal            | $%.2f\n", r.Year1Principal)
		_, _ = p.Fprintf(w, "  Interest             | $%.2f\n", r.Year1Interest)
		_, _ = p.Fprintf(w, "  Total Payments       | $%.2f\n", r.Year1TotalMortgage)

		if len(result.Optimizations) > 0 {
			_, _ = fmt.Fprintf(w, "Targets\n")
			for _, summary := range result.Optimizations {
				status := "converged"
				if !summary.Converged {
					status = "not converged"
				}
				_, _ = fmt.Fprintf(w, "  %-20s | %s -> %s (%s >= %s, %s)\n",
					summary.Field,
					summary.OriginalDisplay,
					summary.ValueDisplay,
					summary.Metric,
					strconv.FormatFloat(summary.Target, 'f', -1, 64),
					status,
				)
				for _, note := range summary.Notes {
					_, _ = fmt.Fprintf(w, "  Note: %s\n", note)
				}
			}
		}

		for _, warning := range result.Warnings {
			_, _ = fmt.Fprintf(w, "Warning: %s\n", warning)
		}

		_, _ = fmt.Fprintf(w, "\nYear | Principal    | Cash Flow    | Total Return | Return  | Equity       | Multiple\n")
		_, _ = fmt.Fprintf(w, "____ | ____________ | ____________ | ____________ | _______ | ____________ | ________\n")
		for _, display := range DisplayRows(result.Projection.Yearly, opts.Expand) {
			if display.Placeholder {
				_, _ = fmt.Fprintf(w, "...  | (%d more years)\n", display.Hidden)
				continue
			}
			row := display.Row
			_, _ = fmt.Fprintf(w, "%4d | %12s | %12s | %12s | %7s | %12s | %s\n",
				row.Year,
				format.WholeCurrency(row.Principal),
				format.WholeCurrency(row.CashFlow),
				format.WholeCurrency(row.TotalReturn),
				format.Percent(row.TotalReturnPercent),
				format.WholeCurrency(row.Equity),
				format.Multiple(row.EquityMultiple),
			)
		}

		_, _ = fmt.Fprintf(w, "\nYear | Cash Flow    | Value        | Equity       | Loan Balance\n")
		_, _ = fmt.Fprintf(w, "____ | ____________ | ____________ | ____________ | ____________\n")
		for _, point := range result.Projection.Chart {
			_, _ = fmt.Fprintf(w, "%4d | %12s | %12s | %12s | %12s\n",
				point.Year,
				format.WholeCurrency(point.CashFlow),
				format.WholeCurrency(point.PropertyValue),
				format.WholeCurrency(point.Equity),
				format.WholeCurrency(point.LoanBalance),
			)
		}

		if opts.Schedule {
			_, _ = fmt.Fprintf(w, "\n")
			ScheduleFormat(w, result.Property.Loan().Schedule())
		}

		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// ScheduleFormat outputs a month-by-month amortization schedule.
func ScheduleFormat(w io.Writer, schedule []loans.Payment) {
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "Month | Payment     | Principal   | Interest    | Balance\n")
	_, _ = fmt.Fprintf(w, "_____ | ___________ | ___________ | ___________ | ___________\n")
	for _, payment := range schedule {
		_, _ = p.Fprintf(w, "%5d | $%.2f | $%.2f | $%.2f | $%.2f\n",
			payment.Period, payment.Payment, payment.Principal, payment.Interest, payment.RemainingPrincipal)
	}
}

// csvHeader is shared by yearly and chart records; fields that do not apply
// to a series are left empty.
var csvHeader = []string{
	"series", "scenario", "year",
	"principal", "cashFlow", "totalReturn", "totalReturnPercent",
	"equity", "equityMultiple", "propertyValue", "loanBalance",
}

// CsvFormat outputs the full yearly table and chart series of every result
// in comma-separated value format.
func CsvFormat(w io.Writer, results []forecast.Forecast) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, result := range results {
		for _, row := range result.Projection.Yearly {
			if err := cw.Write(yearlyRecord(result.Name, row)); err != nil {
				return err
			}
		}
		for _, point := range result.Projection.Chart {
			if err := cw.Write(chartRecord(result.Name, point)); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func yearlyRecord(name string, row analysis.YearlyRow) []string {
	return []string{
		"yearly", name, strconv.Itoa(row.Year),
		number(row.Principal), number(row.CashFlow), number(row.TotalReturn), number(row.TotalReturnPercent),
		number(row.Equity), number(row.EquityMultiple), "", "",
	}
}

func chartRecord(name string, point analysis.ChartPoint) []string {
	return []string{
		"chart", name, strconv.Itoa(point.Year),
		"", number(point.CashFlow), "", "",
		number(point.Equity), "", number(point.PropertyValue), number(point.LoanBalance),
	}
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// JSONFormat outputs every result as indented JSON.
func JSONFormat(w io.Writer, results []forecast.Forecast) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
