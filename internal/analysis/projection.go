package analysis

import "github.com/iwvelando/rental-analysis/pkg/mathutil"

// YearlyRow is one row of the yearly return table. Currency values are
// rounded to whole units, percentages and the multiple to two decimals.
type YearlyRow struct {
	Index              int     `json:"index"`
	Year               int     `json:"year"`
	Principal          float64 `json:"principal"`
	CashFlow           float64 `json:"cashFlow"`
	TotalReturn        float64 `json:"totalReturn"`
	TotalReturnPercent float64 `json:"totalReturnPercent"`
	Equity             float64 `json:"equity"`
	EquityMultiple     float64 `json:"equityMultiple"`
}

// ChartPoint is one point of the projection chart, rounded to whole units.
type ChartPoint struct {
	Year          int     `json:"year"`
	CashFlow      float64 `json:"cashFlow"`
	PropertyValue float64 `json:"propertyValue"`
	Equity        float64 `json:"equity"`
	LoanBalance   float64 `json:"loanBalance"`
}

// Projection bundles everything derived from one PropertyData.
type Projection struct {
	Results Results      `json:"results"`
	Yearly  []YearlyRow  `json:"yearly"`
	Chart   []ChartPoint `json:"chart"`
}

// TableOffsets returns the offsets of yearly table row i: row 1 carries
// purchase-year prices with a full year of amortization applied.
func TableOffsets(i int) Offsets {
	return Offsets{Appreciation: i - 1, Amortization: i}
}

// YearlyTable builds the yearly return table. currentYear only labels rows.
func YearlyTable(data PropertyData, a Assumptions, currentYear int) []YearlyRow {
	invested := data.TotalCashInvested()
	count := a.TableRows(data.LoanTerm)

	rows := make([]YearlyRow, 0, count)
	for i := 1; i <= count; i++ {
		s := SnapshotAt(data, TableOffsets(i), a)
		totalReturn := s.AnnualCashFlow + s.Principal

		rows = append(rows, YearlyRow{
			Index:              i,
			Year:               currentYear + i,
			Principal:          mathutil.RoundWhole(s.Principal),
			CashFlow:           mathutil.RoundWhole(s.AnnualCashFlow),
			TotalReturn:        mathutil.RoundWhole(totalReturn),
			TotalReturnPercent: mathutil.RoundHundredths(mathutil.CalculatePercentage(totalReturn, invested)),
			Equity:             mathutil.RoundWhole(s.Equity),
			EquityMultiple:     mathutil.RoundHundredths(mathutil.SafeDivide(s.Equity, invested)),
		})
	}
	return rows
}

// ChartSeries builds the chart series from the purchase year through the
// end of the projection window.
func ChartSeries(data PropertyData, a Assumptions, currentYear int) []ChartPoint {
	last := a.ProjectionYears(data.LoanTerm)

	points := make([]ChartPoint, 0, last+1)
	for yearOffset := 0; yearOffset <= last; yearOffset++ {
		s := SnapshotAt(data, At(yearOffset), a)
		points = append(points, ChartPoint{
			Year:          currentYear + yearOffset,
			CashFlow:      mathutil.RoundWhole(s.AnnualCashFlow),
			PropertyValue: mathutil.RoundWhole(s.PropertyValue),
			Equity:        mathutil.RoundWhole(s.Equity),
			LoanBalance:   mathutil.RoundWhole(s.LoanBalance),
		})
	}
	return points
}

// Project runs the headline analysis and both series.
func Project(data PropertyData, a Assumptions, currentYear int) Projection {
	return Projection{
		Results: Analyze(data, a),
		Yearly:  YearlyTable(data, a, currentYear),
		Chart:   ChartSeries(data, a, currentYear),
	}
}
