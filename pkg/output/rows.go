package output

import (
	"github.com/iwvelando/rental-analysis/internal/analysis"
	"github.com/iwvelando/rental-analysis/pkg/constants"
)

// DisplayRow is a yearly table row as shown to the user. A placeholder row
// stands in for the rows hidden by the collapsed view.
type DisplayRow struct {
	Row         *analysis.YearlyRow `json:"row,omitempty"`
	Placeholder bool                `json:"placeholder,omitempty"`
	Hidden      int                 `json:"hidden,omitempty"`
}

// CollapseRows returns the collapsed view of a yearly table: all rows when
// there are few, otherwise the first two, a placeholder and the last two.
// The input slice is not modified.
func CollapseRows(rows []analysis.YearlyRow) []DisplayRow {
	if len(rows) <= constants.CollapseThreshold {
		return ExpandRows(rows)
	}

	edge := constants.CollapsedEdgeRows
	out := make([]DisplayRow, 0, 2*edge+1)
	for i := 0; i < edge; i++ {
		out = append(out, DisplayRow{Row: &rows[i]})
	}
	out = append(out, DisplayRow{Placeholder: true, Hidden: len(rows) - 2*edge})
	for i := len(rows) - edge; i < len(rows); i++ {
		out = append(out, DisplayRow{Row: &rows[i]})
	}
	return out
}

// ExpandRows returns every row of the table.
func ExpandRows(rows []analysis.YearlyRow) []DisplayRow {
	out := make([]DisplayRow, len(rows))
	for i := range rows {
		out[i] = DisplayRow{Row: &rows[i]}
	}
	return out
}

// DisplayRows picks the collapsed or expanded view.
func DisplayRows(rows []analysis.YearlyRow, expand bool) []DisplayRow {
	if expand {
		return ExpandRows(rows)
	}
	return CollapseRows(rows)
}

// Tier grades a return figure for display.
type Tier string

// Tiers from best to worst.
const (
	TierGood Tier = "good"
	TierFair Tier = "fair"
	TierPoor Tier = "poor"
)

// CashOnCashTier grades a cash-on-cash return in percent.
func CashOnCashTier(percent float64) Tier {
	return tier(percent, 8, 5)
}

// Year1ReturnTier grades a year-1 total return in percent.
func Year1ReturnTier(percent float64) Tier {
	return tier(percent, 10, 6)
}

func tier(value, good, fair float64) Tier {
	switch {
	case value >= good:
		return TierGood
	case value >= fair:
		return TierFair
	default:
		return TierPoor
	}
}
