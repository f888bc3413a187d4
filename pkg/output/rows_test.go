package output

import (
	"testing"

	"github.com/iwvelando/rental-analysis/internal/analysis"
)

func makeRows(n int) []analysis.YearlyRow {
	rows := make([]analysis.YearlyRow, n)
	for i := range rows {
		rows[i] = analysis.YearlyRow{Index: i + 1, Year: 2026 + i + 1}
	}
	return rows
}

func TestCollapseRows(t *testing.T) {
	tests := []struct {
		name        string
		rows        int
		wantLen     int
		placeholder bool
	}{
		{"Empty", 0, 0, false},
		{"Three rows", 3, 3, false},
		{"Five rows", 5, 5, false},
		{"Six rows", 6, 5, true},
		{"Thirty rows", 30, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := makeRows(tt.rows)
			got := CollapseRows(rows)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if !tt.placeholder {
				for _, d := range got {
					if d.Placeholder {
						t.Error("unexpected placeholder")
					}
				}
				return
			}
			if !got[2].Placeholder || got[2].Hidden != tt.rows-4 {
				t.Errorf("middle row = %+v, want placeholder hiding %d", got[2], tt.rows-4)
			}
			if got[0].Row.Index != 1 || got[1].Row.Index != 2 {
				t.Error("first two rows not kept")
			}
			if got[3].Row.Index != tt.rows-1 || got[4].Row.Index != tt.rows {
				t.Error("last two rows not kept")
			}
			if len(rows) != tt.rows || rows[2].Index != 3 {
				t.Error("input rows were modified")
			}
		})
	}
}

func TestDisplayRowsExpand(t *testing.T) {
	rows := makeRows(30)
	if got := len(DisplayRows(rows, true)); got != 30 {
		t.Errorf("expanded rows = %d, want 30", got)
	}
	if got := len(DisplayRows(rows, false)); got != 5 {
		t.Errorf("collapsed rows = %d, want 5", got)
	}
}

func TestTiers(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(float64) Tier
		value float64
		want  Tier
	}{
		{"Cash-on-cash good", CashOnCashTier, 8, TierGood},
		{"Cash-on-cash fair", CashOnCashTier, 5, TierFair},
		{"Cash-on-cash poor", CashOnCashTier, 4.99, TierPoor},
		{"Cash-on-cash negative", CashOnCashTier, -3, TierPoor},
		{"Year 1 good", Year1ReturnTier, 12, TierGood},
		{"Year 1 fair", Year1ReturnTier, 6, TierFair},
		{"Year 1 poor", Year1ReturnTier, 5.5, TierPoor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.value); got != tt.want {
				t.Errorf("tier(%v) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}
