package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{-1234.567, "-$1,234.57"},
		{1000000, "$1,000,000.00"},
		{999.999, "$1,000.00"},
	}
	for _, tt := range tests {
		if got := Currency(tt.amount); got != tt.want {
			t.Errorf("Currency(%v) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}

func TestCurrencyNegativeZero(t *testing.T) {
	if got := Currency(-0.001); got != "$0.00" {
		t.Errorf("Currency(-0.001) = %s, want $0.00", got)
	}
	if got := WholeCurrency(-0.4); got != "$0" {
		t.Errorf("WholeCurrency(-0.4) = %s, want $0", got)
	}
}

func TestWholeCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{1234.4, "$1,234"},
		{1234.5, "$1,235"},
		{-2.5, "-$2"},
		{-1500.6, "-$1,501"},
		{240000, "$240,000"},
	}
	for _, tt := range tests {
		if got := WholeCurrency(tt.amount); got != tt.want {
			t.Errorf("WholeCurrency(%v) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}

func TestPercentAndMultiple(t *testing.T) {
	if got := Percent(4.0625); got != "4.06%" {
		t.Errorf("Percent() = %s, want 4.06%%", got)
	}
	if got := Percent(0); got != "0.00%" {
		t.Errorf("Percent(0) = %s", got)
	}
	if got := Multiple(1.234); got != "1.23x" {
		t.Errorf("Multiple() = %s, want 1.23x", got)
	}
}
