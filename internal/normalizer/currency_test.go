package normalizer

import "testing"

/*
TestParseCurrency verifies the canonical textual rule for the source locale
('.' thousands separator, ',' decimal separator) and the safe-default policy:
unparseable or negative input degrades to 0, never an error.
*/
func TestParseCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cell any
		want float64
	}{
		{"formatted_brl", "R$ 1.234.567,89", 1234567.89},
		{"plain_grouped", "1.500.000", 1500000},
		{"decimal_only", "950,50", 950.5},
		{"surrounding_text", "aprox. R$ 2.000.000 (estimado)", 2000000},
		{"empty", "", 0},
		{"nil_cell", nil, 0},
		{"garbage", "a consultar", 0},
		{"numeric_below_threshold", 9_500_000.0, 9_500_000},
		{"numeric_int", 120000, 120000},
		{"negative_numeric", -5.0, 0},
		{"unsupported_type", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCurrency(tt.cell, true); got != tt.want {
				t.Fatalf("ParseCurrency(%v) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

/*
TestCorrectMagnitude pins down the divide-by-10 heuristic in isolation:
strictly above the threshold corrects, at or below passes through.
*/
func TestCorrectMagnitude(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"above_threshold", 15_000_000, 1_500_000},
		{"at_threshold", 10_000_000, 10_000_000},
		{"below_threshold", 9_999_999, 9_999_999},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CorrectMagnitude(tt.in); got != tt.want {
				t.Fatalf("CorrectMagnitude(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// The correction applies only to numeric cells: a textual value above the
// threshold is taken at face value, and the fixMagnitude switch disables the
// correction entirely.
func TestParseCurrency_MagnitudeIsolation(t *testing.T) {
	t.Parallel()

	if got := ParseCurrency(15_000_000.0, true); got != 1_500_000 {
		t.Fatalf("numeric above threshold = %v, want 1500000", got)
	}
	if got := ParseCurrency(15_000_000.0, false); got != 15_000_000 {
		t.Fatalf("numeric with fix disabled = %v, want 15000000", got)
	}
	if got := ParseCurrency("15.000.000", true); got != 15_000_000 {
		t.Fatalf("textual above threshold = %v, want 15000000", got)
	}
}
