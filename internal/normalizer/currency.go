package normalizer

import (
	"strconv"
	"strings"
)

// MagnitudeThreshold is the value above which a numeric VGV cell is assumed
// to carry one extra trailing digit (a recurring data-entry slip in the
// source spreadsheet).
const MagnitudeThreshold = 10_000_000

// CorrectMagnitude divides v by 10 when it exceeds MagnitudeThreshold.
//
// This is a data-cleaning heuristic, not a guaranteed-correct rule: it can
// silently shrink a legitimate very large value. It is kept as its own step
// so it can be disabled (Options.DisableMagnitudeFix) or revised without
// touching the rest of the currency parser.
func CorrectMagnitude(v float64) float64 {
	if v > MagnitudeThreshold {
		return v / 10
	}
	return v
}

// ParseCurrency converts a raw VGV cell into a non-negative amount in BRL.
//
// Textual cells follow the source locale ('.' thousands, ',' decimals): every
// character except digits and separators is stripped, '.' removed, the
// remaining ',' becomes the decimal point, and the result is parsed.
// Unparseable or negative input degrades to 0, never an error.
//
// Numeric cells are taken as-is and, unless fixMagnitude is false, run
// through CorrectMagnitude.
func ParseCurrency(cell any, fixMagnitude bool) float64 {
	switch v := cell.(type) {
	case nil:
		return 0
	case float64:
		return clampNonNegative(maybeFix(v, fixMagnitude))
	case float32:
		return clampNonNegative(maybeFix(float64(v), fixMagnitude))
	case int:
		return clampNonNegative(maybeFix(float64(v), fixMagnitude))
	case int64:
		return clampNonNegative(maybeFix(float64(v), fixMagnitude))
	case string:
		return parseCurrencyText(v)
	default:
		return 0
	}
}

func maybeFix(v float64, fix bool) float64 {
	if fix {
		return CorrectMagnitude(v)
	}
	return v
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// parseCurrencyText implements the canonical textual rule: keep digits and
// separators, drop '.', then ',' -> '.'.
func parseCurrencyText(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return clampNonNegative(v)
}
