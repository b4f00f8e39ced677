package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

// areaPattern matches unsigned decimal numbers after ',' has been normalized
// to '.'.
var areaPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ExtractAreas scans a raw area-description cell for every numeric token, in
// left-to-right order. Free text like "45 e 60m²" yields [45, 60]; empty or
// non-textual input yields nil. The source may use ',' as the decimal
// separator, so it is normalized to '.' before scanning.
func ExtractAreas(cell any) []float64 {
	switch v := cell.(type) {
	case nil:
		return nil
	case float64:
		if v < 0 {
			return nil
		}
		return []float64{v}
	case int:
		if v < 0 {
			return nil
		}
		return []float64{float64(v)}
	case string:
		return extractAreaText(v)
	default:
		return nil
	}
}

func extractAreaText(s string) []float64 {
	s = strings.ReplaceAll(s, ",", ".")
	matches := areaPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// AreaBounds returns the min and max of samples, or (0, 0) for an empty
// sequence. Zero is the "no data" convention, not an error; range filtering
// treats it contextually.
func AreaBounds(samples []float64) (min, max float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	min, max = samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
