package normalizer

import (
	"regexp"
	"strings"
	"time"
)

// deliveryLayouts are tried in order against textual delivery cells that did
// not match a Portuguese month form. Day-first layouts come before month-only
// ones so "05/03/2026" is not read as month 5 of year 3.
var deliveryLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"01/2006",
	"1/2006",
	"2006",
}

// ptMonths lists Portuguese month-name prefixes (3 letters, lowercased and
// de-accented for março) in calendar order. Matching walks this slice so the
// result is deterministic even when a stray word shares a prefix.
var ptMonths = []struct {
	prefix string
	month  time.Month
}{
	{"jan", time.January}, {"fev", time.February}, {"mar", time.March},
	{"abr", time.April}, {"mai", time.May}, {"jun", time.June},
	{"jul", time.July}, {"ago", time.August}, {"set", time.September},
	{"out", time.October}, {"nov", time.November}, {"dez", time.December},
}

var yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

// excelEpoch is day zero of the 1900 date system used by spreadsheet serial
// numbers.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDelivery attempts to read a delivery estimate from a raw cell using
// flexible format inference. The second return is false when the cell is
// empty or no format matches, which callers treat as "ready now".
func ParseDelivery(cell any) (time.Time, bool) {
	switch v := cell.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v, true
	case float64:
		return fromExcelSerial(v)
	case int:
		return fromExcelSerial(float64(v))
	case string:
		return parseDeliveryText(v)
	default:
		return time.Time{}, false
	}
}

// fromExcelSerial converts a spreadsheet date serial (days since the 1900
// epoch) into a date. Serials outside a plausible window are rejected rather
// than producing absurd years.
func fromExcelSerial(serial float64) (time.Time, bool) {
	if serial < 20000 || serial > 80000 {
		return time.Time{}, false
	}
	return excelEpoch.AddDate(0, 0, int(serial)), true
}

func parseDeliveryText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Portuguese month name plus year, e.g. "mar/2026", "Março de 2026".
	if t, ok := parsePortugueseMonth(s); ok {
		return t, true
	}

	for _, layout := range deliveryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parsePortugueseMonth matches a month name (by its 3-letter prefix at the
// start of a token) combined with a 4-digit year anywhere in the string.
func parsePortugueseMonth(s string) (time.Time, bool) {
	lower := strings.ToLower(s)
	lower = strings.ReplaceAll(lower, "ç", "c") // março -> marco

	ym := yearPattern.FindString(lower)
	if ym == "" {
		return time.Time{}, false
	}
	year := 0
	for _, r := range ym {
		year = year*10 + int(r-'0')
	}

	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	for _, tok := range tokens {
		for _, m := range ptMonths {
			if strings.HasPrefix(tok, m.prefix) {
				return time.Date(year, m.month, 1, 0, 0, 0, 0, time.UTC), true
			}
		}
	}
	return time.Time{}, false
}
