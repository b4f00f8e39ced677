// Package records defines the untyped row representation shared by the CSV
// parser and the normalizer. A Row maps canonical column keys to cell values
// of unspecified type (string, float64, time.Time, or nil for missing cells).
package records

// Row is one raw spreadsheet row keyed by canonical column name.
type Row map[string]any

// Has reports whether key is present with a non-nil value.
func (r Row) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns the value for key when it is a string, or "" otherwise.
// Numeric and date cells are intentionally not stringified here; callers that
// care about the cell's native type switch on the raw value instead.
func (r Row) String(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}
