// Package listing defines the canonical, normalized representation of one
// development listing and its render-ready display strings.
package listing

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReadyLabel is the delivery label for developments with no future delivery
// date (already completed).
const ReadyLabel = "READY"

// deliveryLayout renders delivery dates as abbreviated month plus 4-digit
// year, e.g. "Mar/2026".
const deliveryLayout = "Jan/2006"

// Listing is the canonical normalized record for one development. It is
// immutable once built: the snapshot holds the only copies and the query
// engine returns read-only views.
type Listing struct {
	Name    string `json:"name"`
	Builder string `json:"builder"`
	Status  string `json:"status"`

	DeliveryRaw   string     `json:"delivery_raw,omitempty"`
	DeliveryDate  *time.Time `json:"delivery_date,omitempty"`
	DeliveryLabel string     `json:"delivery_label"`
	IsReady       bool       `json:"is_ready"`

	Segment string `json:"segment"`

	// Value is the development's gross sales value (VGV) in BRL. Always >= 0.
	Value float64 `json:"value"`

	AreaRaw     string    `json:"area_raw,omitempty"`
	AreaSamples []float64 `json:"area_samples,omitempty"`
	AreaMin     float64   `json:"area_min"`
	AreaMax     float64   `json:"area_max"`

	Neighborhood string `json:"neighborhood"`
	Address      string `json:"address"`
	Typology     string `json:"typology,omitempty"`
	ExternalLink string `json:"external_link,omitempty"`
}

// ptBR groups thousands with '.' per the source locale.
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// DeliveryLabelFor returns the display label for a delivery date: the
// "Mar/2026" form when t is non-nil, ReadyLabel otherwise.
func DeliveryLabelFor(t *time.Time) string {
	if t == nil {
		return ReadyLabel
	}
	return t.Format(deliveryLayout)
}

// DisplayValue renders Value as Brazilian currency with grouped thousands and
// no decimals, e.g. "R$ 1.234.567".
func (l Listing) DisplayValue() string {
	return ptBR.Sprintf("R$ %.0f", l.Value)
}

// DisplayAreas renders the sampled unit sizes as "45m², 60m²", or the "N/D"
// sentinel when no samples were extracted.
func (l Listing) DisplayAreas() string {
	if len(l.AreaSamples) == 0 {
		return "N/D"
	}
	parts := make([]string, len(l.AreaSamples))
	for i, a := range l.AreaSamples {
		parts[i] = strconv.FormatFloat(a, 'f', -1, 64) + "m²"
	}
	return strings.Join(parts, ", ")
}
