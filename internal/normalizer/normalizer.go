// Package normalizer converts raw spreadsheet rows into canonical Listings.
//
// Normalization is deterministic and total: malformed cells never raise; they
// degrade to safe defaults (0, empty sequence, "ready now", empty string) so
// one bad cell never sinks a whole load.
package normalizer

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"painel/internal/listing"
	"painel/pkg/records"
)

// Canonical column keys produced by the CSV header map and consumed here.
const (
	ColName         = "name"
	ColBuilder      = "builder"
	ColStatus       = "status"
	ColDelivery     = "delivery"
	ColSegment      = "segment"
	ColValue        = "value"
	ColArea         = "area"
	ColNeighborhood = "neighborhood"
	ColAddress      = "address"
	ColTypology     = "typology"
	ColLink         = "link"
)

// RequiredColumns are the canonical keys the spreadsheet export must carry.
// Typology and the external link are optional and degrade to absent.
var RequiredColumns = []string{
	ColName, ColBuilder, ColStatus, ColDelivery, ColSegment,
	ColValue, ColArea, ColNeighborhood, ColAddress,
}

// DefaultHeaderMap translates the source spreadsheet's Portuguese headers to
// canonical keys. Trailing spaces in the source headers are real; the parser
// trims them before lookup.
var DefaultHeaderMap = map[string]string{
	"Nome do Empreendimento":    ColName,
	"Construtora":               ColBuilder,
	"Status":                    ColStatus,
	"Previsão de Entrega":       ColDelivery,
	"Segmento":                  ColSegment,
	"VGV Médio":                 ColValue,
	"Metragens":                 ColArea,
	"Áreas (m²)":                ColArea,
	"Bairro/Cidade":             ColNeighborhood,
	"Endereço":                  ColAddress,
	"Tipologia":                 ColTypology,
	"Atualização google earth":  ColLink,
	"Link":                      ColLink,
}

// Options tunes normalization behavior.
type Options struct {
	// DisableMagnitudeFix turns off the divide-by-10 correction for
	// over-threshold numeric VGV cells (see CorrectMagnitude).
	DisableMagnitudeFix bool
}

// Normalizer maps raw rows to Listings.
type Normalizer struct{ opt Options }

// New returns a Normalizer with the given Options.
func New(opt Options) *Normalizer { return &Normalizer{opt: opt} }

// Normalize converts one raw row into a canonical Listing. It is a pure
// function of the row: normalizing the same row twice yields identical
// Listings.
func (n *Normalizer) Normalize(row records.Row) listing.Listing {
	l := listing.Listing{
		Name:         row.String(ColName),
		Builder:      row.String(ColBuilder),
		Status:       row.String(ColStatus),
		DeliveryRaw:  cellString(row[ColDelivery]),
		Segment:      TitleSegment(row[ColSegment]),
		Value:        ParseCurrency(row[ColValue], !n.opt.DisableMagnitudeFix),
		AreaRaw:      cellString(row[ColArea]),
		Neighborhood: row.String(ColNeighborhood),
		Address:      row.String(ColAddress),
		Typology:     row.String(ColTypology),
		ExternalLink: row.String(ColLink),
	}

	if t, ok := ParseDelivery(row[ColDelivery]); ok {
		l.DeliveryDate = &t
	}
	l.IsReady = l.DeliveryDate == nil
	l.DeliveryLabel = listing.DeliveryLabelFor(l.DeliveryDate)

	l.AreaSamples = ExtractAreas(row[ColArea])
	l.AreaMin, l.AreaMax = AreaBounds(l.AreaSamples)

	return l
}

// TitleSegment normalizes a market-segment cell: coerce to string, trim
// surrounding whitespace, then title-case every word under the Brazilian
// Portuguese casing rules. Absent cells become the empty string, which stays
// empty.
func TitleSegment(cell any) string {
	s := strings.TrimSpace(cellString(cell))
	if s == "" {
		return ""
	}
	return cases.Title(language.BrazilianPortuguese).String(s)
}

// cellString coerces a raw cell to its verbatim string form. Numeric cells
// are rendered without a fixed precision; nil and unknown types become "".
func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return ""
	}
}
