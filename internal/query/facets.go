package query

import (
	"sort"

	"painel/internal/listing"
)

// Facets carries the distinct filterable values of a listing collection plus
// the observed numeric extents. Renderers use it to populate sidebar
// selectors and slider bounds.
type Facets struct {
	Neighborhoods  []string `json:"neighborhoods"`
	Names          []string `json:"names"`
	Builders       []string `json:"builders"`
	Segments       []string `json:"segments"`
	DeliveryLabels []string `json:"delivery_labels"`

	ValueMin float64 `json:"value_min"`
	ValueMax float64 `json:"value_max"`
	AreaMin  float64 `json:"area_min"`
	AreaMax  float64 `json:"area_max"`
}

// ComputeFacets walks the collection once and returns sorted distinct values
// per filter dimension. Empty field values are dropped, mirroring the
// dropna-then-unique behavior the sidebar expects.
func ComputeFacets(listings []listing.Listing) Facets {
	var f Facets
	neighborhoods := map[string]struct{}{}
	names := map[string]struct{}{}
	builders := map[string]struct{}{}
	segments := map[string]struct{}{}
	labels := map[string]struct{}{}

	first := true
	for _, l := range listings {
		collect(neighborhoods, l.Neighborhood)
		collect(names, l.Name)
		collect(builders, l.Builder)
		collect(segments, l.Segment)
		collect(labels, l.DeliveryLabel)

		if first {
			f.ValueMin, f.ValueMax = l.Value, l.Value
			f.AreaMin, f.AreaMax = l.AreaMin, l.AreaMax
			first = false
			continue
		}
		if l.Value < f.ValueMin {
			f.ValueMin = l.Value
		}
		if l.Value > f.ValueMax {
			f.ValueMax = l.Value
		}
		if l.AreaMin < f.AreaMin {
			f.AreaMin = l.AreaMin
		}
		if l.AreaMax > f.AreaMax {
			f.AreaMax = l.AreaMax
		}
	}

	f.Neighborhoods = sorted(neighborhoods)
	f.Names = sorted(names)
	f.Builders = sorted(builders)
	f.Segments = sorted(segments)
	f.DeliveryLabels = sorted(labels)
	return f
}

func collect(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
