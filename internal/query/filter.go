// Package query evaluates multi-criterion filter specifications over the
// normalized listing collection. Constraint categories are AND-combined;
// values inside a set constraint are OR-combined. Filtering is stable: the
// result preserves the snapshot's insertion order.
package query

import (
	"strings"
	"time"

	"painel/internal/listing"
)

// NameMode selects how the name constraint matches.
type NameMode int

const (
	// MatchSet requires the listing name to be an exact member of the
	// Names set.
	MatchSet NameMode = iota

	// MatchSubstring passes when any entry of Names is a case-insensitive
	// substring of the listing name (free-text search).
	MatchSubstring
)

// FilterSpec is the complete set of active constraints for one evaluation.
// Every field is optional; the zero value is the identity filter (returns
// the full collection). Range bounds use pointers so that "no constraint"
// is represented by absence rather than by a zero sentinel.
type FilterSpec struct {
	Neighborhoods  []string
	Names          []string
	NameMode       NameMode
	Builders       []string
	Segments       []string
	DeliveryLabels []string

	ValueMin *float64
	ValueMax *float64
	AreaMin  *float64
	AreaMax  *float64

	// HideReady excludes ready-now listings. The zero value keeps them,
	// i.e. includeReady defaults to true.
	HideReady bool

	// DateFrom/DateTo bound the delivery date, inclusive. The window is
	// active only when both are set; ready-now listings never match an
	// active window regardless of HideReady.
	DateFrom time.Time
	DateTo   time.Time
}

// IsEmpty reports whether no constraint is active.
func (f FilterSpec) IsEmpty() bool {
	return len(f.Neighborhoods) == 0 && len(f.Names) == 0 &&
		len(f.Builders) == 0 && len(f.Segments) == 0 &&
		len(f.DeliveryLabels) == 0 &&
		f.ValueMin == nil && f.ValueMax == nil &&
		f.AreaMin == nil && f.AreaMax == nil &&
		!f.HideReady && !f.dateWindowActive()
}

func (f FilterSpec) dateWindowActive() bool {
	return !f.DateFrom.IsZero() && !f.DateTo.IsZero()
}

// And returns the field-wise conjunction of f and other: applying the result
// equals applying f then other. Set constraints intersect, range bounds take
// the tighter side, flags OR, date windows intersect. The equivalence holds
// for exact set membership; substring name queries do not compose through
// set intersection, so the law is only guaranteed under MatchSet.
func (f FilterSpec) And(other FilterSpec) FilterSpec {
	out := FilterSpec{
		Neighborhoods:  intersect(f.Neighborhoods, other.Neighborhoods),
		Names:          intersect(f.Names, other.Names),
		NameMode:       f.NameMode,
		Builders:       intersect(f.Builders, other.Builders),
		Segments:       intersect(f.Segments, other.Segments),
		DeliveryLabels: intersect(f.DeliveryLabels, other.DeliveryLabels),
		ValueMin:       maxBound(f.ValueMin, other.ValueMin),
		ValueMax:       minBound(f.ValueMax, other.ValueMax),
		AreaMin:        maxBound(f.AreaMin, other.AreaMin),
		AreaMax:        minBound(f.AreaMax, other.AreaMax),
		HideReady:      f.HideReady || other.HideReady,
	}
	if other.NameMode != MatchSet {
		out.NameMode = other.NameMode
	}
	out.DateFrom, out.DateTo = intersectWindow(f, other)
	return out
}

// Apply returns the ordered subsequence of listings satisfying every active
// constraint of spec. Cheap set-membership checks run before range and date
// checks; that ordering is an optimization only, the result is the same in
// any order.
func Apply(listings []listing.Listing, spec FilterSpec) []listing.Listing {
	if spec.IsEmpty() {
		return listings
	}

	neighborhoods := toSet(spec.Neighborhoods)
	builders := toSet(spec.Builders)
	segments := toSet(spec.Segments)
	labels := toSet(spec.DeliveryLabels)
	names := toSet(spec.Names)

	out := make([]listing.Listing, 0, len(listings))
	for _, l := range listings {
		if !inSet(neighborhoods, l.Neighborhood) ||
			!inSet(builders, l.Builder) ||
			!inSet(segments, l.Segment) ||
			!inSet(labels, l.DeliveryLabel) {
			continue
		}
		if !matchName(l.Name, spec.Names, names, spec.NameMode) {
			continue
		}
		if spec.HideReady && l.IsReady {
			continue
		}
		if !inRange(l.Value, spec.ValueMin, spec.ValueMax) {
			continue
		}
		if !areaOverlaps(l, spec.AreaMin, spec.AreaMax) {
			continue
		}
		if spec.dateWindowActive() && !inDateWindow(l.DeliveryDate, spec.DateFrom, spec.DateTo) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// matchName applies the name constraint in the configured mode. An empty
// constraint always passes.
func matchName(name string, raw []string, set map[string]struct{}, mode NameMode) bool {
	if len(raw) == 0 {
		return true
	}
	if mode == MatchSubstring {
		lower := strings.ToLower(name)
		for _, q := range raw {
			if strings.Contains(lower, strings.ToLower(q)) {
				return true
			}
		}
		return false
	}
	_, ok := set[name]
	return ok
}

// inRange checks point containment of v within the optional [min, max]
// bounds. A min greater than max yields false for every v, degrading an
// inverted specification to the empty result by construction.
func inRange(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

// areaOverlaps checks interval overlap between the listing's sampled area
// range and the query window: the listing passes when any sampled unit size
// could fall inside the window.
func areaOverlaps(l listing.Listing, min, max *float64) bool {
	if min != nil && l.AreaMax < *min {
		return false
	}
	if max != nil && l.AreaMin > *max {
		return false
	}
	return true
}

// inDateWindow checks inclusive containment of the delivery date. Listings
// without a delivery date never match.
func inDateWindow(t *time.Time, from, to time.Time) bool {
	if t == nil {
		return false
	}
	return !t.Before(from) && !t.After(to)
}

func toSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// inSet reports membership; a nil set means "unconstrained".
func inSet(set map[string]struct{}, v string) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

// intersect returns the set intersection of a and b, preserving a's order.
// An empty side means "unconstrained" and yields the other side.
func intersect(a, b []string) []string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	bs := toSet(b)
	out := make([]string, 0, len(a))
	for _, v := range a {
		if _, ok := bs[v]; ok {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		// Disjoint constraints must not collapse back to "unconstrained":
		// keep an impossible one-element marker so the conjunction stays
		// empty-by-construction.
		return []string{"\x00"}
	}
	return out
}

func maxBound(a, b *float64) *float64 {
	if a == nil {
		return b
	}
	if b == nil || *a >= *b {
		return a
	}
	return b
}

func minBound(a, b *float64) *float64 {
	if a == nil {
		return b
	}
	if b == nil || *a <= *b {
		return a
	}
	return b
}

// intersectWindow conjoins two optional date windows. One active window wins
// outright; two active windows intersect, possibly into an inverted (empty)
// window.
func intersectWindow(a, b FilterSpec) (from, to time.Time) {
	switch {
	case a.dateWindowActive() && b.dateWindowActive():
		from, to = a.DateFrom, a.DateTo
		if b.DateFrom.After(from) {
			from = b.DateFrom
		}
		if b.DateTo.Before(to) {
			to = b.DateTo
		}
		return from, to
	case a.dateWindowActive():
		return a.DateFrom, a.DateTo
	case b.dateWindowActive():
		return b.DateFrom, b.DateTo
	default:
		return time.Time{}, time.Time{}
	}
}
