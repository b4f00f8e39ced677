// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the panel service.
//
// The package is intentionally minimal:
//
//   - It exposes a narrow interface (Backend) focused on counters and timing
//     data.
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured.
//   - The rest of the codebase depends only on this interface, keeping any
//     concrete metric system isolated in a subpackage.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it.
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordQuery records one filter evaluation: its latency and how many
// listings matched.
func RecordQuery(d time.Duration, matched int) {
	backend.IncCounter("panel_queries_total", 1, nil)
	backend.IncCounter("panel_query_matches_total", float64(matched), nil)
	backend.ObserveHistogram("panel_query_duration_seconds", d.Seconds(), nil)
}

// RecordLoad records one snapshot build.
func RecordLoad(rows, skipped int, d time.Duration) {
	backend.IncCounter("panel_load_rows_total", float64(rows), Labels{"kind": "loaded"})
	backend.IncCounter("panel_load_rows_total", float64(skipped), Labels{"kind": "skipped"})
	backend.ObserveHistogram("panel_load_duration_seconds", d.Seconds(), nil)
}
