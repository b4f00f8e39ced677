// Package webui exposes the filterable listing view as a small JSON HTTP
// API. The renderer collects raw UI input, passes it as query parameters,
// and receives render-ready records plus an echo of the filter it asked for.
//
// Routes:
//
//	GET  /healthz       → liveness
//	GET  /api/listings  → filtered listings (query params → FilterSpec)
//	GET  /api/facets    → distinct filter values for sidebar population
//	POST /api/reload    → atomic snapshot rebuild
//	POST /api/feedback  → fire-and-forget suggestion forwarding
package webui

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"painel/internal/dataset"
	"painel/internal/feedback"
	"painel/internal/listing"
	"painel/internal/metrics"
	"painel/internal/query"
)

// dateParam is the wire format for date_from/date_to.
const dateParam = "2006-01-02"

// Config controls server startup.
type Config struct {
	Addr string
}

// Server wires the snapshot store and the query engine to HTTP.
type Server struct {
	cfg   Config
	store *dataset.Store
	fb    *feedback.Client
	mux   *http.ServeMux
}

// NewServer constructs a Server with routes installed.
func NewServer(cfg Config, store *dataset.Store, fb *feedback.Client) *Server {
	s := &Server{cfg: cfg, store: store, fb: fb, mux: http.NewServeMux()}
	s.routes()
	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	log.Printf("webui: listening on %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.mux)
}

// Handler exposes the routed mux, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/listings", s.handleListings)
	s.mux.HandleFunc("/api/facets", s.handleFacets)
	s.mux.HandleFunc("/api/reload", s.handleReload)
	s.mux.HandleFunc("/api/feedback", s.handleFeedback)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// listingItem is one rendered record: the canonical fields plus the display
// strings the card layer shows verbatim.
type listingItem struct {
	listing.Listing
	ValueDisplay string `json:"value_display"`
	AreasDisplay string `json:"areas_display"`
}

// listingsResponse is the /api/listings envelope. Filter echoes back the
// specification parsed from the request so the UI can mirror its own state.
type listingsResponse struct {
	Filter      filterEcho    `json:"filter"`
	Count       int           `json:"count"`
	Fingerprint string        `json:"fingerprint"`
	Listings    []listingItem `json:"listings"`
}

// filterEcho is the JSON form of a FilterSpec.
type filterEcho struct {
	Neighborhoods  []string `json:"neighborhoods,omitempty"`
	Names          []string `json:"names,omitempty"`
	NameMode       string   `json:"name_mode,omitempty"`
	Builders       []string `json:"builders,omitempty"`
	Segments       []string `json:"segments,omitempty"`
	DeliveryLabels []string `json:"delivery_labels,omitempty"`
	ValueMin       *float64 `json:"value_min,omitempty"`
	ValueMax       *float64 `json:"value_max,omitempty"`
	AreaMin        *float64 `json:"area_min,omitempty"`
	AreaMax        *float64 `json:"area_max,omitempty"`
	HideReady      bool     `json:"hide_ready,omitempty"`
	DateFrom       string   `json:"date_from,omitempty"`
	DateTo         string   `json:"date_to,omitempty"`
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap := s.store.Current()
	if snap == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}

	spec := ParseFilterSpec(r.URL.Query())

	start := time.Now()
	matched := query.Apply(snap.Listings, spec)
	metrics.RecordQuery(time.Since(start), len(matched))

	items := make([]listingItem, len(matched))
	for i, l := range matched {
		items[i] = listingItem{
			Listing:      l,
			ValueDisplay: l.DisplayValue(),
			AreasDisplay: l.DisplayAreas(),
		}
	}

	w.Header().Set("ETag", fmt.Sprintf(`"%016x"`, snap.Fingerprint))
	writeJSON(w, http.StatusOK, listingsResponse{
		Filter:      echoSpec(spec),
		Count:       len(items),
		Fingerprint: fmt.Sprintf("%016x", snap.Fingerprint),
		Listings:    items,
	})
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap := s.store.Current()
	if snap == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("ETag", fmt.Sprintf(`"%016x"`, snap.Fingerprint))
	writeJSON(w, http.StatusOK, query.ComputeFacets(snap.Listings))
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, err := s.store.Reload(r.Context())
	if err != nil {
		log.Printf("webui: reload failed: %v", err)
		http.Error(w, "reload failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":        snap.Rows,
		"skipped":     snap.Skipped,
		"fingerprint": fmt.Sprintf("%016x", snap.Fingerprint),
		"loaded_at":   snap.LoadedAt,
	})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form: "+err.Error(), http.StatusBadRequest)
		return
	}
	msg := strings.TrimSpace(r.FormValue("message"))
	if msg == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	s.fb.SendAsync(msg)
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "accepted"})
}

// ParseFilterSpec builds a FilterSpec from request query parameters.
// Repeated parameters form set constraints; absent numeric parameters stay
// unconstrained. Unparseable values are dropped rather than rejected, in
// line with the engine's degrade-to-empty policy.
func ParseFilterSpec(q url.Values) query.FilterSpec {
	spec := query.FilterSpec{
		Neighborhoods:  compact(q["neighborhood"]),
		Names:          compact(q["name"]),
		Builders:       compact(q["builder"]),
		Segments:       compact(q["segment"]),
		DeliveryLabels: compact(q["delivery"]),
		ValueMin:       floatParam(q, "value_min"),
		ValueMax:       floatParam(q, "value_max"),
		AreaMin:        floatParam(q, "area_min"),
		AreaMax:        floatParam(q, "area_max"),
	}
	if q.Get("name_mode") == "substring" {
		spec.NameMode = query.MatchSubstring
	}
	if b, err := strconv.ParseBool(q.Get("hide_ready")); err == nil {
		spec.HideReady = b
	}
	if from, err := time.Parse(dateParam, q.Get("date_from")); err == nil {
		if to, err := time.Parse(dateParam, q.Get("date_to")); err == nil {
			spec.DateFrom, spec.DateTo = from, to
		}
	}
	return spec
}

func echoSpec(spec query.FilterSpec) filterEcho {
	e := filterEcho{
		Neighborhoods:  spec.Neighborhoods,
		Names:          spec.Names,
		Builders:       spec.Builders,
		Segments:       spec.Segments,
		DeliveryLabels: spec.DeliveryLabels,
		ValueMin:       spec.ValueMin,
		ValueMax:       spec.ValueMax,
		AreaMin:        spec.AreaMin,
		AreaMax:        spec.AreaMax,
		HideReady:      spec.HideReady,
	}
	if spec.NameMode == query.MatchSubstring {
		e.NameMode = "substring"
	}
	if !spec.DateFrom.IsZero() && !spec.DateTo.IsZero() {
		e.DateFrom = spec.DateFrom.Format(dateParam)
		e.DateTo = spec.DateTo.Format(dateParam)
	}
	return e
}

func compact(vals []string) []string {
	out := vals[:0:0]
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func floatParam(q url.Values, key string) *float64 {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("webui: encode response: %v", err)
	}
}
