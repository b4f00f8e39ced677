// Package dataset builds and holds the process-wide listing snapshot.
//
// The collection is built exactly once per load from the configured data
// source and is never mutated afterwards; a reload replaces the whole
// snapshot atomically. Queries always observe a complete, consistent
// collection.
package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"

	"painel/internal/datasource"
	"painel/internal/listing"
	"painel/internal/metrics"
	"painel/internal/normalizer"
	csvparser "painel/internal/parser/csv"
)

// Snapshot is one immutable build of the normalized collection.
type Snapshot struct {
	Listings []listing.Listing

	// Fingerprint is the xxh3 hash of the raw source bytes. Identical
	// source data yields an identical fingerprint, which the API layer
	// surfaces as an ETag.
	Fingerprint uint64

	LoadedAt time.Time
	Rows     int
	Skipped  int
}

// Store owns the current snapshot and rebuilds it on demand. Reads are
// lock-free; concurrent Reload calls are collapsed into a single rebuild.
type Store struct {
	source datasource.Source
	parser *csvparser.Parser
	norm   *normalizer.Normalizer

	cur   atomic.Pointer[Snapshot]
	group singleflight.Group
}

// NewStore wires a Store from its collaborators. The store is empty until
// the first Load/Reload.
func NewStore(src datasource.Source, p *csvparser.Parser, n *normalizer.Normalizer) *Store {
	return &Store{source: src, parser: p, norm: n}
}

// Current returns the active snapshot, or nil before the first load.
func (s *Store) Current() *Snapshot {
	return s.cur.Load()
}

// Load builds the initial snapshot. It is an alias for Reload kept for call
// sites that read better as an explicit first load.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	return s.Reload(ctx)
}

// Reload rebuilds the snapshot from the source and installs it atomically.
// Concurrent callers share one rebuild; the previous snapshot stays visible
// until the replacement is complete, so a failed rebuild never leaves a
// partial collection behind.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	v, err, _ := s.group.Do("reload", func() (any, error) {
		snap, err := s.build(ctx)
		if err != nil {
			return nil, err
		}
		s.cur.Store(snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (s *Store) build(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	rc, err := s.source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset: open source: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("dataset: read source: %w", err)
	}

	rows, skipped, err := s.parser.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("dataset: parse: %w", err)
	}

	listings := make([]listing.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, s.norm.Normalize(row))
	}

	snap := &Snapshot{
		Listings:    listings,
		Fingerprint: xxh3.Hash(raw),
		LoadedAt:    time.Now(),
		Rows:        len(listings),
		Skipped:     skipped,
	}

	elapsed := time.Since(start)
	metrics.RecordLoad(len(listings), skipped, elapsed)
	log.Printf("dataset: loaded %s listings (%d rows skipped, %s bytes) in %s fingerprint=%016x",
		humanize.Comma(int64(len(listings))), skipped, humanize.Bytes(uint64(len(raw))), elapsed, snap.Fingerprint)
	return snap, nil
}
