// Package storage contains the storage-agnostic export contract and the
// flattening of listings into column-ordered rows. Backends (SQLite,
// Postgres) implement Repository using their most efficient bulk-insert
// primitive.
package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"painel/internal/listing"
)

// Columns is the canonical export column order shared by all backends.
var Columns = []string{
	"name", "builder", "status",
	"delivery_raw", "delivery_date", "delivery_label", "is_ready",
	"segment", "value",
	"area_raw", "area_min", "area_max",
	"neighborhood", "address", "typology", "external_link",
}

// Repository abstracts a backend's bulk insert capability plus DDL
// execution. CopyFrom inserts rows aligned to the given column order and
// returns the number of rows inserted.
type Repository interface {
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	Exec(ctx context.Context, sql string) error
}

// Rows flattens listings into column-ordered rows matching Columns. Delivery
// dates export as a nullable ISO date string.
func Rows(listings []listing.Listing) [][]any {
	out := make([][]any, 0, len(listings))
	for _, l := range listings {
		var delivery any
		if l.DeliveryDate != nil {
			delivery = l.DeliveryDate.Format(time.DateOnly)
		}
		out = append(out, []any{
			l.Name, l.Builder, l.Status,
			l.DeliveryRaw, delivery, l.DeliveryLabel, l.IsReady,
			l.Segment, l.Value,
			l.AreaRaw, l.AreaMin, l.AreaMax,
			l.Neighborhood, l.Address, l.Typology, l.ExternalLink,
		})
	}
	return out
}

// ExportSnapshot writes the whole normalized collection to repo. When ddl is
// non-empty it is executed first (typically CREATE TABLE IF NOT EXISTS).
func ExportSnapshot(ctx context.Context, repo Repository, ddl string, listings []listing.Listing) (int64, error) {
	if ddl != "" {
		if err := repo.Exec(ctx, ddl); err != nil {
			return 0, fmt.Errorf("storage: ddl: %w", err)
		}
	}
	start := time.Now()
	n, err := repo.CopyFrom(ctx, Columns, Rows(listings))
	if err != nil {
		return n, fmt.Errorf("storage: export: %w", err)
	}
	log.Printf("storage: exported %d listings in %s", n, time.Since(start))
	return n, nil
}
