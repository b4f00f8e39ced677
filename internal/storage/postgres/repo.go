// Package postgres implements a Postgres storage.Repository using pgx v5.
// Rows are bulk-loaded with the COPY protocol.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DDLFor returns the CREATE TABLE statement for the export table.
func DDLFor(table string) string {
	return fmt.Sprintf(ddlTemplate, table)
}

const ddlTemplate = `CREATE TABLE IF NOT EXISTS %s (
	name text NOT NULL,
	builder text,
	status text,
	delivery_raw text,
	delivery_date date,
	delivery_label text,
	is_ready boolean NOT NULL DEFAULT false,
	segment text,
	value double precision NOT NULL DEFAULT 0,
	area_raw text,
	area_min double precision NOT NULL DEFAULT 0,
	area_max double precision NOT NULL DEFAULT 0,
	neighborhood text,
	address text,
	typology text,
	external_link text
)`

// Config holds Postgres repository configuration.
type Config struct {
	// DSN is the connection string for pgxpool, e.g. "postgresql://...".
	DSN string

	// Table is the target table name, optionally schema-qualified
	// (e.g. "public.listings"). Defaults to "listings".
	Table string
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if cfg.Table == "" {
		cfg.Table = "listings"
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	closeFn := func() { pool.Close() }
	return &Repository{pool: pool, cfg: cfg}, closeFn, nil
}

// CopyFrom bulk-loads rows into the configured table via the COPY protocol.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("postgres: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: acquire: %w", err)
	}
	defer conn.Release()

	n, err := conn.Conn().CopyFrom(ctx, tableIdent(r.cfg.Table), columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("postgres: copy: %w", err)
	}
	return n, nil
}

// Exec executes an arbitrary SQL statement (typically DDL).
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

// tableIdent splits an optionally schema-qualified table name into a pgx
// identifier.
func tableIdent(table string) pgx.Identifier {
	parts := strings.Split(table, ".")
	return pgx.Identifier(parts)
}
