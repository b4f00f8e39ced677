// Command export normalizes the listings spreadsheet once and writes the
// snapshot to a SQLite or Postgres table for ad-hoc analysis.
package main

import (
	"context"
	"log"

	"painel/internal/config"
	"painel/internal/dataset"
	"painel/internal/datasource"
	"painel/internal/datasource/file"
	"painel/internal/datasource/httpds"
	"painel/internal/normalizer"
	csvparser "painel/internal/parser/csv"
	"painel/internal/storage"
	"painel/internal/storage/postgres"
	"painel/internal/storage/sqlite"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var src datasource.Source
	if cfg.SourceURL != "" {
		src = httpds.NewRemote(nil, cfg.SourceURL)
	} else {
		src = file.NewLocal(cfg.SourcePath)
	}

	parser := csvparser.NewParser(csvparser.Options{
		HasHeader:       true,
		TrimSpace:       true,
		HeaderMap:       normalizer.DefaultHeaderMap,
		RequiredColumns: normalizer.RequiredColumns,
	})
	norm := normalizer.New(normalizer.Options{
		DisableMagnitudeFix: cfg.DisableMagnitudeFix,
	})

	store := dataset.NewStore(src, parser, norm)
	snap, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("export: load: %v", err)
	}

	var (
		repo    storage.Repository
		ddl     string
		closeFn func()
	)
	switch cfg.ExportBackend {
	case "postgres":
		r, cf, err := postgres.NewRepository(ctx, postgres.Config{DSN: cfg.PostgresDSN, Table: cfg.ExportTable})
		if err != nil {
			log.Fatalf("export: %v", err)
		}
		repo, ddl, closeFn = r, postgres.DDLFor(cfg.ExportTable), cf
	case "sqlite":
		r, cf, err := sqlite.NewRepository(ctx, sqlite.Config{DSN: cfg.SQLiteDSN, Table: cfg.ExportTable})
		if err != nil {
			log.Fatalf("export: %v", err)
		}
		repo, ddl, closeFn = r, sqlite.DDLFor(cfg.ExportTable), cf
	default:
		log.Fatalf("export: unknown backend %q (want sqlite or postgres)", cfg.ExportBackend)
	}
	defer closeFn()

	if _, err := storage.ExportSnapshot(ctx, repo, ddl, snap.Listings); err != nil {
		log.Fatalf("export: %v", err)
	}
}
