// Command painel loads the listings spreadsheet, builds the normalized
// snapshot, and serves the filterable JSON API.
package main

import (
	"context"
	"log"

	"painel/internal/config"
	"painel/internal/dataset"
	"painel/internal/datasource"
	"painel/internal/datasource/file"
	"painel/internal/datasource/httpds"
	"painel/internal/feedback"
	"painel/internal/normalizer"
	csvparser "painel/internal/parser/csv"
	"painel/internal/webui"
)

func main() {
	cfg := config.Load()

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
	if _, err := store.Load(context.Background()); err != nil {
		log.Fatalf("painel: initial load: %v", err)
	}

	fb := feedback.NewClient(nil, cfg.FeedbackURL)

	srv := webui.NewServer(webui.Config{Addr: cfg.Addr}, store, fb)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("painel: server: %v", err)
	}
}
