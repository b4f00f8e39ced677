package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"painel/internal/listing"
)

// fakeRepo records CopyFrom/Exec calls for contract tests.
type fakeRepo struct {
	ddl     []string
	columns []string
	rows    [][]any
	copyErr error
	execErr error
}

func (f *fakeRepo) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	f.columns = columns
	f.rows = rows
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	return int64(len(rows)), nil
}

func (f *fakeRepo) Exec(ctx context.Context, sql string) error {
	f.ddl = append(f.ddl, sql)
	return f.execErr
}

func sampleListings() []listing.Listing {
	delivery := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	return []listing.Listing{
		{
			Name: "Residencial Aurora", Builder: "Horizonte", Status: "Lançamento",
			DeliveryRaw: "mar/2026", DeliveryDate: &delivery, DeliveryLabel: "Mar/2026",
			Segment: "Alto Padrão", Value: 2000000,
			AreaRaw: "45 e 60m²", AreaSamples: []float64{45, 60}, AreaMin: 45, AreaMax: 60,
			Neighborhood: "Meireles", Address: "Av. Beira Mar 1000",
		},
		{
			Name: "Vila das Flores", Builder: "Colinas", Status: "Pronto",
			DeliveryLabel: listing.ReadyLabel, IsReady: true,
			Segment: "Econômico", Value: 450000,
			Neighborhood: "Messejana", Address: "Rua das Flores 12",
		},
	}
}

/*
TestRows verifies the flattening contract: one row per listing, cells aligned
to Columns, and the delivery date exported as a nullable ISO string.
*/
func TestRows(t *testing.T) {
	t.Parallel()

	rows := Rows(sampleListings())
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(Columns) {
			t.Fatalf("row %d has %d cells, want %d", i, len(row), len(Columns))
		}
	}

	want := []any{
		"Residencial Aurora", "Horizonte", "Lançamento",
		"mar/2026", "2026-03-01", "Mar/2026", false,
		"Alto Padrão", float64(2000000),
		"45 e 60m²", float64(45), float64(60),
		"Meireles", "Av. Beira Mar 1000", "", "",
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Fatalf("row 0 = %#v, want %#v", rows[0], want)
	}

	// A ready-now listing with no date exports a nil delivery_date cell.
	if rows[1][4] != nil {
		t.Fatalf("ready-now delivery_date = %#v, want nil", rows[1][4])
	}
	if rows[1][6] != true {
		t.Fatal("is_ready cell not set")
	}
}

func TestExportSnapshot(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	n, err := ExportSnapshot(context.Background(), repo, "CREATE TABLE IF NOT EXISTS listings ()", sampleListings())
	if err != nil {
		t.Fatalf("ExportSnapshot error: %v", err)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if len(repo.ddl) != 1 {
		t.Fatalf("ddl executed %d times, want 1", len(repo.ddl))
	}
	if !reflect.DeepEqual(repo.columns, Columns) {
		t.Fatalf("columns = %v", repo.columns)
	}
}

func TestExportSnapshot_Errors(t *testing.T) {
	t.Parallel()

	ddlErr := errors.New("no such table")
	repo := &fakeRepo{execErr: ddlErr}
	if _, err := ExportSnapshot(context.Background(), repo, "BAD DDL", nil); !errors.Is(err, ddlErr) {
		t.Fatalf("ddl error not wrapped: %v", err)
	}
	if repo.rows != nil {
		t.Fatal("CopyFrom must not run after DDL failure")
	}

	copyErr := errors.New("insert failed")
	repo = &fakeRepo{copyErr: copyErr}
	if _, err := ExportSnapshot(context.Background(), repo, "", sampleListings()); !errors.Is(err, copyErr) {
		t.Fatalf("copy error not wrapped: %v", err)
	}
}
