// Package datasource defines the contract for raw spreadsheet byte sources.
package datasource

import (
	"context"
	"io"
)

// Source yields the raw bytes of the listings spreadsheet export. The dataset
// snapshot builder reads it exactly once per (re)load.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
