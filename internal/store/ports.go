// Package store defines the record store ports used by the services.
package store

import (
	"context"

	"saledash/internal/core"
	"saledash/internal/query"
)

// FindOptions bounds a Find call. A zero Limit means no limit.
type FindOptions struct {
	Skip  int
	Limit int
}

// PageOptions converts a pagination window into FindOptions.
func PageOptions(p query.Page) FindOptions {
	return FindOptions{Skip: p.Offset(), Limit: p.Limit()}
}

type (
	// RecordWriter replaces the stored dataset. The two operations are not
	// transactional as a pair.
	RecordWriter interface {
		DeleteAll(ctx context.Context) (deleted int64, err error)
		InsertMany(ctx context.Context, records []core.Transaction) (inserted int, err error)
	}

	// RecordReader runs filtered reads. Results come back in insertion order.
	RecordReader interface {
		Find(ctx context.Context, f query.Filter, opts FindOptions) ([]core.Transaction, error)
		Count(ctx context.Context, f query.Filter) (int64, error)
	}

	// RecordStore is a full backend.
	RecordStore interface {
		RecordWriter
		RecordReader
		Close() error
	}
)
