// Package memory is an in-process RecordStore used for local runs and tests.
package memory

import (
	"context"
	"strconv"
	"sync"

	"saledash/internal/core"
	"saledash/internal/query"
	"saledash/internal/store"
)

type Store struct {
	mu    sync.RWMutex
	seq   int64
	items []core.Transaction
}

var _ store.RecordStore = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// DeleteAll drops every record.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.items))
	s.items = nil
	return n, nil
}

// InsertMany appends the records, assigning sequential IDs.
func (s *Store) InsertMany(ctx context.Context, records []core.Transaction) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range records {
		s.seq++
		t.ID = strconv.FormatInt(s.seq, 10)
		s.items = append(s.items, t)
	}
	return len(records), nil
}

func (s *Store) Find(ctx context.Context, f query.Filter, opts store.FindOptions) ([]core.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Transaction, 0)
	skipped := 0
	for _, t := range s.items {
		if !f.Matches(t) {
			continue
		}
		if skipped < opts.Skip {
			skipped++
			continue
		}
		out = append(out, t)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, f query.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, t := range s.items {
		if f.Matches(t) {
			n++
		}
	}
	return n, nil
}

func (s *Store) Close() error { return nil }
