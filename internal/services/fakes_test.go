package services

import (
	"context"
	"errors"
	"sync"

	"saledash/internal/amqp"
	"saledash/internal/core"
	"saledash/internal/query"
	"saledash/internal/store"
	"saledash/internal/store/memory"
)

var errBoom = errors.New("boom")

type fakeFetcher struct {
	records []core.Transaction
	err     error
}

func (f fakeFetcher) Fetch(context.Context) ([]core.Transaction, error) {
	if f.err != nil {
		return nil, &core.FetchError{URL: f.URL(), Err: f.err}
	}
	return f.records, nil
}

func (fakeFetcher) URL() string { return "http://dataset.test/data.json" }

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []*amqp.SeedCompletedMessage
	err  error
}

func (n *recordingNotifier) PublishSeedCompleted(_ context.Context, msg *amqp.SeedCompletedMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return n.err
}

// flakyStore wraps a memory store and fails selected operations.
type flakyStore struct {
	*memory.Store
	failDelete bool
	failInsert bool
	failFind   bool
	failCount  bool
}

func (s *flakyStore) DeleteAll(ctx context.Context) (int64, error) {
	if s.failDelete {
		return 0, errBoom
	}
	return s.Store.DeleteAll(ctx)
}

func (s *flakyStore) InsertMany(ctx context.Context, recs []core.Transaction) (int, error) {
	if s.failInsert {
		return 0, errBoom
	}
	return s.Store.InsertMany(ctx, recs)
}

func (s *flakyStore) Find(ctx context.Context, f query.Filter, opts store.FindOptions) ([]core.Transaction, error) {
	if s.failFind {
		return nil, errBoom
	}
	return s.Store.Find(ctx, f, opts)
}

func (s *flakyStore) Count(ctx context.Context, f query.Filter) (int64, error) {
	if s.failCount {
		return 0, errBoom
	}
	return s.Store.Count(ctx, f)
}
