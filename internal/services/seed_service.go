package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"saledash/internal/amqp"
	"saledash/internal/core"
	applog "saledash/internal/log"
	"saledash/internal/store"
)

// DatasetFetcher retrieves the seed snapshot.
type DatasetFetcher interface {
	Fetch(ctx context.Context) ([]core.Transaction, error)
	URL() string
}

// SeedNotifier is told about completed reseeds.
type SeedNotifier interface {
	PublishSeedCompleted(ctx context.Context, msg *amqp.SeedCompletedMessage) error
}

// SeedService replaces the store contents with the fetched dataset.
type SeedService struct {
	fetcher  DatasetFetcher
	writer   store.RecordWriter
	notifier SeedNotifier
}

// NewSeedService wires a seeder. notifier may be nil.
func NewSeedService(fetcher DatasetFetcher, writer store.RecordWriter, notifier SeedNotifier) *SeedService {
	return &SeedService{
		fetcher:  fetcher,
		writer:   writer,
		notifier: notifier,
	}
}

// Seed fetches the dataset, deletes every stored record and inserts the
// snapshot. The delete and insert are not atomic as a pair: an insert
// failure leaves the store empty. Concurrent calls are not serialised.
func (s *SeedService) Seed(ctx context.Context) (int, error) {
	seedID := uuid.NewString()
	start := time.Now()

	records, err := s.fetcher.Fetch(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Dataset fetch failed", applog.FieldSeedID, seedID, "url", s.fetcher.URL(), applog.FieldError, err)
		return 0, err
	}

	deleted, err := s.writer.DeleteAll(ctx)
	if err != nil {
		return 0, core.NewStoreError("delete all", err)
	}

	inserted, err := s.writer.InsertMany(ctx, records)
	if err != nil {
		slog.ErrorContext(ctx, "Insert after delete failed, store left empty",
			applog.FieldSeedID, seedID, "deleted", deleted, applog.FieldError, err)
		return 0, core.NewStoreError("insert many", err)
	}

	slog.InfoContext(ctx, "Dataset reseeded",
		applog.FieldSeedID, seedID,
		"deleted", deleted,
		applog.FieldRecords, inserted,
		"duration_ms", time.Since(start).Milliseconds())

	s.notify(ctx, seedID, inserted)
	return inserted, nil
}

func (s *SeedService) notify(ctx context.Context, seedID string, records int) {
	if s.notifier == nil {
		return
	}
	msg := amqp.NewSeedCompletedMessage(seedID, records, s.fetcher.URL())
	if err := s.notifier.PublishSeedCompleted(ctx, msg); err != nil {
		// the store is already replaced; the event is best effort
		slog.ErrorContext(ctx, "Failed to publish seed completed message", applog.FieldSeedID, seedID, applog.FieldError, err)
	}
}
