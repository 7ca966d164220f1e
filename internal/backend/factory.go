package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"saledash/internal/amqp"
	"saledash/internal/store"
	"saledash/internal/store/memory"
	"saledash/internal/store/mongo"
	"saledash/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		recordStore store.RecordStore
		err         error
	)
	switch config.Type {
	case MemoryBackend:
		recordStore = f.createMemoryStore()
	case SQLiteBackend:
		recordStore, err = f.createSQLiteStore(config)
	case MongoBackend:
		recordStore, err = f.createMongoStore(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	result := &BackendResult{Store: recordStore}

	// AMQP is optional; a broker outage must not keep the API down.
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPRoutingKey)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without seed notifications", "error", err)
			amqpClient = nil
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"routing_key", config.AMQPRoutingKey)
			result.Notifier = amqpClient
		}
	}

	result.Cleanup = func() error {
		var errs []error
		if amqpClient != nil {
			errs = append(errs, amqpClient.Close())
		}
		errs = append(errs, recordStore.Close())
		return errors.Join(errs...)
	}

	return result, nil
}

func (f *DefaultFactory) createMemoryStore() store.RecordStore {
	f.logger.Info("Initialized memory backend")
	return memory.New()
}

func (f *DefaultFactory) createSQLiteStore(config Config) (store.RecordStore, error) {
	repo, err := sqlite.NewRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return repo, nil
}

func (f *DefaultFactory) createMongoStore(ctx context.Context, config Config) (store.RecordStore, error) {
	if config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.ConnectTimeout)
		defer cancel()
	}

	s, err := mongo.Connect(ctx, config.MongoURI, config.MongoDatabase, config.MongoCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	f.logger.Info("Initialized MongoDB backend",
		"database", config.MongoDatabase,
		"collection", config.MongoCollection)
	return s, nil
}
