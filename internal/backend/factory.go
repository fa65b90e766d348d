package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finance/internal/amqp"
	"finance/internal/memory"
	"finance/internal/storage"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(config)
	case MemoryBackend:
		result = f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	f.attachPublisher(ctx, result, config)
	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Store:   repo,
		Ready:   repo.Ping,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) *BackendResult {
	store := memory.NewFromFile(config.MemorySeedFile)

	f.logger.Info("Initialized memory backend", "seed_file", config.MemorySeedFile)

	return &BackendResult{
		Store: store,
		Ready: func(context.Context) error { return nil },
	}
}

// attachPublisher connects to the broker when configured. A broker that is
// down only disables publishing; writes still succeed locally.
func (f *DefaultFactory) attachPublisher(ctx context.Context, result *BackendResult, config Config) {
	if config.AMQPURL == "" {
		return
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without sync", "error", err)
		return
	}
	f.logger.InfoContext(ctx, "Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	result.Publisher = client
	storeCleanup := result.Cleanup
	result.Cleanup = func() error {
		var errs []error
		if err := client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
		if storeCleanup != nil {
			if err := storeCleanup(); err != nil {
				errs = append(errs, fmt.Errorf("storage: %w", err))
			}
		}
		return errors.Join(errs...)
	}
}
