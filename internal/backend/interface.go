package backend

import (
	"context"

	"finance/internal/ports"
)

type CleanupFunc func() error

// BackendResult is everything the app needs from the data layer.
type BackendResult struct {
	Store ports.Store
	// Publisher is nil when messaging is not configured.
	Publisher ports.ChangePublisher
	// Ready reports whether the store can serve requests.
	Ready   func(ctx context.Context) error
	Cleanup CleanupFunc
}

// Close runs Cleanup when one is set.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

type Config struct {
	Type BackendType

	SQLiteDBPath   string
	MemorySeedFile string

	// Empty AMQPURL disables publishing.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
