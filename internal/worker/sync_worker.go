package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"finance/internal/amqp"
	"finance/internal/ports"
)

// Source is what the worker reads back from the primary store.
type Source interface {
	ports.TransactionLister
	ports.TransactionReader
}

// SyncWorker copies stored transactions into the mirror.
type SyncWorker struct {
	source      Source
	mirror      ports.TransactionMirror
	concurrency int
}

func NewSyncWorker(source Source, mirror ports.TransactionMirror, concurrency int) *SyncWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &SyncWorker{
		source:      source,
		mirror:      mirror,
		concurrency: concurrency,
	}
}

// Handle applies one change message. It is idempotent: replays and
// out-of-order deliveries converge on the stored state.
func (w *SyncWorker) Handle(ctx context.Context, msg *amqp.TransactionMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"message_id", msg.MessageID,
		"action", msg.Action,
		"id", msg.ID)

	switch msg.Action {
	case amqp.ActionDelete:
		if err := w.mirror.Remove(ctx, msg.ID); err != nil {
			return fmt.Errorf("remove from mirror: %w", err)
		}
		return nil
	case amqp.ActionUpsert:
		t, err := w.source.GetTransaction(ctx, msg.ID)
		if errors.Is(err, ports.ErrNotFound) {
			// Deleted after the upsert was queued.
			slog.InfoContext(ctx, "Transaction gone from store, removing from mirror", "id", msg.ID)
			if err := w.mirror.Remove(ctx, msg.ID); err != nil {
				return fmt.Errorf("remove from mirror: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("get transaction from store: %w", err)
		}
		if err := w.mirror.Upsert(ctx, t); err != nil {
			return fmt.Errorf("upsert into mirror: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", msg.Action)
	}
}

// Resync pushes every stored transaction to the mirror. Individual failures
// are logged and counted; the run only stops early when ctx is done.
func (w *SyncWorker) Resync(ctx context.Context) error {
	start := time.Now()
	all, err := w.source.ListTransactions(ctx, "", "")
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	slog.InfoContext(ctx, "Starting full resync", "count", len(all), "concurrency", w.concurrency)

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, t := range all {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := w.mirror.Upsert(gctx, t); err != nil {
				failed.Add(1)
				slog.ErrorContext(gctx, "Failed to resync transaction", "id", t.ID, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("resync interrupted: %w", err)
	}

	slog.InfoContext(ctx, "Resync completed",
		"total", len(all),
		"synced", int64(len(all))-failed.Load(),
		"errors", failed.Load(),
		"duration", time.Since(start))

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("resync: %d of %d transactions failed", n, len(all))
	}
	return nil
}
