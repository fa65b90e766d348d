package services

import (
	"context"
	"fmt"
	"log/slog"

	"finance/internal/core"
	"finance/internal/ports"
)

// TransactionService orchestrates writes across the store and the change feed.
type TransactionService struct {
	store     ports.Store
	publisher ports.ChangePublisher
	onChange  []func()
}

// NewTransactionService accepts a nil publisher when messaging is disabled.
func NewTransactionService(store ports.Store, publisher ports.ChangePublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// OnChange registers fn to run after every successful write.
func (s *TransactionService) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

func (s *TransactionService) Get(ctx context.Context, id int64) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

// Create saves the transaction locally and publishes a sync message.
func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	id, err := s.store.Insert(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}
	s.changed()

	slog.InfoContext(ctx, "Transaction created",
		"id", id,
		"type", t.Kind,
		"category", t.Category,
		"amount", t.Amount.String(),
		"date", t.Date.String())

	if err := s.publishSync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
	}
	return id, nil
}

func (s *TransactionService) Update(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.store.Update(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	s.changed()

	slog.InfoContext(ctx, "Transaction updated", "id", t.ID)

	if err := s.publishSync(ctx, t.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", t.ID, "error", err)
	}
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.changed()

	slog.InfoContext(ctx, "Transaction deleted", "id", id)

	if err := s.publishDelete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message", "id", id, "error", err)
	}
	return nil
}

func (s *TransactionService) changed() {
	for _, fn := range s.onChange {
		fn()
	}
}

func (s *TransactionService) publishSync(ctx context.Context, id int64) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Publisher not configured, skipping sync message")
		return nil
	}
	return s.publisher.PublishTransactionSync(ctx, id)
}

func (s *TransactionService) publishDelete(ctx context.Context, id int64) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Publisher not configured, skipping delete message")
		return nil
	}
	return s.publisher.PublishTransactionDelete(ctx, id)
}
