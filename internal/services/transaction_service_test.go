package services

import (
	"context"
	"errors"
	"testing"

	"finance/internal/core"
	"finance/internal/memory"
	"finance/internal/ports"
)

type fakePublisher struct {
	synced  []int64
	deleted []int64
	err     error
}

func (f *fakePublisher) PublishTransactionSync(_ context.Context, id int64) error {
	f.synced = append(f.synced, id)
	return f.err
}

func (f *fakePublisher) PublishTransactionDelete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func validTx() core.Transaction {
	return core.Transaction{
		Kind:     core.Expense,
		Category: "Food",
		Amount:   core.AmountOf("9.99"),
		Date:     core.NewDate(2024, 4, 2),
	}
}

func TestTransactionService_WritesPublishAndNotify(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewTransactionService(memory.New(), pub)
	changes := 0
	svc.OnChange(func() { changes++ })

	id, err := svc.Create(ctx, validTx())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Category = "Dining"
	if err := svc.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if changes != 3 {
		t.Fatalf("OnChange ran %d times, want 3", changes)
	}
	if len(pub.synced) != 2 || pub.synced[0] != id || len(pub.deleted) != 1 || pub.deleted[0] != id {
		t.Fatalf("unexpected publish calls: sync=%v delete=%v", pub.synced, pub.deleted)
	}
}

func TestTransactionService_PublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewTransactionService(store, &fakePublisher{err: errors.New("broker down")})

	id, err := svc.Create(ctx, validTx())
	if err != nil {
		t.Fatalf("create should succeed when publishing fails: %v", err)
	}
	if _, err := store.GetTransaction(ctx, id); err != nil {
		t.Fatalf("transaction not persisted: %v", err)
	}
}

func TestTransactionService_RejectsInvalidWithoutSideEffects(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewTransactionService(memory.New(), pub)
	changes := 0
	svc.OnChange(func() { changes++ })

	bad := validTx()
	bad.Amount = core.AmountOf("0")
	if _, err := svc.Create(ctx, bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := svc.Delete(ctx, 42); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if changes != 0 || len(pub.synced)+len(pub.deleted) != 0 {
		t.Fatalf("failed writes must not notify: changes=%d pub=%+v", changes, pub)
	}
}

func TestTransactionService_NilPublisher(t *testing.T) {
	svc := NewTransactionService(memory.New(), nil)
	if _, err := svc.Create(context.Background(), validTx()); err != nil {
		t.Fatalf("create: %v", err)
	}
}
