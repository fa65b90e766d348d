package ports

import (
	"context"
	"errors"

	"finance/internal/core"
)

// ErrNotFound is returned when no transaction carries the requested ID.
var ErrNotFound = errors.New("transaction not found")

// Ports for outbound adapters.
type (
	// TransactionLister is the record source behind reports. Empty bounds
	// mean unbounded; bounds are inclusive ISO dates.
	TransactionLister interface {
		ListTransactions(ctx context.Context, dateFrom, dateTo string) ([]core.Transaction, error)
	}

	TransactionReader interface {
		GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	}

	TransactionWriter interface {
		Insert(ctx context.Context, t core.Transaction) (id int64, err error)
		Update(ctx context.Context, t core.Transaction) error
		Delete(ctx context.Context, id int64) error
	}

	// Store is the full persistence surface used by the app.
	Store interface {
		TransactionLister
		TransactionReader
		TransactionWriter
	}

	// TransactionMirror keeps an external copy (a spreadsheet) in step.
	TransactionMirror interface {
		Upsert(ctx context.Context, t core.Transaction) error
		Remove(ctx context.Context, id int64) error
	}

	// ChangePublisher announces writes to interested workers.
	ChangePublisher interface {
		PublishTransactionSync(ctx context.Context, id int64) error
		PublishTransactionDelete(ctx context.Context, id int64) error
	}
)
