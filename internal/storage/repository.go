package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finance/internal/core"
	"finance/internal/ports"

	_ "modernc.org/sqlite"
)

var _ ports.Store = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping is used by the readiness probe.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ListTransactions returns rows newest first. Amounts are read back as stored
// text, so rows written by other tools keep whatever value they carry.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, dateFrom, dateTo string) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]core.Transaction, len(rows))
	for i, row := range rows {
		out[i] = fromRow(row)
	}
	return out, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return fromRow(row), nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	id, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		Type:     t.Kind.String(),
		Category: t.Category,
		Amount:   t.Amount.String(),
		Date:     t.Date.String(),
		Comment:  nullString(t.Comment),
	})
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"type", t.Kind,
		"category", t.Category,
		"amount", t.Amount.String(),
		"date", t.Date.String())

	return id, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	n, err := r.queries.UpdateTransaction(ctx, UpdateTransactionParams{
		Type:     t.Kind.String(),
		Category: t.Category,
		Amount:   t.Amount.String(),
		Date:     t.Date.String(),
		Comment:  nullString(t.Comment),
		ID:       t.ID,
	})
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", t.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update transaction %d: %w", t.ID, ports.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete transaction %d: %w", id, ports.ErrNotFound)
	}
	slog.InfoContext(ctx, "Transaction deleted from SQLite", "id", id)
	return nil
}

func fromRow(row TransactionRow) core.Transaction {
	return core.Transaction{
		ID:       row.ID,
		Kind:     core.Kind(row.Type),
		Category: row.Category,
		Amount:   core.AmountOf(row.Amount),
		Date:     core.DateOf(row.Date),
		Comment:  row.Comment.String,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
