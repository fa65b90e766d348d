package storage

import (
	"context"
	"database/sql"
)

type TransactionRow struct {
	ID       int64
	Type     string
	Category string
	Amount   string
	Date     string
	Comment  sql.NullString
}

const createTransaction = `
INSERT INTO transactions (type, category, amount, date, comment)
VALUES (?, ?, ?, ?, ?)
RETURNING id
`

type CreateTransactionParams struct {
	Type     string
	Category string
	Amount   string
	Date     string
	Comment  sql.NullString
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.Type,
		arg.Category,
		arg.Amount,
		arg.Date,
		arg.Comment,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getTransaction = `
SELECT id, type, category, amount, date, comment
FROM transactions
WHERE id = ?
`

func (q *Queries) GetTransaction(ctx context.Context, id int64) (TransactionRow, error) {
	row := q.db.QueryRowContext(ctx, getTransaction, id)
	var i TransactionRow
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Category,
		&i.Amount,
		&i.Date,
		&i.Comment,
	)
	return i, err
}

// Empty bounds disable the corresponding comparison.
const listTransactions = `
SELECT id, type, category, amount, date, comment
FROM transactions
WHERE (? = '' OR date >= ?)
  AND (? = '' OR date <= ?)
ORDER BY date DESC, id ASC
`

func (q *Queries) ListTransactions(ctx context.Context, dateFrom, dateTo string) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions, dateFrom, dateFrom, dateTo, dateTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TransactionRow
	for rows.Next() {
		var i TransactionRow
		if err := rows.Scan(
			&i.ID,
			&i.Type,
			&i.Category,
			&i.Amount,
			&i.Date,
			&i.Comment,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateTransaction = `
UPDATE transactions
SET type = ?, category = ?, amount = ?, date = ?, comment = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

type UpdateTransactionParams struct {
	Type     string
	Category string
	Amount   string
	Date     string
	Comment  sql.NullString
	ID       int64
}

func (q *Queries) UpdateTransaction(ctx context.Context, arg UpdateTransactionParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateTransaction,
		arg.Type,
		arg.Category,
		arg.Amount,
		arg.Date,
		arg.Comment,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteTransaction = `
DELETE FROM transactions WHERE id = ?
`

func (q *Queries) DeleteTransaction(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
