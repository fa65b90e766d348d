package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"finance/internal/core"
	"finance/internal/ports"
)

var _ ports.Store = (*Store)(nil)

// Store keeps transactions in insertion order behind a mutex.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction
}

func New(seed ...core.Transaction) *Store {
	s := &Store{nextID: 1}
	for _, t := range seed {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	for _, t := range seed {
		if t.ID == 0 {
			t.ID = s.nextID
			s.nextID++
		}
		s.items = append(s.items, t)
	}
	return s
}

// seedRow mirrors the column names of the sqlite schema.
type seedRow struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   any    `json:"amount"`
	Date     string `json:"date"`
	Comment  string `json:"comment"`
}

// NewFromFile seeds the store from a JSON array. A missing path yields an
// empty store; rows are loaded verbatim, malformed values included.
func NewFromFile(path string) *Store {
	if strings.TrimSpace(path) == "" {
		return New()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed reading memory seed file", "path", path, "error", err)
		}
		return New()
	}
	// UseNumber keeps numeric amounts as written instead of float64.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rows []seedRow
	if err := dec.Decode(&rows); err != nil {
		slog.Warn("Failed parsing memory seed file", "path", path, "error", err)
		return New()
	}
	seed := make([]core.Transaction, 0, len(rows))
	for _, r := range rows {
		seed = append(seed, core.Transaction{
			ID:       r.ID,
			Kind:     core.Kind(strings.ToLower(strings.TrimSpace(r.Type))),
			Category: r.Category,
			Amount:   core.AmountOf(amountText(r.Amount)),
			Date:     core.DateOf(r.Date),
			Comment:  r.Comment,
		})
	}
	return New(seed...)
}

func amountText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// ListTransactions returns a snapshot in insertion order.
func (s *Store) ListTransactions(_ context.Context, dateFrom, dateTo string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, len(s.items))
	for _, t := range s.items {
		d := t.Date.String()
		if dateFrom != "" && d < dateFrom {
			continue
		}
		if dateTo != "" && d > dateTo {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], nil
	}
	return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, ports.ErrNotFound)
}

// Insert stores the transaction under a fresh ID.
func (s *Store) Insert(_ context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.items = append(s.items, t)
	return t.ID, nil
}

func (s *Store) Update(_ context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(t.ID)
	if i < 0 {
		return fmt.Errorf("update transaction %d: %w", t.ID, ports.ErrNotFound)
	}
	s.items[i] = t
	return nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete transaction %d: %w", id, ports.ErrNotFound)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}
