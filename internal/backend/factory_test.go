package backend

import (
	"context"
	"path/filepath"
	"testing"

	"finance/internal/config"
	"finance/internal/core"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", AMQPQueue: "q"})
	if err != nil || cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "x.db" || cfg.AMQPQueue != "q" {
		t.Fatalf("unexpected config %+v, err=%v", cfg, err)
	}
}

func TestCreateBackend_Memory(t *testing.T) {
	ctx := context.Background()
	res, err := NewFactory(nil).CreateBackend(ctx, Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer res.Close()

	if res.Publisher != nil {
		t.Fatal("publisher should be nil without AMQP_URL")
	}
	if err := res.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if _, err := res.Store.Insert(ctx, core.Transaction{
		Kind: core.Income, Category: "Salary", Amount: core.AmountOf("1"), Date: core.DateOf("2024-01-01"),
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestCreateBackend_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "finance.db")
	res, err := NewFactory(nil).CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: path})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := res.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if err := res.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestCreateBackend_Invalid(t *testing.T) {
	if _, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: SQLiteBackend}); err == nil {
		t.Fatal("expected error for missing sqlite path")
	}
	if _, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: "sheets"}); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
