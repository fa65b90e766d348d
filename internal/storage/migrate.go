package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Schema changes for the transactions table, applied in file order.
//
//go:embed migrations/*.sql
var schemaFS embed.FS

// RunMigrations brings the database at dbPath up to the latest schema.
// Running it against an up-to-date database is a no-op.
func RunMigrations(dbPath string) error {
	m, closeAll, err := newMigrator(dbPath)
	if err != nil {
		return err
	}
	defer closeAll()

	switch err := m.Up(); {
	case err == nil:
		return nil
	case errors.Is(err, migrate.ErrNoChange):
		return nil
	default:
		return fmt.Errorf("migrate transactions schema: %w", err)
	}
}

// newMigrator uses its own handle: the migrate sqlite driver closes the
// database it was given.
func newMigrator(dbPath string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s for migrations: %w", dbPath, err)
	}

	target, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite migration driver: %w", err)
	}
	source, err := iofs.New(schemaFS, "migrations")
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("embedded migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", target)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrator: %w", err)
	}
	return m, func() {
		m.Close()
		db.Close()
	}, nil
}
