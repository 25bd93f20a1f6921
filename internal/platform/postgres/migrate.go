package postgres

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// Migrate applies all pending schema migrations from sourceURL (for
// example "file://migrations") against dsn. It is safe to run on every
// startup: an already-current schema is not an error. The resulting
// schema version is logged so deploys are auditable.
func Migrate(dsn, sourceURL string) error {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("postgres: open migration source: %w", err)
	}
	defer m.Close()

	err = m.Up()
	switch {
	case err == nil:
		if version, dirty, verr := m.Version(); verr == nil {
			slog.Info("schema migrated", "version", version, "dirty", dirty)
		}
		return nil
	case errors.Is(err, migrate.ErrNoChange):
		slog.Debug("schema already current")
		return nil
	default:
		return fmt.Errorf("postgres: apply migrations: %w", err)
	}
}

// Rollback reverts every applied migration. Intended for integration
// test teardown, not production use.
func Rollback(dsn, sourceURL string) error {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("postgres: open migration source: %w", err)
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: revert migrations: %w", err)
	}
	return nil
}
