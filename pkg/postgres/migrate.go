package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies every pending schema migration in order.
// sourceURL uses golang-migrate source syntax, e.g. "file://migrations".
// A database that is already at the newest version is not an error.
func RunMigrations(dsn, sourceURL string) error {
	return runMigration(dsn, sourceURL, func(m *migrate.Migrate) error { return m.Up() })
}

// RollbackMigration undoes the most recent schema migration. It exists
// for operational recovery and is not called by the service itself.
func RollbackMigration(dsn, sourceURL string) error {
	return runMigration(dsn, sourceURL, func(m *migrate.Migrate) error { return m.Steps(-1) })
}

func runMigration(dsn, sourceURL string, apply func(*migrate.Migrate) error) (err error) {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if err := apply(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: apply migrations: %w", err)
	}
	return nil
}
