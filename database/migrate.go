package database

import (
	"embed"
	"errors"
	"fmt"

	"boutique-tailoring/config"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func newMigrate(cfg config.DBConfig) (*migrate.Migrate, func(), error) {
	db, err := sqlx.Open("mysql", DSN(cfg, true))
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql: %w", err)
	}
	driver, err := migratemysql.WithInstance(db.DB, &migratemysql.Config{DatabaseName: cfg.Database})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate driver: %w", err)
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, cfg.Database, driver)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return m, func() { m.Close() }, nil
}

// MigrateUp applies all pending migrations. It reports whether anything ran.
func MigrateUp(cfg config.DBConfig) (bool, error) {
	m, closeFn, err := newMigrate(cfg)
	if err != nil {
		return false, err
	}
	defer closeFn()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("migrate up: %w", err)
	}
	return true, nil
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(cfg config.DBConfig, steps int) error {
	m, closeFn, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if steps <= 0 {
		steps = 1
	}
	err = m.Steps(-steps)
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}
