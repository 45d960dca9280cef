package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

//go:embed migrations/*.sql
var migrationFS embed.FS

// DSN builds the connection string for the database file at path. Writers
// take the RESERVED lock when the transaction begins so concurrent sales
// serialise instead of failing on lock upgrade.
func DSN(path string) string {
	params := url.Values{}
	params.Set("_busy_timeout", "5000")
	params.Set("_journal_mode", "WAL")
	params.Set("_txlock", "immediate")
	return "file:" + path + "?" + params.Encode()
}

// Open opens the database file at path, applies pending migrations and
// verifies the connection.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, errors.New("platform/db: database path required")
	}
	dsn := DSN(path)
	if err := Migrate(dsn); err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("platform/db: open: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("platform/db: ping: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded schema migrations on a dedicated connection.
func Migrate(dsn string) error {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("platform/db: open for migrate: %w", err)
	}

	driver, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("platform/db: migrate driver: %w", err)
	}
	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("platform/db: migrate source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("platform/db: migrate: %w", err)
	}
	// Closes both the source and sqlDB.
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("platform/db: migrate up: %w", err)
	}
	return nil
}
