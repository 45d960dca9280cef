package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// WithTx executes a function within a transaction. The DSN built by DSN makes
// every transaction BEGIN IMMEDIATE, so writers are serialised by SQLite.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("platform/db: begin tx: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("platform/db: commit tx: %w", err)
	}

	return nil
}
