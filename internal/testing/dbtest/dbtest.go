// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/grocerpos/grocer/internal/platform/db"
)

// Open returns a migrated, empty database stored under t.TempDir.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()
	conn, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "grocer_test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// Seeded returns a database holding the sample catalog.
func Seeded(t testing.TB) *sqlx.DB {
	t.Helper()
	conn := Open(t)
	if _, err := db.Seed(context.Background(), conn); err != nil {
		t.Fatalf("seed test database: %v", err)
	}
	return conn
}

// ProductID looks up the id of the product called name.
func ProductID(t testing.TB, conn *sqlx.DB, name string) int64 {
	t.Helper()
	var id int64
	if err := conn.Get(&id, `SELECT id FROM products WHERE name = ?`, name); err != nil {
		t.Fatalf("lookup product %q: %v", name, err)
	}
	return id
}

// InsertSale writes a sale row directly, bypassing stock checks.
func InsertSale(t testing.TB, conn *sqlx.DB, productID int64, qty int, total string, at string) int64 {
	t.Helper()
	res, err := conn.Exec(`INSERT INTO sales (product_id, quantity, total_price, sale_date) VALUES (?, ?, ?, ?)`, productID, qty, total, at)
	if err != nil {
		t.Fatalf("insert sale: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("insert sale id: %v", err)
	}
	return id
}
