package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SeedProduct is a sample catalog row inserted into an empty database.
type SeedProduct struct {
	Name         string
	Category     string
	Price        string
	Quantity     int
	ReorderLevel int
	Supplier     string
	Barcode      string
}

// SampleProducts is the starter catalog.
var SampleProducts = []SeedProduct{
	{"Apples", "Fruits", "2.99", 100, 20, "Fresh Farms", "1234567890"},
	{"Bananas", "Fruits", "1.99", 150, 30, "Tropical Supply", "1234567891"},
	{"Milk", "Dairy", "3.49", 50, 10, "Dairy Co", "1234567892"},
	{"Bread", "Bakery", "2.49", 75, 15, "Local Bakery", "1234567893"},
	{"Eggs", "Dairy", "4.99", 60, 12, "Farm Fresh", "1234567894"},
	{"Rice", "Grains", "5.99", 80, 20, "Grain Supply", "1234567895"},
	{"Chicken Breast", "Meat", "8.99", 40, 8, "Meat Market", "1234567896"},
	{"Tomatoes", "Vegetables", "3.99", 90, 18, "Garden Fresh", "1234567897"},
}

// Seed inserts SampleProducts when the products table is empty and reports
// how many rows were written.
func Seed(ctx context.Context, db *sqlx.DB) (int, error) {
	inserted := 0
	err := WithTx(ctx, db, func(tx *sqlx.Tx) error {
		var count int
		if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM products`); err != nil {
			return fmt.Errorf("platform/db: count products: %w", err)
		}
		if count > 0 {
			return nil
		}
		now := FormatTime(time.Now())
		const insert = `INSERT INTO products (name, category, price, quantity, reorder_level, supplier, barcode, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		for _, p := range SampleProducts {
			if _, err := tx.ExecContext(ctx, insert, p.Name, p.Category, p.Price, p.Quantity, p.ReorderLevel, p.Supplier, p.Barcode, now); err != nil {
				return fmt.Errorf("platform/db: seed %s: %w", p.Name, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
