package products

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/grocerpos/grocer/internal/platform/db"
)

const productColumns = `id, name, category, price, quantity, reorder_level, supplier, barcode, created_at`

// Repository persists products in SQLite.
type Repository struct {
	db *sqlx.DB
}

// NewRepository constructs Repository.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// List returns every product ordered by name.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	items := []Product{}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name, id`
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("products: list: %w", err)
	}
	return items, nil
}

// Create inserts p and returns its id.
func (r *Repository) Create(ctx context.Context, p Product) (int64, error) {
	const query = `INSERT INTO products (name, category, price, quantity, reorder_level, supplier, barcode, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Category, p.Price, p.Quantity, p.ReorderLevel, p.Supplier, p.Barcode, db.FormatTime(time.Now()))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrDuplicateBarcode
		}
		return 0, fmt.Errorf("products: create: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("products: create: %w", err)
	}
	return id, nil
}

// Update replaces the mutable fields of product p.ID.
func (r *Repository) Update(ctx context.Context, p Product) error {
	const query = `UPDATE products
		SET name = ?, category = ?, price = ?, quantity = ?, reorder_level = ?, supplier = ?, barcode = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Category, p.Price, p.Quantity, p.ReorderLevel, p.Supplier, p.Barcode, p.ID)
	if err != nil {
		return fmt.Errorf("products: update: %w", err)
	}
	return expectOneRow(res.RowsAffected())
}

// Delete removes product id. Sales referencing it are left untouched.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("products: delete: %w", err)
	}
	return expectOneRow(res.RowsAffected())
}

func expectOneRow(n int64, err error) error {
	if err != nil {
		return fmt.Errorf("products: rows affected: %w", err)
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}
