package analytics

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/grocerpos/grocer/internal/platform/db"
	"github.com/grocerpos/grocer/internal/products"
)

// SQLRepository runs analytics queries against SQLite.
type SQLRepository struct {
	db *sqlx.DB
}

// NewRepository constructs SQLRepository.
func NewRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// LowStock lists products at or below their reorder level, lowest quantity first.
func (r *SQLRepository) LowStock(ctx context.Context) ([]products.Product, error) {
	const query = `SELECT id, name, category, price, quantity, reorder_level, supplier, barcode, created_at
		FROM products
		WHERE quantity <= reorder_level
		ORDER BY quantity, name, id`
	items := []products.Product{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("analytics: low stock: %w", err)
	}
	return items, nil
}

// Totals sums revenue and counts sales within w.
func (r *SQLRepository) Totals(ctx context.Context, w Window) (PeriodTotals, error) {
	const query = `SELECT COALESCE(SUM(total_price), 0) AS total, COUNT(*) AS count
		FROM sales
		WHERE sale_date >= ? AND sale_date < ?`
	var totals PeriodTotals
	if err := r.db.GetContext(ctx, &totals, query, db.FormatTime(w.From), db.FormatTime(w.To)); err != nil {
		return PeriodTotals{}, fmt.Errorf("analytics: totals: %w", err)
	}
	return totals, nil
}

// TopProducts ranks products by units sold within w; ties go to the lower id.
func (r *SQLRepository) TopProducts(ctx context.Context, w Window, limit int) ([]TopProduct, error) {
	const query = `SELECT p.id AS product_id, p.name, SUM(s.quantity) AS total_sold, SUM(s.total_price) AS revenue
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.sale_date >= ? AND s.sale_date < ?
		GROUP BY p.id, p.name
		ORDER BY total_sold DESC, p.id ASC
		LIMIT ?`
	items := []TopProduct{}
	if err := r.db.SelectContext(ctx, &items, query, db.FormatTime(w.From), db.FormatTime(w.To), limit); err != nil {
		return nil, fmt.Errorf("analytics: top products: %w", err)
	}
	return items, nil
}
