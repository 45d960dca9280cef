package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/grocerpos/grocer/internal/platform/db"
	"github.com/grocerpos/grocer/internal/products"
)

// Repository persists sales in SQLite.
type Repository struct {
	db *sqlx.DB
}

// NewRepository constructs Repository.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// TxRepository exposes transactional operations used by service.
type TxRepository interface {
	GetStockItem(ctx context.Context, productID int64) (StockItem, error)
	InsertSale(ctx context.Context, sale Sale) (int64, error)
	DecrementStock(ctx context.Context, productID int64, qty int) error
}

type txRepo struct {
	tx *sqlx.Tx
}

// WithTx executes the callback inside an immediate transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

// History returns the most recent sales, newest first.
func (r *Repository) History(ctx context.Context, limit int) ([]SaleView, error) {
	const query = `SELECT s.id, s.product_id, s.quantity, s.total_price, s.sale_date,
			p.name AS product_name, p.price AS unit_price
		FROM sales s
		JOIN products p ON p.id = s.product_id
		ORDER BY s.sale_date DESC, s.id DESC
		LIMIT ?`
	items := []SaleView{}
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("sales: history: %w", err)
	}
	return items, nil
}

func (r *txRepo) GetStockItem(ctx context.Context, productID int64) (StockItem, error) {
	var item StockItem
	err := r.tx.GetContext(ctx, &item, `SELECT id, price, quantity FROM products WHERE id = ?`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return StockItem{}, products.ErrProductNotFound
	}
	if err != nil {
		return StockItem{}, fmt.Errorf("sales: load product: %w", err)
	}
	return item, nil
}

func (r *txRepo) InsertSale(ctx context.Context, sale Sale) (int64, error) {
	const query = `INSERT INTO sales (product_id, quantity, total_price, sale_date) VALUES (?, ?, ?, ?)`
	res, err := r.tx.ExecContext(ctx, query, sale.ProductID, sale.Quantity, sale.TotalPrice, db.FormatTime(sale.SaleDate))
	if err != nil {
		return 0, fmt.Errorf("sales: insert sale: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sales: insert sale: %w", err)
	}
	return id, nil
}

func (r *txRepo) DecrementStock(ctx context.Context, productID int64, qty int) error {
	const query = `UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`
	res, err := r.tx.ExecContext(ctx, query, qty, productID, qty)
	if err != nil {
		return fmt.Errorf("sales: decrement stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sales: decrement stock: %w", err)
	}
	if n == 0 {
		return ErrInsufficientStock
	}
	return nil
}
