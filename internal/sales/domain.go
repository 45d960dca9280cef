package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/grocerpos/grocer/internal/shared"
)

// HistoryLimit caps the number of sales returned by History.
const HistoryLimit = 100

var (
	// ErrInsufficientStock rejects a sale larger than the quantity on hand.
	ErrInsufficientStock = shared.InsufficientStock("Insufficient quantity in stock")
	// ErrSaleInProgress indicates a retry while the first request is still running.
	ErrSaleInProgress = shared.Conflict("A sale with this Idempotency-Key is still being processed")
)

// Sale is one recorded transaction against a single product.
type Sale struct {
	ID         int64           `db:"id" json:"id"`
	ProductID  int64           `db:"product_id" json:"product_id"`
	Quantity   int             `db:"quantity" json:"quantity"`
	TotalPrice decimal.Decimal `db:"total_price" json:"total_price"`
	SaleDate   time.Time       `db:"sale_date" json:"sale_date"`
}

// SaleView is a sale joined with its product's name and current unit price.
type SaleView struct {
	Sale
	ProductName string          `db:"product_name" json:"product_name"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
}

// Input requests the sale of Quantity units of ProductID.
type Input struct {
	ProductID      *int64 `json:"product_id" validate:"required"`
	Quantity       *int   `json:"quantity" validate:"required,gt=0"`
	IdempotencyKey string `json:"-"`
}

// Receipt confirms a recorded sale.
type Receipt struct {
	SaleID     int64           `json:"sale_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// StockItem is the product state a sale is priced and checked against.
type StockItem struct {
	ID       int64           `db:"id"`
	Price    decimal.Decimal `db:"price"`
	Quantity int             `db:"quantity"`
}
