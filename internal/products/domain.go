package products

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grocerpos/grocer/internal/shared"
)

// DefaultReorderLevel applies when a product is created without one.
const DefaultReorderLevel = 10

var (
	// ErrProductNotFound indicates the product id does not exist.
	ErrProductNotFound = shared.NotFound("Product not found")
	// ErrDuplicateBarcode indicates another product already carries the barcode.
	ErrDuplicateBarcode = shared.Conflict("Product with this barcode already exists")
	// ErrNegativePrice rejects prices below zero.
	ErrNegativePrice = shared.Validation("price must be at least 0")
)

// Product is a stocked catalog item.
type Product struct {
	ID           int64           `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Category     string          `db:"category" json:"category"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Quantity     int             `db:"quantity" json:"quantity"`
	ReorderLevel int             `db:"reorder_level" json:"reorder_level"`
	Supplier     string          `db:"supplier" json:"supplier"`
	Barcode      *string         `db:"barcode" json:"barcode"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// LowStock reports whether the product is at or below its reorder level.
func (p Product) LowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

// Input carries the mutable product fields for create and update.
type Input struct {
	Name         string           `json:"name" validate:"required,max=200"`
	Category     string           `json:"category" validate:"required,max=100"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	Quantity     *int             `json:"quantity" validate:"required,gte=0"`
	ReorderLevel *int             `json:"reorder_level" validate:"omitempty,gte=0"`
	Supplier     string           `json:"supplier" validate:"max=200"`
	Barcode      string           `json:"barcode" validate:"max=64"`
}

func (in Input) product() Product {
	p := Product{
		Name:         strings.TrimSpace(in.Name),
		Category:     strings.TrimSpace(in.Category),
		ReorderLevel: DefaultReorderLevel,
		Supplier:     strings.TrimSpace(in.Supplier),
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.ReorderLevel != nil {
		p.ReorderLevel = *in.ReorderLevel
	}
	if barcode := strings.TrimSpace(in.Barcode); barcode != "" {
		p.Barcode = &barcode
	}
	return p
}
