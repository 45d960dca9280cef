package products

import (
	"github.com/grocerpos/grocer/internal/shared"
)

func (s *Service) validate(in Input) (Product, error) {
	p := in.product()
	if p.Name == "" {
		return Product{}, shared.Validation("name is required")
	}
	if p.Category == "" {
		return Product{}, shared.Validation("category is required")
	}
	if p.Price.IsNegative() {
		return Product{}, ErrNegativePrice
	}
	if p.Quantity < 0 {
		return Product{}, shared.Validation("quantity must be at least 0")
	}
	if p.ReorderLevel < 0 {
		return Product{}, shared.Validation("reorder_level must be at least 0")
	}
	return p, nil
}
