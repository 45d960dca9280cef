package products

import (
	"context"
)

// RepositoryPort abstracts repository usage for service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p Product) (int64, error)
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id int64) error
}

// Service coordinates catalog operations.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns the whole catalog ordered by name.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

// Create adds a product and returns its id. A barcode already in use yields
// ErrDuplicateBarcode.
func (s *Service) Create(ctx context.Context, in Input) (int64, error) {
	p, err := s.validate(in)
	if err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, p)
}

// Update overwrites every mutable field of product id. Barcode uniqueness is
// left to the database.
func (s *Service) Update(ctx context.Context, id int64, in Input) error {
	if id <= 0 {
		return ErrProductNotFound
	}
	p, err := s.validate(in)
	if err != nil {
		return err
	}
	p.ID = id
	return s.repo.Update(ctx, p)
}

// Delete removes product id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrProductNotFound
	}
	return s.repo.Delete(ctx, id)
}
