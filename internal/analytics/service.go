package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grocerpos/grocer/internal/products"
	"github.com/grocerpos/grocer/internal/shared"
)

// Repository exposes the queries the service relies on.
type Repository interface {
	LowStock(ctx context.Context) ([]products.Product, error)
	Totals(ctx context.Context, w Window) (PeriodTotals, error)
	TopProducts(ctx context.Context, w Window, limit int) ([]TopProduct, error)
}

// Service computes analytics fresh on every call.
type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService wires a Repository. Calendar boundaries are computed in loc,
// which defaults to UTC.
func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// LowStock returns products whose quantity is at or below their reorder level.
func (s *Service) LowStock(ctx context.Context) ([]products.Product, error) {
	return s.repo.LowStock(ctx)
}

// Summary reports today's and this month's revenue and counts plus the
// month's top sellers. The three aggregates run concurrently.
func (s *Service) Summary(ctx context.Context) (SalesSummary, error) {
	now := s.now().In(s.loc)
	day, month := DayWindow(now), MonthWindow(now)

	var summary SalesSummary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		totals, err := s.repo.Totals(ctx, day)
		if err != nil {
			return err
		}
		summary.Today = roundTotals(totals)
		return nil
	})

	g.Go(func() error {
		totals, err := s.repo.Totals(ctx, month)
		if err != nil {
			return err
		}
		summary.Month = roundTotals(totals)
		return nil
	})

	g.Go(func() error {
		top, err := s.repo.TopProducts(ctx, month, TopProductsLimit)
		if err != nil {
			return err
		}
		for i := range top {
			top[i].Revenue = shared.Cents(top[i].Revenue)
		}
		summary.TopProducts = top
		return nil
	})

	if err := g.Wait(); err != nil {
		return SalesSummary{}, err
	}
	if summary.TopProducts == nil {
		summary.TopProducts = []TopProduct{}
	}
	return summary, nil
}

func roundTotals(t PeriodTotals) PeriodTotals {
	t.Total = shared.Cents(t.Total)
	return t
}
