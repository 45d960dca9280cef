package analytichttp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerpos/grocer/internal/analytics"
	"github.com/grocerpos/grocer/internal/products"
)

type stubService struct {
	low        []products.Product
	summary    analytics.SalesSummary
	summaryErr error
}

func (s *stubService) LowStock(ctx context.Context) ([]products.Product, error) {
	return s.low, nil
}

func (s *stubService) Summary(ctx context.Context) (analytics.SalesSummary, error) {
	return s.summary, s.summaryErr
}

func newAnalyticsRouter(svc AnalyticsService) http.Handler {
	r := chi.NewRouter()
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r.Route("/api/analytics", h.MountRoutes)
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestHandleLowStock(t *testing.T) {
	svc := &stubService{low: []products.Product{{ID: 3, Name: "Milk", Price: decimal.RequireFromString("3.49"), Quantity: 4, ReorderLevel: 10}}}

	rr := get(newAnalyticsRouter(svc), "/api/analytics/low-stock")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Milk"`)
	assert.Contains(t, rr.Body.String(), `"quantity":4`)
}

func TestHandleSalesSummaryShape(t *testing.T) {
	svc := &stubService{summary: analytics.SalesSummary{
		Today:       analytics.PeriodTotals{Total: decimal.RequireFromString("14.95"), Count: 1},
		Month:       analytics.PeriodTotals{Total: decimal.RequireFromString("120.5"), Count: 9},
		TopProducts: []analytics.TopProduct{{ProductID: 1, Name: "Apples", TotalSold: 5, Revenue: decimal.RequireFromString("14.95")}},
	}}

	rr := get(newAnalyticsRouter(svc), "/api/analytics/sales-summary")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"today": {"total": 14.95, "count": 1},
		"month": {"total": 120.5, "count": 9},
		"top_products": [{"product_id": 1, "name": "Apples", "total_sold": 5, "revenue": 14.95}]
	}`, rr.Body.String())
}

func TestHandleSalesSummaryEmpty(t *testing.T) {
	svc := &stubService{summary: analytics.SalesSummary{TopProducts: []analytics.TopProduct{}}}

	rr := get(newAnalyticsRouter(svc), "/api/analytics/sales-summary")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"today":{"total":0,"count":0},"month":{"total":0,"count":0},"top_products":[]}`, rr.Body.String())
}

func TestHandleSalesSummaryFailure(t *testing.T) {
	svc := &stubService{summaryErr: errors.New("analytics: totals: database is locked")}

	rr := get(newAnalyticsRouter(svc), "/api/analytics/sales-summary")

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"analytics: totals: database is locked"}`, rr.Body.String())
}
