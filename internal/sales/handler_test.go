package sales

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerpos/grocer/internal/products"
)

type mockServiceForHandler struct {
	receipt    Receipt
	recordErr  error
	history    []SaleView
	historyErr error
	lastInput  Input
}

func (m *mockServiceForHandler) Record(ctx context.Context, in Input) (Receipt, error) {
	m.lastInput = in
	return m.receipt, m.recordErr
}

func (m *mockServiceForHandler) History(ctx context.Context) ([]SaleView, error) {
	return m.history, m.historyErr
}

func newSalesRouter(svc SalesService) http.Handler {
	r := chi.NewRouter()
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r.Route("/api/sales", h.MountRoutes)
	return r
}

func postSale(h http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandlerRecordSale(t *testing.T) {
	svc := &mockServiceForHandler{receipt: Receipt{SaleID: 12, TotalPrice: decimal.RequireFromString("14.95")}}

	rr := postSale(newSalesRouter(svc), `{"product_id":1,"quantity":5}`, map[string]string{IdempotencyHeader: "till-1"})

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"message":"Sale completed successfully","sale_id":12,"total_price":14.95}`, rr.Body.String())
	assert.Equal(t, int64(1), *svc.lastInput.ProductID)
	assert.Equal(t, 5, *svc.lastInput.Quantity)
	assert.Equal(t, "till-1", svc.lastInput.IdempotencyKey)
}

func TestHandlerRecordSaleErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
		want   string
	}{
		{"insufficient", `{"product_id":1,"quantity":101}`, ErrInsufficientStock, http.StatusBadRequest, `{"error":"Insufficient quantity in stock"}`},
		{"not found", `{"product_id":99,"quantity":1}`, products.ErrProductNotFound, http.StatusNotFound, `{"error":"Product not found"}`},
		{"negative product", `{"product_id":-1,"quantity":1}`, products.ErrProductNotFound, http.StatusNotFound, `{"error":"Product not found"}`},
		{"in progress", `{"product_id":1,"quantity":1}`, ErrSaleInProgress, http.StatusBadRequest, `{"error":"A sale with this Idempotency-Key is still being processed"}`},
		{"generic", `{"product_id":1,"quantity":1}`, errors.New("sales: insert sale: disk full"), http.StatusInternalServerError, `{"error":"sales: insert sale: disk full"}`},
		{"zero quantity", `{"product_id":1,"quantity":0}`, nil, http.StatusBadRequest, `{"error":"quantity must be greater than 0"}`},
		{"missing product", `{"quantity":2}`, nil, http.StatusBadRequest, `{"error":"product_id is required"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockServiceForHandler{recordErr: tc.err}
			rr := postSale(newSalesRouter(svc), tc.body, nil)
			require.Equal(t, tc.status, rr.Code)
			assert.JSONEq(t, tc.want, rr.Body.String())
		})
	}
}

func TestHandlerSalesHistory(t *testing.T) {
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := &mockServiceForHandler{history: []SaleView{{
		Sale:        Sale{ID: 3, ProductID: 1, Quantity: 2, TotalPrice: decimal.RequireFromString("5.98"), SaleDate: at},
		ProductName: "Apples",
		UnitPrice:   decimal.RequireFromString("2.99"),
	}}}

	req := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
	rr := httptest.NewRecorder()
	newSalesRouter(svc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":3,"product_id":1,"quantity":2,"total_price":5.98,"sale_date":"2024-06-01T08:00:00Z","product_name":"Apples","unit_price":2.99}]`, rr.Body.String())
}
