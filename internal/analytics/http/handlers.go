package analytichttp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/grocerpos/grocer/internal/analytics"
	"github.com/grocerpos/grocer/internal/platform/httpx"
	"github.com/grocerpos/grocer/internal/products"
)

// AnalyticsService defines the analytics contract used by the handler.
type AnalyticsService interface {
	LowStock(ctx context.Context) ([]products.Product, error)
	Summary(ctx context.Context) (analytics.SalesSummary, error)
}

// Handler serves the analytics endpoints.
type Handler struct {
	logger  *slog.Logger
	service AnalyticsService
}

// NewHandler constructs the analytics HTTP handler.
func NewHandler(logger *slog.Logger, service AnalyticsService) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) handleLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.LowStock(r.Context())
	if err != nil {
		h.logger.Error("low stock", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) handleSalesSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("sales summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
