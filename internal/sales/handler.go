package sales

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grocerpos/grocer/internal/platform/httpx"
)

// IdempotencyHeader carries the client's retry key for POST requests.
const IdempotencyHeader = "Idempotency-Key"

// SalesService defines the sales contract used by the handler.
type SalesService interface {
	Record(ctx context.Context, in Input) (Receipt, error)
	History(ctx context.Context) ([]SaleView, error)
}

// Handler serves the sales API.
type Handler struct {
	logger  *slog.Logger
	service SalesService
}

// NewHandler constructs the sales HTTP handler.
func NewHandler(logger *slog.Logger, service SalesService) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers sales routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.history)
	r.Post("/", h.record)
}

type receiptResponse struct {
	Message string `json:"message"`
	Receipt
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	in.IdempotencyKey = r.Header.Get(IdempotencyHeader)

	receipt, err := h.service.Record(r.Context(), in)
	if err != nil {
		if httpx.StatusFor(err) >= http.StatusInternalServerError {
			h.logger.Error("record sale", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, receiptResponse{Message: "Sale completed successfully", Receipt: receipt})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.History(r.Context())
	if err != nil {
		h.logger.Error("list sales", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}
