package products

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/grocerpos/grocer/internal/platform/httpx"
)

// CatalogService defines the catalog contract used by the handler.
type CatalogService interface {
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, in Input) (int64, error)
	Update(ctx context.Context, id int64, in Input) error
	Delete(ctx context.Context, id int64) error
}

// Handler serves the product catalog API.
type Handler struct {
	logger  *slog.Logger
	service CatalogService
}

// NewHandler constructs the product HTTP handler.
func NewHandler(logger *slog.Logger, service CatalogService) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers product routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createdResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "list products", err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, "decode product", err)
		return
	}
	id, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "create product", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, createdResponse{Message: "Product added successfully", ID: id})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		httpx.RespondError(w, ErrProductNotFound)
		return
	}
	var in Input
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, "decode product", err)
		return
	}
	if err := h.service.Update(r.Context(), id, in); err != nil {
		h.fail(w, r, "update product", err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "Product updated successfully"})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		httpx.RespondError(w, ErrProductNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete product", err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if httpx.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.Error(op, slog.Any("error", err), slog.String("path", r.URL.Path))
	}
	httpx.RespondError(w, err)
}

func productID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}
