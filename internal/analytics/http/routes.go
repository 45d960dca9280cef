package analytichttp

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers analytics endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/low-stock", h.handleLowStock)
	r.Get("/sales-summary", h.handleSalesSummary)
}
