package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all chart routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/chart", func(r chi.Router) {
		r.Get("/", h.HandleChart)
		r.Get("/description", h.HandleDescription)
		r.Get("/legend", h.HandleLegend)
		r.Get("/tooltip", h.HandleTooltip)
		r.Get("/variant", h.HandleGetVariant)
		r.Post("/variant", h.HandleSetVariant)
	})
}
