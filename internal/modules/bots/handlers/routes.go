package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all bot registry routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/bots", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleRegister)
		r.Get("/{id}", h.HandleGet)
	})
}
