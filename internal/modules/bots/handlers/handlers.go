// Package handlers provides HTTP handlers for the bot registry.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/botboard/internal/modules/bots"
)

// Handler handles bot registry HTTP requests
type Handler struct {
	registry *bots.Registry
	log      zerolog.Logger
}

// NewHandler creates a new bots handler
func NewHandler(registry *bots.Registry, log zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		log:      log.With().Str("handler", "bots").Logger(),
	}
}

// HandleList handles GET /api/bots
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.registry.List())
}

// HandleGet handles GET /api/bots/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	bot, err := h.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, bot)
}

// HandleRegister handles POST /api/bots
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var bot bots.Bot
	if err := json.NewDecoder(r.Body).Decode(&bot); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := h.registry.Register(bot)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
