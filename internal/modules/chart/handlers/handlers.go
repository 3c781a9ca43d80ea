// Package handlers provides HTTP handlers for chart rendering, legend,
// and tooltip queries.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/aristath/botboard/internal/modules/chart"
)

// Handler handles chart HTTP requests
type Handler struct {
	service *chart.Service
	log     zerolog.Logger
}

// NewHandler creates a new chart handler
func NewHandler(service *chart.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "chart").Logger(),
	}
}

// HandleChart handles GET /api/chart - renders the chart as SVG
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	desc, err := h.service.RenderChart(
		r.URL.Query().Get("variant"),
		r.URL.Query().Get("range"),
	)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(desc.SVG))
}

// HandleDescription handles GET /api/chart/description - full render
// description as JSON
func (h *Handler) HandleDescription(w http.ResponseWriter, r *http.Request) {
	desc, err := h.service.RenderChart(
		r.URL.Query().Get("variant"),
		r.URL.Query().Get("range"),
	)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, desc)
}

// HandleLegend handles GET /api/chart/legend
func (h *Handler) HandleLegend(w http.ResponseWriter, r *http.Request) {
	mode := chart.ParseDisplayMode(r.URL.Query().Get("mode"))
	h.writeJSON(w, http.StatusOK, h.service.Legend(mode))
}

// HandleTooltip handles GET /api/chart/tooltip?t=<epoch-ms>
// An empty array response means "no tooltip to render".
func (h *Handler) HandleTooltip(w http.ResponseWriter, r *http.Request) {
	tStr := r.URL.Query().Get("t")
	if tStr == "" {
		h.writeError(w, http.StatusBadRequest, "Missing required parameter: t")
		return
	}

	timestamp, err := strconv.ParseInt(tStr, 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid timestamp: "+tStr)
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.Tooltip(timestamp))
}

// HandleGetVariant handles GET /api/chart/variant
func (h *Handler) HandleGetVariant(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"variant": string(h.service.CurrentVariant()),
	})
}

// HandleSetVariant handles POST /api/chart/variant
func (h *Handler) HandleSetVariant(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Variant string `json:"variant"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	variant, err := h.service.SetVariant(request.Variant)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"variant": string(variant)})
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
