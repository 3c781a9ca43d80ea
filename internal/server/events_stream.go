package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/botboard/internal/events"
	"github.com/aristath/botboard/internal/utils"
)

// heartbeatInterval keeps idle SSE connections alive through proxies
const heartbeatInterval = 30 * time.Second

// EventsStreamHandler handles Server-Sent Events streaming of bus events.
// Clients use it to learn when a re-render is due (history appended,
// viewport resized, variant switched).
type EventsStreamHandler struct {
	eventBus *events.Bus
	log      zerolog.Logger
}

// NewEventsStreamHandler creates a new events stream handler
func NewEventsStreamHandler(eventBus *events.Bus, log zerolog.Logger) *EventsStreamHandler {
	return &EventsStreamHandler{
		eventBus: eventBus,
		log:      log.With().Str("component", "events_stream").Logger(),
	}
}

// ServeHTTP handles GET /api/events/stream requests (SSE).
// The optional ?types= parameter is a comma-separated whitelist of event
// types; without it, all events are streamed.
func (h *EventsStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	var allowedTypes map[events.EventType]bool
	if filtered := utils.ParseCSV(r.URL.Query().Get("types")); filtered != nil {
		allowedTypes = make(map[events.EventType]bool)
		for _, t := range filtered {
			allowedTypes[events.EventType(t)] = true
		}
	}

	subID, ch, unsubscribe := h.eventBus.Subscribe()
	defer unsubscribe()

	h.log.Info().Str("subscriber", subID).Msg("SSE client connected")
	defer h.log.Info().Str("subscriber", subID).Msg("SSE client disconnected")

	// Initial comment so clients see the stream is open
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case evt, open := <-ch:
			if !open {
				return
			}
			if allowedTypes != nil && !allowedTypes[evt.Type] {
				continue
			}

			payload, err := json.Marshal(evt)
			if err != nil {
				h.log.Error().Err(err).Str("event_type", string(evt.Type)).Msg("Failed to marshal event")
				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, payload)
			flusher.Flush()
		}
	}
}
