package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/botboard/internal/events"
	"github.com/aristath/botboard/internal/modules/bots"
	"github.com/aristath/botboard/internal/modules/history"
)

// SystemHandlers handles system-wide monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	historyLog  *history.Log
	registry    *bots.Registry
	eventBus    *events.Bus
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, historyLog *history.Log, registry *bots.Registry, eventBus *events.Bus) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		startupTime: time.Now(),
		historyLog:  historyLog,
		registry:    registry,
		eventBus:    eventBus,
	}
}

// healthResponse is the payload for GET /api/system/health
type healthResponse struct {
	Status         string  `json:"status"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryPercent  float64 `json:"memory_percent"`
	Bots           int     `json:"bots"`
	HistoryEntries int     `json:"history_entries"`
	Subscribers    int     `json:"subscribers"`
}

// HandleHealth handles GET /api/system/health
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.systemUsage()

	resp := healthResponse{
		Status:         "ok",
		UptimeSeconds:  time.Since(h.startupTime).Seconds(),
		CPUPercent:     cpuPercent,
		MemoryPercent:  memPercent,
		Bots:           h.registry.Count(),
		HistoryEntries: h.historyLog.Len(),
		Subscribers:    h.eventBus.SubscriberCount(),
	}

	writeJSON(w, http.StatusOK, resp, h.log)
}

// systemUsage samples CPU and memory usage, degrading to zeros when the
// platform does not expose them
func (h *SystemHandlers) systemUsage() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, log zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
