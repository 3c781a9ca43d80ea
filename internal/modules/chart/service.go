// Package chart provides the PnL chart engine: series projection, legend
// and tooltip composition, and the variant SVG renderer.
package chart

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/botboard/internal/events"
	"github.com/aristath/botboard/internal/modules/bots"
	"github.com/aristath/botboard/internal/modules/history"
	"github.com/aristath/botboard/internal/modules/viewport"
	"github.com/aristath/botboard/internal/utils"
)

// Service wires the chart engine to the history log, bot registry, and
// viewport controller
type Service struct {
	historyLog *history.Log
	registry   *bots.Registry
	vp         *viewport.Controller
	eventBus   *events.Bus
	palette    []string
	log        zerolog.Logger

	mu      sync.RWMutex
	variant Variant
}

// NewService creates a new chart service
func NewService(
	historyLog *history.Log,
	registry *bots.Registry,
	vp *viewport.Controller,
	eventBus *events.Bus,
	log zerolog.Logger,
) *Service {
	return &Service{
		historyLog: historyLog,
		registry:   registry,
		vp:         vp,
		eventBus:   eventBus,
		palette:    DefaultPalette,
		log:        log.With().Str("service", "chart").Logger(),
		variant:    VariantMinimal,
	}
}

// RenderChart renders the chart for the given variant and time range.
// An empty variant uses the service's current variant; an empty range
// renders the full history (live mode).
func (s *Service) RenderChart(variantStr, rangeStr string) (RenderDescription, error) {
	timer := utils.NewTimer("render_chart", s.log)
	defer timer.Stop()

	variant, err := s.resolveVariant(variantStr)
	if err != nil {
		return RenderDescription{}, err
	}

	startMs, err := parseRange(rangeStr)
	if err != nil {
		return RenderDescription{}, err
	}

	entries := s.historyLog.Since(startMs)
	botIDs := s.registry.IDs()
	rows := Project(entries, botIDs)

	size := s.vp.Size()
	frame := Frame{Width: size.Width, Height: size.Height}

	desc := Render(rows, botIDs, PlanFor(variant), frame, s.palette)

	s.log.Debug().
		Str("variant", string(variant)).
		Str("range", rangeStr).
		Int("rows", len(rows)).
		Int("bots", len(botIDs)).
		Msg("Chart rendered")

	return desc, nil
}

// Legend returns one row per registered bot, in registration order
func (s *Service) Legend(mode DisplayMode) []LegendRow {
	return LegendRows(s.registry.List(), mode, s.palette)
}

// Tooltip returns the tooltip rows for an exact timestamp, sorted by
// value descending. An empty result means no matching row: suppress the
// tooltip, it is not an error.
func (s *Service) Tooltip(timestampMs int64) []TooltipRow {
	entry, ok := s.historyLog.At(timestampMs)
	if !ok {
		return []TooltipRow{}
	}

	rows := Project([]history.Entry{entry}, s.registry.IDs())
	return TooltipRows(&rows[0], s.registry.List(), s.palette)
}

// SetVariant switches the service's current presentation variant
func (s *Service) SetVariant(variantStr string) (Variant, error) {
	variant, err := ParseVariant(variantStr)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	changed := s.variant != variant
	s.variant = variant
	s.mu.Unlock()

	if changed && s.eventBus != nil {
		s.eventBus.Publish(&events.VariantChangedData{Variant: string(variant)})
	}
	return variant, nil
}

// CurrentVariant returns the active presentation variant
func (s *Service) CurrentVariant() Variant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.variant
}

func (s *Service) resolveVariant(variantStr string) (Variant, error) {
	if variantStr == "" {
		return s.CurrentVariant(), nil
	}
	return ParseVariant(variantStr)
}

// parseRange converts a range string to a start timestamp in epoch
// milliseconds. "all" or empty means no lower bound (0).
func parseRange(rangeStr string) (int64, error) {
	if rangeStr == "all" || rangeStr == "" {
		return 0, nil
	}

	now := time.Now()
	var start time.Time

	switch rangeStr {
	case "15m":
		start = now.Add(-15 * time.Minute)
	case "1h":
		start = now.Add(-1 * time.Hour)
	case "4h":
		start = now.Add(-4 * time.Hour)
	case "24h":
		start = now.Add(-24 * time.Hour)
	default:
		return 0, fmt.Errorf("invalid range: %s (must be 15m, 1h, 4h, 24h or all)", rangeStr)
	}

	return start.UnixMilli(), nil
}
