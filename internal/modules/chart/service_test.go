package chart

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/botboard/internal/events"
	"github.com/aristath/botboard/internal/modules/bots"
	"github.com/aristath/botboard/internal/modules/history"
	"github.com/aristath/botboard/internal/modules/viewport"
)

func setupTestService(t *testing.T) (*Service, *bots.Registry, *history.Log, *events.Bus) {
	t.Helper()
	log := zerolog.Nop()

	eventBus := events.NewBus(log)
	registry := bots.NewRegistry(eventBus, log)
	historyLog := history.NewLog(eventBus, log)

	vp := viewport.NewController(
		viewport.Bounds{MinHeight: 200, MaxHeight: 800, MinWidth: 320},
		viewport.Size{Height: 360, Width: 720, AutoWidth: true},
		eventBus,
		log,
	)
	t.Cleanup(vp.Close)

	return NewService(historyLog, registry, vp, eventBus, log), registry, historyLog, eventBus
}

func TestService_RenderChart(t *testing.T) {
	service, registry, historyLog, _ := setupTestService(t)

	_, err := registry.Register(bots.Bot{ID: "a", Label: "Momentum"})
	require.NoError(t, err)

	historyLog.Append(history.Entry{
		Timestamp: time.Now().UnixMilli(),
		Values:    []history.BotValue{{BotID: "a", Value: 10}},
	})

	desc, err := service.RenderChart("gridded", "all")
	require.NoError(t, err)

	assert.Equal(t, VariantGridded, desc.Variant)
	assert.Equal(t, 360.0, desc.Height)
	assert.Equal(t, 720.0, desc.Width)
	assert.Equal(t, 1, desc.SeriesCount)
	assert.Contains(t, desc.SVG, "stroke-dasharray")
}

func TestService_RenderChart_EmptyStateNeverFails(t *testing.T) {
	service, _, _, _ := setupTestService(t)

	desc, err := service.RenderChart("", "")
	require.NoError(t, err)
	assert.Equal(t, VariantMinimal, desc.Variant, "default variant is minimal")
	assert.NotEmpty(t, desc.SVG)
	assert.Equal(t, 0, desc.SeriesCount)
}

func TestService_RenderChart_InvalidInputs(t *testing.T) {
	service, _, _, _ := setupTestService(t)

	_, err := service.RenderChart("sparkly", "")
	assert.Error(t, err)

	_, err = service.RenderChart("", "7d")
	assert.Error(t, err)
}

func TestService_RenderChart_RangeFiltersHistory(t *testing.T) {
	service, registry, historyLog, _ := setupTestService(t)

	_, err := registry.Register(bots.Bot{ID: "a", Label: "Momentum"})
	require.NoError(t, err)

	now := time.Now()
	historyLog.Append(history.Entry{
		Timestamp: now.Add(-2 * time.Hour).UnixMilli(),
		Values:    []history.BotValue{{BotID: "a", Value: 100}},
	})
	historyLog.Append(history.Entry{
		Timestamp: now.UnixMilli(),
		Values:    []history.BotValue{{BotID: "a", Value: 10}},
	})

	full, err := service.RenderChart("", "all")
	require.NoError(t, err)
	windowed, err := service.RenderChart("", "1h")
	require.NoError(t, err)

	// The old 100-value point pushes the y extent to $105 (5% headroom)
	// in the full render, but must be absent from the 1h window.
	assert.Contains(t, full.SVG, "$105")
	assert.NotContains(t, windowed.SVG, "$105")
}

func TestService_Tooltip_Scenario(t *testing.T) {
	service, registry, historyLog, _ := setupTestService(t)

	_, err := registry.Register(bots.Bot{ID: "A", Label: "Alpha"})
	require.NoError(t, err)
	_, err = registry.Register(bots.Bot{ID: "B", Label: "Beta"})
	require.NoError(t, err)

	historyLog.Append(history.Entry{
		Timestamp: 1000,
		Values:    []history.BotValue{{BotID: "A", Value: 10}, {BotID: "B", Value: -5}},
	})
	historyLog.Append(history.Entry{
		Timestamp: 2000,
		Values:    []history.BotValue{{BotID: "A", Value: 12}},
	})

	rows := service.Tooltip(1000)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[0].Label, "10 sorts above -5")
	assert.Equal(t, "$10.00", rows[0].Value)
	assert.Equal(t, "Beta", rows[1].Label)
	assert.Equal(t, "-$5.00", rows[1].Value)

	rows = service.Tooltip(2000)
	require.Len(t, rows, 1, "B is unset at t=2000, not zero")
	assert.Equal(t, "Alpha", rows[0].Label)
}

func TestService_Tooltip_MissEmptyNotError(t *testing.T) {
	service, _, historyLog, _ := setupTestService(t)

	historyLog.Append(history.Entry{Timestamp: 1000})

	rows := service.Tooltip(1500)
	assert.NotNil(t, rows)
	assert.Empty(t, rows, "timestamp between rows suppresses the tooltip")
}

func TestService_Legend(t *testing.T) {
	service, registry, _, _ := setupTestService(t)

	_, err := registry.Register(bots.Bot{ID: "a", Label: "Momentum", LiveValue: 3, RealizedValue: 1})
	require.NoError(t, err)

	live := service.Legend(ModeLive)
	require.Len(t, live, 1)
	assert.Equal(t, "$3.00", live[0].Value)

	realized := service.Legend(ModeRealized)
	assert.Equal(t, "$1.00", realized[0].Value)
}

func TestService_SetVariant(t *testing.T) {
	service, _, _, eventBus := setupTestService(t)

	_, ch, unsubscribe := eventBus.Subscribe()
	defer unsubscribe()

	variant, err := service.SetVariant("neon")
	require.NoError(t, err)
	assert.Equal(t, VariantNeon, variant)
	assert.Equal(t, VariantNeon, service.CurrentVariant())

	select {
	case evt := <-ch:
		assert.Equal(t, events.VariantChanged, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("expected VariantChanged event")
	}

	_, err = service.SetVariant("bogus")
	assert.Error(t, err)
}
