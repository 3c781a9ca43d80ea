package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/botboard/internal/modules/bots"
)

func testBots() []bots.Bot {
	return []bots.Bot{
		{ID: "a", Label: "Momentum", LiveValue: 10, RealizedValue: 4},
		{ID: "b", Label: "Grid", LiveValue: -5, RealizedValue: -2},
		{ID: "c", Label: "Scalper", LiveValue: 25, RealizedValue: 0},
	}
}

func TestLegendRows_RegistrationOrder(t *testing.T) {
	rows := LegendRows(testBots(), ModeLive, DefaultPalette)

	require.Len(t, rows, 3)
	// Legend order is registration order, never value order
	assert.Equal(t, "Momentum", rows[0].Label)
	assert.Equal(t, "Grid", rows[1].Label)
	assert.Equal(t, "Scalper", rows[2].Label)

	assert.Equal(t, "$10.00", rows[0].Value)
	assert.Equal(t, "-$5.00", rows[1].Value)
}

func TestLegendRows_ModeSelectsValue(t *testing.T) {
	live := LegendRows(testBots(), ModeLive, DefaultPalette)
	realized := LegendRows(testBots(), ModeRealized, DefaultPalette)

	assert.Equal(t, "$10.00", live[0].Value)
	assert.Equal(t, "$4.00", realized[0].Value)
	assert.Equal(t, "-$2.00", realized[1].Value)
}

func TestLegendRows_ColorAssignmentIsPositional(t *testing.T) {
	botList := make([]bots.Bot, 10)
	for i := range botList {
		botList[i] = bots.Bot{ID: string(rune('a' + i)), Label: "bot"}
	}

	rows := LegendRows(botList, ModeLive, DefaultPalette)

	for i, row := range rows {
		assert.Equal(t, i%len(DefaultPalette), row.ColorIndex)
		assert.Equal(t, DefaultPalette[i%len(DefaultPalette)], row.Color)
	}
	// Palette wraps past its length
	assert.Equal(t, rows[0].Color, rows[8].Color)
}

func TestLegendRows_Deterministic(t *testing.T) {
	first := LegendRows(testBots(), ModeLive, DefaultPalette)
	second := LegendRows(testBots(), ModeLive, DefaultPalette)
	assert.Equal(t, first, second)
}

func TestTooltipRows_SortedByValueDescending(t *testing.T) {
	row := &SeriesRow{
		Timestamp: 1000,
		Values:    map[string]float64{"a": 10, "b": -5, "c": 25},
	}

	rows := TooltipRows(row, testBots(), DefaultPalette)

	require.Len(t, rows, 3)
	assert.Equal(t, "Scalper", rows[0].Label)
	assert.Equal(t, "Momentum", rows[1].Label)
	assert.Equal(t, "Grid", rows[2].Label)
}

func TestTooltipRows_StableTieBreak(t *testing.T) {
	botList := []bots.Bot{
		{ID: "a", Label: "First"},
		{ID: "b", Label: "Second"},
		{ID: "c", Label: "Third"},
	}
	row := &SeriesRow{Timestamp: 1000, Values: map[string]float64{"a": 7, "b": 7, "c": 7}}

	rows := TooltipRows(row, botList, DefaultPalette)

	require.Len(t, rows, 3)
	assert.Equal(t, "First", rows[0].Label, "equal values keep registration order")
	assert.Equal(t, "Second", rows[1].Label)
	assert.Equal(t, "Third", rows[2].Label)
}

func TestTooltipRows_SkipsAbsentBots(t *testing.T) {
	row := &SeriesRow{Timestamp: 2000, Values: map[string]float64{"a": 12}}

	rows := TooltipRows(row, testBots(), DefaultPalette)

	require.Len(t, rows, 1)
	assert.Equal(t, "Momentum", rows[0].Label)
}

func TestTooltipRows_NilRowMeansNoTooltip(t *testing.T) {
	rows := TooltipRows(nil, testBots(), DefaultPalette)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestTooltipRows_SemanticVsSeriesColors(t *testing.T) {
	row := &SeriesRow{Timestamp: 1000, Values: map[string]float64{"a": 10, "b": -5}}

	rows := TooltipRows(row, testBots(), DefaultPalette)

	require.Len(t, rows, 2)
	// Momentum (value 10): green value, palette[0] swatch
	assert.Equal(t, colorPositive, rows[0].ValueColor)
	assert.Equal(t, DefaultPalette[0], rows[0].SeriesColor)
	// Grid (value -5): red value, palette[1] swatch
	assert.Equal(t, colorNegative, rows[1].ValueColor)
	assert.Equal(t, DefaultPalette[1], rows[1].SeriesColor)
}
