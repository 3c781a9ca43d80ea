package chart

import (
	"sort"

	"github.com/aristath/botboard/internal/modules/bots"
)

// DisplayMode selects which bot value the legend displays. It never
// affects the series values themselves.
type DisplayMode string

const (
	ModeLive     DisplayMode = "live"
	ModeRealized DisplayMode = "realized"
)

// ParseDisplayMode maps a query string to a DisplayMode, defaulting to live
func ParseDisplayMode(s string) DisplayMode {
	if s == string(ModeRealized) {
		return ModeRealized
	}
	return ModeLive
}

// DefaultPalette is the fixed series color palette. Color assignment is
// positional: the Nth registered bot gets palette[N % len], recomputed
// fresh on every call. Removing a bot therefore reshuffles colors for the
// bots after it.
var DefaultPalette = []string{
	"#60a5fa", // blue
	"#f472b6", // pink
	"#fbbf24", // amber
	"#34d399", // emerald
	"#a78bfa", // violet
	"#fb923c", // orange
	"#22d3ee", // cyan
	"#e879f9", // fuchsia
}

// LegendRow is one legend entry, in bot registration order
type LegendRow struct {
	Label      string `json:"label"`
	Value      string `json:"value"`
	ValueColor string `json:"value_color"`
	ColorIndex int    `json:"color_index"`
	Color      string `json:"color"`
}

// TooltipRow is one tooltip entry for a queried timestamp
type TooltipRow struct {
	Label       string  `json:"label"`
	Value       string  `json:"value"`
	RawValue    float64 `json:"raw_value"`
	ValueColor  string  `json:"value_color"`
	SeriesColor string  `json:"series_color"`
}

// LegendRows derives one row per bot in registration order. Legend order
// is stable regardless of values; mode selects which value is shown.
func LegendRows(botList []bots.Bot, mode DisplayMode, palette []string) []LegendRow {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	rows := make([]LegendRow, 0, len(botList))
	for i, bot := range botList {
		value := bot.LiveValue
		if mode == ModeRealized {
			value = bot.RealizedValue
		}
		rows = append(rows, LegendRow{
			Label:      bot.Label,
			Value:      FormatUSD(value),
			ValueColor: ValueColor(value),
			ColorIndex: i % len(palette),
			Color:      palette[i%len(palette)],
		})
	}
	return rows
}

// TooltipRows derives tooltip rows for one series row, sorted by value
// descending (highest PnL first) with ties kept in registration order.
// A nil row (queried timestamp outside the data extent) yields an empty
// slice: no tooltip to render.
func TooltipRows(row *SeriesRow, botList []bots.Bot, palette []string) []TooltipRow {
	if row == nil {
		return []TooltipRow{}
	}
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	rows := make([]TooltipRow, 0, len(botList))
	for i, bot := range botList {
		value, ok := row.Values[bot.ID]
		if !ok {
			continue
		}
		rows = append(rows, TooltipRow{
			Label:       bot.Label,
			Value:       FormatUSD(value),
			RawValue:    value,
			ValueColor:  ValueColor(value),
			SeriesColor: palette[i%len(palette)],
		})
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].RawValue > rows[b].RawValue
	})
	return rows
}
