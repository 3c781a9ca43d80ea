package chart

import (
	"fmt"
	"time"
)

// Semantic value colors (sign of the PnL, not the series palette)
const (
	colorPositive = "#4ade80"
	colorNegative = "#f87171"
)

// FormatUSD renders a PnL value as a signed dollar string:
// 342.5 -> "$342.50", -124.3 -> "-$124.30".
func FormatUSD(value float64) string {
	if value < 0 {
		return fmt.Sprintf("-$%.2f", -value)
	}
	return fmt.Sprintf("$%.2f", value)
}

// FormatClock renders an epoch-millisecond timestamp as HH:MM (UTC)
func FormatClock(timestampMs int64) string {
	return time.UnixMilli(timestampMs).UTC().Format("15:04")
}

// ValueColor returns the semantic color for a value: green for gains
// (including zero), red for losses. Independent of the series palette.
func ValueColor(value float64) string {
	if value < 0 {
		return colorNegative
	}
	return colorPositive
}
