package chart

import (
	"github.com/aristath/botboard/internal/modules/history"
)

// SeriesRow is one denormalized row of the projected series table: the
// shared timestamp plus a value per bot present in the source entry.
// A bot absent from the entry has no key in Values ("no point", not 0).
type SeriesRow struct {
	Timestamp int64              `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// Project converts the history log into one SeriesRow per entry,
// materializing only the columns named in botIDs. Entries are emitted in
// given order; out-of-order timestamps pass through as-is (caller
// contract). Pure function, O(n*k).
func Project(entries []history.Entry, botIDs []string) []SeriesRow {
	wanted := make(map[string]bool, len(botIDs))
	for _, id := range botIDs {
		wanted[id] = true
	}

	rows := make([]SeriesRow, 0, len(entries))
	for _, entry := range entries {
		row := SeriesRow{
			Timestamp: entry.Timestamp,
			Values:    make(map[string]float64, len(entry.Values)),
		}
		for _, v := range entry.Values {
			if wanted[v.BotID] {
				row.Values[v.BotID] = v.Value
			}
		}
		rows = append(rows, row)
	}
	return rows
}
