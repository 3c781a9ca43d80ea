// Package history provides the in-memory PnL history log.
// The log is append-only and owned by the data feed; the chart engine only
// reads it. Entries are expected to arrive with non-decreasing timestamps;
// the log does not sort or validate them (caller contract).
package history

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/aristath/botboard/internal/events"
)

// BotValue is one bot's PnL value within an entry
type BotValue struct {
	BotID string  `json:"bot_id"`
	Value float64 `json:"value"`
}

// Entry is one time-stamped set of per-bot values
type Entry struct {
	Timestamp int64      `json:"timestamp"` // epoch milliseconds
	Values    []BotValue `json:"values"`
}

// Log is an append-only in-memory history of entries. Safe for concurrent
// use.
type Log struct {
	mu       sync.RWMutex
	entries  []Entry
	eventBus *events.Bus
	log      zerolog.Logger
}

// NewLog creates a new history log
func NewLog(eventBus *events.Bus, log zerolog.Logger) *Log {
	return &Log{
		eventBus: eventBus,
		log:      log.With().Str("service", "history").Logger(),
	}
}

// Append adds an entry to the log and publishes HistoryAppended
func (l *Log) Append(entry Entry) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	total := len(l.entries)
	l.mu.Unlock()

	if l.eventBus != nil {
		l.eventBus.Publish(&events.HistoryAppendedData{
			Timestamp: entry.Timestamp,
			Bots:      len(entry.Values),
			Entries:   total,
		})
	}
}

// All returns a copy of the full log in append order
func (l *Log) All() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Since returns entries with timestamp >= startMs, in append order.
// startMs <= 0 returns the full log.
func (l *Log) Since(startMs int64) []Entry {
	if startMs <= 0 {
		return l.All()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for _, e := range l.entries {
		if e.Timestamp >= startMs {
			out = append(out, e)
		}
	}
	return out
}

// At returns the entry with the exact timestamp, or false when no entry
// matches (pointer hovering outside the data extent).
func (l *Log) At(timestamp int64) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	// Scan from the end: tooltip queries overwhelmingly target recent data.
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Timestamp == timestamp {
			return l.entries[i], true
		}
	}
	return Entry{}, false
}

// Len returns the number of entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
