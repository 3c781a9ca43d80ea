package history

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/botboard/internal/events"
)

func TestLog_AppendAndAll(t *testing.T) {
	l := NewLog(nil, zerolog.Nop())

	l.Append(Entry{Timestamp: 1000, Values: []BotValue{{BotID: "a", Value: 1}}})
	l.Append(Entry{Timestamp: 2000, Values: []BotValue{{BotID: "a", Value: 2}}})

	all := l.All()
	require.Len(t, all, 2)
	assert.Equal(t, int64(1000), all[0].Timestamp)
	assert.Equal(t, int64(2000), all[1].Timestamp)
	assert.Equal(t, 2, l.Len())
}

func TestLog_Since(t *testing.T) {
	l := NewLog(nil, zerolog.Nop())

	for _, ts := range []int64{1000, 2000, 3000} {
		l.Append(Entry{Timestamp: ts})
	}

	assert.Len(t, l.Since(0), 3, "non-positive start returns the full log")
	assert.Len(t, l.Since(2000), 2, "boundary is inclusive")
	assert.Len(t, l.Since(3001), 0)
}

func TestLog_At(t *testing.T) {
	l := NewLog(nil, zerolog.Nop())

	l.Append(Entry{Timestamp: 1000, Values: []BotValue{{BotID: "a", Value: 7}}})

	entry, ok := l.At(1000)
	require.True(t, ok)
	assert.Equal(t, 7.0, entry.Values[0].Value)

	_, ok = l.At(1500)
	assert.False(t, ok, "no interpolation between rows")
}

func TestLog_PublishesHistoryAppended(t *testing.T) {
	log := zerolog.Nop()
	bus := events.NewBus(log)
	l := NewLog(bus, log)

	_, ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	l.Append(Entry{Timestamp: 1000, Values: []BotValue{{BotID: "a", Value: 1}}})

	select {
	case evt := <-ch:
		require.Equal(t, events.HistoryAppended, evt.Type)
		data, ok := evt.Data.(*events.HistoryAppendedData)
		require.True(t, ok)
		assert.Equal(t, int64(1000), data.Timestamp)
		assert.Equal(t, 1, data.Bots)
		assert.Equal(t, 1, data.Entries)
	case <-time.After(time.Second):
		t.Fatal("expected HistoryAppended event")
	}
}

func TestLog_AllReturnsCopy(t *testing.T) {
	l := NewLog(nil, zerolog.Nop())
	l.Append(Entry{Timestamp: 1000})

	all := l.All()
	all[0].Timestamp = 9999

	assert.Equal(t, int64(1000), l.All()[0].Timestamp)
}
