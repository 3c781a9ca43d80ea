// Package events provides a typed in-process event bus.
// Publishers emit typed EventData; subscribers receive envelopes on a
// buffered channel and are dropped rather than blocked when slow.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventType identifies a category of event flowing through the bus
type EventType string

const (
	HistoryAppended EventType = "history_appended"
	ViewportChanged EventType = "viewport_changed"
	VariantChanged  EventType = "variant_changed"
	BotRegistered   EventType = "bot_registered"
)

// Event is the envelope delivered to subscribers
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      EventData `json:"data"`
}

// subscriberBufferSize bounds how far a slow subscriber may lag before
// events are dropped for it.
const subscriberBufferSize = 64

type subscriber struct {
	id string
	ch chan Event
}

// Bus is a fan-out event bus. Safe for concurrent use.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
	log         zerolog.Logger
}

// NewBus creates a new event bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[string]*subscriber),
		log:         log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a new subscriber and returns its id, the delivery
// channel, and an unsubscribe function. The caller must drain the channel
// or accept dropped events.
func (b *Bus) Subscribe() (string, <-chan Event, func()) {
	sub := &subscriber{
		id: uuid.New().String(),
		ch: make(chan Event, subscriberBufferSize),
	}

	b.mu.Lock()
	b.subscribers[sub.id] = sub
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		if s, ok := b.subscribers[sub.id]; ok {
			delete(b.subscribers, sub.id)
			close(s.ch)
		}
		b.mu.Unlock()
	}

	return sub.id, sub.ch, unsubscribe
}

// Publish delivers an event to all current subscribers. Slow subscribers
// have the event dropped, never block the publisher.
func (b *Bus) Publish(data EventData) {
	evt := Event{
		Type:      data.EventType(),
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		select {
		case sub.ch <- evt:
		default:
			b.log.Debug().
				Str("subscriber", sub.id).
				Str("event_type", string(evt.Type)).
				Msg("Dropping event for slow subscriber")
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
