// Package bots provides the registry of tracked trading bots.
// Registration order is significant: legend rows and palette colors are
// assigned by position in the registry, not by bot id or value.
package bots

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/botboard/internal/events"
)

// Bot describes one tracked value-producing source
type Bot struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	LiveValue     float64 `json:"live_value"`
	RealizedValue float64 `json:"realized_value"`
}

// Registry holds registered bots in registration order. Safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	byID     map[string]*Bot
	eventBus *events.Bus
	log      zerolog.Logger
}

// NewRegistry creates a new bot registry
func NewRegistry(eventBus *events.Bus, log zerolog.Logger) *Registry {
	return &Registry{
		byID:     make(map[string]*Bot),
		eventBus: eventBus,
		log:      log.With().Str("service", "bots").Logger(),
	}
}

// Register adds a bot to the registry and returns its id. When the bot
// carries no id, one is generated. Registering an existing id updates the
// label only and keeps the bot's position.
func (r *Registry) Register(bot Bot) (string, error) {
	if bot.Label == "" {
		return "", fmt.Errorf("bot label cannot be empty")
	}

	r.mu.Lock()
	if bot.ID == "" {
		bot.ID = uuid.New().String()
	}

	if existing, ok := r.byID[bot.ID]; ok {
		existing.Label = bot.Label
		r.mu.Unlock()
		return bot.ID, nil
	}

	b := bot
	r.byID[b.ID] = &b
	r.order = append(r.order, b.ID)
	r.mu.Unlock()

	r.log.Info().Str("bot_id", b.ID).Str("label", b.Label).Msg("Bot registered")

	if r.eventBus != nil {
		r.eventBus.Publish(&events.BotRegisteredData{BotID: b.ID, Label: b.Label})
	}

	return b.ID, nil
}

// List returns all bots in registration order
func (r *Registry) List() []Bot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Bot, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *r.byID[id])
	}
	return result
}

// IDs returns all bot ids in registration order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Get returns a bot by id
func (r *Registry) Get(id string) (Bot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bot, ok := r.byID[id]
	if !ok {
		return Bot{}, fmt.Errorf("bot not found: %s", id)
	}
	return *bot, nil
}

// UpdateValues sets a bot's live and realized PnL values
func (r *Registry) UpdateValues(id string, live, realized float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bot, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("bot not found: %s", id)
	}
	bot.LiveValue = live
	bot.RealizedValue = realized
	return nil
}

// Count returns the number of registered bots
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
