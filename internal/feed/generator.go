// Package feed supplies the chart engine with mock PnL history. It is the
// external collaborator from the engine's point of view: the engine only
// ever sees the HistoryEntry stream, never the generator. Tests use the
// generator directly as a fixture factory.
package feed

import (
	"math/rand"
	"sync"
)

// walker is one bot's random-walk state
type walker struct {
	live     float64
	realized float64
	steps    int
}

// Generator produces random-walk PnL values per bot. Deterministic for a
// given seed and call sequence.
type Generator struct {
	mu         sync.Mutex
	rng        *rand.Rand
	drift      float64
	volatility float64
	walkers    map[string]*walker
}

// NewGenerator creates a generator with the given seed, per-step drift,
// and volatility (standard deviation of the step noise).
func NewGenerator(seed int64, drift, volatility float64) *Generator {
	return &Generator{
		rng:        rand.New(rand.NewSource(seed)),
		drift:      drift,
		volatility: volatility,
		walkers:    make(map[string]*walker),
	}
}

// Step advances a bot's walk and returns its new live and realized PnL.
// Every tenth step the live PnL is booked into the realized value, the
// way a bot closing a position would.
func (g *Generator) Step(botID string) (live, realized float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	w, ok := g.walkers[botID]
	if !ok {
		w = &walker{}
		g.walkers[botID] = w
	}

	w.live += g.drift + g.rng.NormFloat64()*g.volatility
	w.steps++
	if w.steps%10 == 0 {
		w.realized = w.live
	}

	return w.live, w.realized
}
