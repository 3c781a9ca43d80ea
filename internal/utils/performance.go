package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// slowRenderThreshold flags render passes that take long enough to be
// visible as UI lag.
const slowRenderThreshold = 100 * time.Millisecond

// Timer measures the duration of one operation, typically a render pass
type Timer struct {
	start time.Time
	name  string
	log   zerolog.Logger
}

// NewTimer creates and starts a timer with the given operation name
func NewTimer(name string, log zerolog.Logger) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
		log:   log,
	}
}

// Stop stops the timer, logs the duration, and returns it. Operations
// over the slow threshold are logged at warn level.
func (t *Timer) Stop() time.Duration {
	duration := time.Since(t.start)

	event := t.log.Debug()
	if duration > slowRenderThreshold {
		event = t.log.Warn()
	}
	event.
		Str("operation", t.name).
		Dur("duration", duration).
		Msg("Operation timed")

	return duration
}
