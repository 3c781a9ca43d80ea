package feed

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/aristath/botboard/internal/modules/bots"
	"github.com/aristath/botboard/internal/modules/history"
)

// Runner appends one history entry for all registered bots on a fixed
// cadence. Timestamps are non-decreasing by construction, satisfying the
// history log's caller contract.
type Runner struct {
	cron       *cron.Cron
	registry   *bots.Registry
	historyLog *history.Log
	generator  *Generator
	interval   time.Duration
	log        zerolog.Logger
}

// NewRunner creates a new feed runner
func NewRunner(
	registry *bots.Registry,
	historyLog *history.Log,
	generator *Generator,
	interval time.Duration,
	log zerolog.Logger,
) *Runner {
	return &Runner{
		cron:       cron.New(),
		registry:   registry,
		historyLog: historyLog,
		generator:  generator,
		interval:   interval,
		log:        log.With().Str("service", "feed").Logger(),
	}
}

// Start schedules the periodic tick
func (r *Runner) Start() error {
	schedule := fmt.Sprintf("@every %s", r.interval)
	if _, err := r.cron.AddFunc(schedule, r.Tick); err != nil {
		return fmt.Errorf("failed to schedule feed tick: %w", err)
	}
	r.cron.Start()
	r.log.Info().Dur("interval", r.interval).Msg("Feed started")
	return nil
}

// Stop halts the schedule. Running ticks finish first.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info().Msg("Feed stopped")
}

// Tick appends one entry covering every registered bot and refreshes the
// bots' live/realized values. Exported so tests and seed code can drive
// the feed without the scheduler.
func (r *Runner) Tick() {
	botList := r.registry.List()
	if len(botList) == 0 {
		return
	}

	entry := history.Entry{
		Timestamp: time.Now().UnixMilli(),
		Values:    make([]history.BotValue, 0, len(botList)),
	}

	for _, bot := range botList {
		live, realized := r.generator.Step(bot.ID)
		entry.Values = append(entry.Values, history.BotValue{BotID: bot.ID, Value: live})

		if err := r.registry.UpdateValues(bot.ID, live, realized); err != nil {
			r.log.Warn().Err(err).Str("bot_id", bot.ID).Msg("Failed to update bot values")
		}
	}

	r.historyLog.Append(entry)
}
