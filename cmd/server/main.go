// Package main is the entry point for the Botboard PnL chart server.
// It wires the chart engine (series projection, legend/tooltip
// composition, variant SVG rendering, viewport resize control) to the
// mock PnL feed and the HTTP surface.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/botboard/internal/config"
	"github.com/aristath/botboard/internal/events"
	"github.com/aristath/botboard/internal/feed"
	"github.com/aristath/botboard/internal/modules/bots"
	"github.com/aristath/botboard/internal/modules/chart"
	"github.com/aristath/botboard/internal/modules/history"
	"github.com/aristath/botboard/internal/modules/viewport"
	"github.com/aristath/botboard/internal/server"
	"github.com/aristath/botboard/pkg/logger"
)

// defaultBots are registered on boot so the chart has series to draw in
// dev mode. Real deployments register bots over the API instead.
var defaultBots = []string{"Momentum", "Mean Revert", "Grid", "Scalper"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting Botboard")

	eventBus := events.NewBus(log)
	registry := bots.NewRegistry(eventBus, log)
	historyLog := history.NewLog(eventBus, log)

	vp := viewport.NewController(
		viewport.Bounds{
			MinHeight: cfg.Viewport.MinHeight,
			MaxHeight: cfg.Viewport.MaxHeight,
			MinWidth:  cfg.Viewport.MinWidth,
		},
		viewport.Size{
			Height:    cfg.Viewport.DefaultHeight,
			Width:     cfg.Viewport.DefaultWidth,
			AutoWidth: true,
		},
		eventBus,
		log,
	)
	defer vp.Close()

	chartService := chart.NewService(historyLog, registry, vp, eventBus, log)

	// Mock feed: the external collaborator appending history entries
	var runner *feed.Runner
	if cfg.FeedEnabled {
		for _, label := range defaultBots {
			if _, err := registry.Register(bots.Bot{Label: label}); err != nil {
				log.Fatal().Err(err).Str("label", label).Msg("Failed to register default bot")
			}
		}

		generator := feed.NewGenerator(time.Now().UnixNano(), 0.15, 4.0)
		runner = feed.NewRunner(registry, historyLog, generator, cfg.FeedInterval, log)
		if err := runner.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start feed")
		}
	}

	srv := server.New(server.Config{
		Log:          log,
		Cfg:          cfg,
		EventBus:     eventBus,
		ChartService: chartService,
		Registry:     registry,
		HistoryLog:   historyLog,
		Viewport:     vp,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// Wait for shutdown signal or server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("Server failed")
		}
	}

	if runner != nil {
		runner.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Botboard stopped")
}
