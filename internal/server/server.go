// Package server provides the HTTP server and routing for Botboard.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/botboard/internal/config"
	"github.com/aristath/botboard/internal/events"
	"github.com/aristath/botboard/internal/modules/bots"
	botshandlers "github.com/aristath/botboard/internal/modules/bots/handlers"
	"github.com/aristath/botboard/internal/modules/chart"
	charthandlers "github.com/aristath/botboard/internal/modules/chart/handlers"
	"github.com/aristath/botboard/internal/modules/history"
	"github.com/aristath/botboard/internal/modules/viewport"
)

// Config holds server configuration
type Config struct {
	Log          zerolog.Logger
	Cfg          *config.Config
	EventBus     *events.Bus
	ChartService *chart.Service
	Registry     *bots.Registry
	HistoryLog   *history.Log
	Viewport     *viewport.Controller
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	eventBus       *events.Bus
	chartService   *chart.Service
	registry       *bots.Registry
	historyLog     *history.Log
	vp             *viewport.Controller
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:       chi.NewRouter(),
		log:          cfg.Log.With().Str("component", "server").Logger(),
		cfg:          cfg.Cfg,
		eventBus:     cfg.EventBus,
		chartService: cfg.ChartService,
		registry:     cfg.Registry,
		historyLog:   cfg.HistoryLog,
		vp:           cfg.Viewport,
	}

	s.systemHandlers = NewSystemHandlers(cfg.Log, cfg.HistoryLog, cfg.Registry, cfg.EventBus)

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	chartHandler := charthandlers.NewHandler(s.chartService, s.log)
	chartHandler.RegisterRoutes(s.router)

	botsHandler := botshandlers.NewHandler(s.registry, s.log)
	botsHandler.RegisterRoutes(s.router)

	// Viewport: read-only over HTTP; writes go through the pointer socket
	s.router.Get("/api/viewport", s.handleViewport)

	eventsHandler := NewEventsStreamHandler(s.eventBus, s.log)
	s.router.Get("/api/events/stream", eventsHandler.ServeHTTP)

	pointerHandler := NewPointerSocketHandler(s.vp, s.log)
	s.router.Get("/api/pointer", pointerHandler.ServeHTTP)

	s.router.Get("/api/system/health", s.systemHandlers.HandleHealth)
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.vp.Size(), s.log)
}

// Start begins listening. Blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	s.log.Info().Str("addr", addr).Msg("HTTP server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.log.Info().Msg("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}

// Router exposes the chi router for tests
func (s *Server) Router() http.Handler {
	return s.router
}
