// Package server provides the HTTP server for the page-transformation core.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/synthos/synthos/internal/pagecache"
	"github.com/synthos/synthos/internal/pipelineevents"
	"github.com/synthos/synthos/internal/provider"
	"github.com/synthos/synthos/pkg/types"
)

// Config holds server configuration.
type Config struct {
	Port         int
	EnableCORS   bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:         8080,
		EnableCORS:   true,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
}

// Server is the HTTP server.
type Server struct {
	config    *Config
	router    *chi.Mux
	httpSrv   *http.Server
	appConfig *types.Config
	cache     *pagecache.Cache
	providers *provider.Registry
	events    *pipelineevents.Bus
}

// New creates a new Server instance. providers may be nil in tests that
// never exercise the transform endpoint.
func New(cfg *Config, appConfig *types.Config, cache *pagecache.Cache, providers *provider.Registry) *Server {
	r := chi.NewRouter()

	s := &Server{
		config:    cfg,
		router:    r,
		appConfig: appConfig,
		cache:     cache,
		providers: providers,
		events:    pipelineevents.New(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Events returns the pipeline stage event bus for subscribers that want
// transform progress (e.g. a dev-mode log tap).
func (s *Server) Events() *pipelineevents.Bus {
	return s.events
}

// setupMiddleware configures middleware for the server.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RealIP)

	if s.config.EnableCORS {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully shuts down the server and its event bus.
func (s *Server) Shutdown(ctx context.Context) error {
	s.events.Close()
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router returns the Chi router, for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}
