// Package server runs the taabir HTTP server: it wires the LLM client,
// prompt resolver, and pipeline into request contexts and serves the
// endpoint registry.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/taabirhq/taabir/internal/api"
	"github.com/taabirhq/taabir/internal/config"
	"github.com/taabirhq/taabir/internal/home"
	"github.com/taabirhq/taabir/internal/meta"
	"github.com/taabirhq/taabir/internal/pipeline"
	"github.com/taabirhq/taabir/internal/prompts"
	"github.com/taabirhq/taabir/internal/providers"
	"github.com/taabirhq/taabir/internal/server/endpoints"
	"github.com/taabirhq/taabir/internal/svcctx"
)

// Server is the main Taabir HTTP server.
type Server struct {
	httpServer *http.Server
	configMgr  *config.Manager
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8750)
	Port string
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Home is the taabir home directory
	Home *home.Dir
	// LLM overrides the client built from config (used by tests)
	LLM providers.LLMClient
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8750"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}

	s := &Server{
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
	}

	llm := cfg.LLM
	if llm == nil {
		llm = providers.NewOpenAIClient(cfg.ConfigManager.Get().ToOpenAIConfig())
	}

	resolver := prompts.NewResolver(cfg.Logger)
	pipeline.RegisterAllPrompts(resolver)

	s.services = &svcctx.Services{
		ConfigManager: cfg.ConfigManager,
		LLM:           llm,
		Pipeline:      pipeline.New(llm, resolver, cfg.Logger, pipelineDefaults(cfg.ConfigManager.Get())),
		Resolver:      resolver,
		Logger:        cfg.Logger,
		Home:          cfg.Home,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // LLM stages can be slow
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// pipelineDefaults maps the article config section to pipeline defaults.
func pipelineDefaults(cfg *config.Config) pipeline.Defaults {
	return pipeline.Defaults{
		TargetWords: cfg.Article.TargetWords,
		References: pipeline.References{
			IbnSirinEdition: cfg.References.IbnSirinEdition,
			IbnSirinPage:    cfg.References.IbnSirinPage,
			NabulsiEdition:  cfg.References.NabulsiEdition,
			NabulsiPage:     cfg.References.NabulsiPage,
			PsychRef:        cfg.References.PsychRef,
		},
		Author:   meta.Person{Name: cfg.Article.AuthorName, Credentials: cfg.Article.AuthorCredentials},
		Reviewer: meta.Person{Name: cfg.Article.ReviewerName, Credentials: cfg.Article.ReviewerCredentials},
	}
}

// Start starts the server. It blocks until the context is cancelled or an
// error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if s.services.Home != nil {
		if err := s.services.Home.EnsureExists(); err != nil {
			s.setNotRunning()
			return fmt.Errorf("failed to prepare home directory: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the root handler with service injection applied.
// Exposed for httptest-based endpoint tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
