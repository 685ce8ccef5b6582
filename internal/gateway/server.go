// Package gateway owns the C6 Transport Adapter's process lifecycle: build
// the HTTP mux from internal/http's route table, listen, and shut down
// cleanly on context cancellation.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/config"
	httpapi "github.com/0xEkho/ALE-OmniSwitch-MCP/internal/http"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/tools"
)

// shutdownGrace bounds how long Start waits for in-flight requests to drain
// once ctx is canceled.
const shutdownGrace = 5 * time.Second

// Server is the gateway's HTTP listener: config, tool registry, rate
// limiter, and the lazily-built mux.
type Server struct {
	cfg      *config.Config
	registry *tools.Registry
	logger   *slog.Logger

	rateLimiter *RateLimiter

	httpServer *http.Server
	mux        *http.ServeMux
}

// NewServer builds a Server around cfg and registry, sizing its rate
// limiter from cfg.Server.RateLimitRPS/Burst.
func NewServer(cfg *config.Config, registry *tools.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:         cfg,
		registry:    registry,
		logger:      logger,
		rateLimiter: NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
	}
}

// RateLimiter returns the server's rate limiter, exposed for tests that want
// to assert on it directly.
func (s *Server) RateLimiter() *RateLimiter { return s.rateLimiter }

// BuildMux creates and caches the HTTP mux with all routes registered.
func (s *Server) BuildMux() *http.ServeMux {
	if s.mux != nil {
		return s.mux
	}
	mux := http.NewServeMux()
	httpapi.RegisterRoutes(mux, &s.cfg.Server, s.registry, s.rateLimiter, s.logger)
	s.mux = mux
	return mux
}

// Start begins listening until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	mux := s.BuildMux()

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpServer = &http.Server{Addr: addr, Handler: mux}

	s.logger.Info("gateway starting", "addr", addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("gateway shutdown error", "error", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("gateway server: %w", err)
	}
	return nil
}
