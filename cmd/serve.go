package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/config"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/gateway"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/sshexec"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/tools"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/tracing"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/zoneauth"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway, listening for tool-call requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", cfgPath, err)
	}

	logger := newLogger(cfg.Logging)
	logger.Info("config loaded", "path", cfgPath, "hash", cfg.Hash())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing.Enabled, cfg.Tracing.ServiceName, cfg.Tracing.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	compiledPolicy, err := cfg.CompiledPolicy()
	if err != nil {
		return fmt.Errorf("compile policy: %w", err)
	}

	zoneResolver := zoneauth.New(cfg.ZoneMap(), logger)
	executor := sshexec.New(cfg.SSH, cfg.JumpHostsByName(), cfg.DefaultUsername, cfg.DefaultAuth, logger)
	templates := tools.Templates{Ping: cfg.Diagnostics.PingTemplate, Traceroute: cfg.Diagnostics.TracerouteTemplate}

	tools.Configure(tools.NewService(compiledPolicy, zoneResolver, executor, templates, logger))
	registry := tools.NewRegistry()

	watcher := config.NewWatcher(cfgPath, cfg, func(err error) {
		logger.Error("config reload failed", "error", err)
	})
	watcher.OnReload = func(reloaded *config.Config) {
		freshPolicy, err := reloaded.CompiledPolicy()
		if err != nil {
			logger.Error("config reload: policy recompile failed, keeping previous policy", "error", err)
			return
		}
		freshZones := zoneauth.New(reloaded.ZoneMap(), logger)
		tools.Configure(tools.NewService(freshPolicy, freshZones, executor, templates, logger))
		logger.Info("config reloaded", "hash", reloaded.Hash())
	}
	if err := watcher.Start(); err != nil {
		logger.Warn("config watcher not started", "error", err)
	} else {
		defer watcher.Close()
	}

	srv := gateway.NewServer(cfg, registry, logger)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	logger.Info("gateway stopped")
	return nil
}

// newLogger builds the process-wide slog.Logger from the configured
// level/format, passed down explicitly rather than installed as the
// package-global default.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
