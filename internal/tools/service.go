package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
)

// CommandRunner is the narrow interface C5 needs from C4; satisfied by
// *sshexec.Executor. Kept as an interface so handler tests can swap in a
// fake executor without standing up real SSH transport.
type CommandRunner interface {
	Run(ctx context.Context, device domain.Device, command string, timeout time.Duration, zr ZoneResolver) (*domain.CommandResult, error)
}

// ZoneResolver is the narrow interface C5 needs from C3; satisfied by
// *zoneauth.Resolver. Aliased to domain.ZoneResolver so it names the
// identical type CommandRunner's Run signature needs to satisfy
// *sshexec.Executor.
type ZoneResolver = domain.ZoneResolver

// Templates holds the configured command templates used by the diagnostic
// tools (aos.diag.ping / aos.diag.traceroute), each containing
// "{destination}"/"{count}" placeholders substituted before sanitize.
type Templates struct {
	Ping        string
	Traceroute  string
}

// Service is the single plain value holding everything a handler needs:
// the compiled policy, the zone resolver, the SSH executor, and process
// defaults. Built once at startup and threaded explicitly through every
// dispatch.
type Service struct {
	Policy    *domain.CompiledPolicy
	Zones     ZoneResolver
	Executor  CommandRunner
	Templates Templates
	Logger    *slog.Logger

	DefaultPort int // SSH port used when args omit one
}

// NewService builds a Service from its constructed dependencies.
func NewService(policy *domain.CompiledPolicy, zones ZoneResolver, executor CommandRunner, tmpl Templates, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Policy: policy, Zones: zones, Executor: executor, Templates: tmpl, Logger: logger, DefaultPort: 22}
}

// globalService is set by Configure and used by Registry.Dispatch; the
// DispatchWith variant bypasses it for tests.
var globalService *Service

// Configure installs the process-wide Service used by Registry.Dispatch.
// cmd/serve.go calls it at startup and again from the config watcher's
// reload hook.
func Configure(svc *Service) { globalService = svc }
