package tools

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/policy"
)

type fakeRunner struct {
	stdout  string
	lastCmd string
	err     error
}

func (f *fakeRunner) Run(_ context.Context, _ domain.Device, command string, _ time.Duration, _ ZoneResolver) (*domain.CommandResult, error) {
	f.lastCmd = command
	if f.err != nil {
		return nil, f.err
	}
	return &domain.CommandResult{Stdout: f.stdout}, nil
}

type fakeZones struct{}

func (fakeZones) Primary(string) (domain.ZoneCredentials, bool) { return domain.ZoneCredentials{}, false }

func newTestService(t *testing.T, runner CommandRunner) *Service {
	t.Helper()
	p, err := policy.Compile(policy.DefaultConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return NewService(p, fakeZones{}, runner, Templates{
		Ping:       "ping {destination} {count}",
		Traceroute: "traceroute {destination}",
	}, slog.Default())
}

func TestHandleCLIReadonlyRunsSanitizedCommand(t *testing.T) {
	runner := &fakeRunner{stdout: "Chassis 1 OK"}
	svc := newTestService(t, runner)
	r := NewRegistry()

	result := r.DispatchWith(context.Background(), svc, domain.ToolCall{
		Tool: "aos.cli.readonly",
		Args: map[string]any{"host": "10.0.0.1", "command": "show chassis"},
	})

	if result.Status != "ok" {
		t.Fatalf("status = %q, want ok: %+v", result.Status, result.Error)
	}
	if runner.lastCmd != "show chassis" {
		t.Fatalf("lastCmd = %q, want 'show chassis'", runner.lastCmd)
	}
	if result.Data["stdout"] != "Chassis 1 OK" {
		t.Fatalf("stdout = %v, want 'Chassis 1 OK'", result.Data["stdout"])
	}
}

func TestHandleCLIReadonlyRejectsDisallowedCommand(t *testing.T) {
	runner := &fakeRunner{stdout: "should not run"}
	svc := newTestService(t, runner)
	r := NewRegistry()

	result := r.DispatchWith(context.Background(), svc, domain.ToolCall{
		Tool: "aos.cli.readonly",
		Args: map[string]any{"host": "10.0.0.1", "command": "reload all"},
	})

	if result.Status != "error" {
		t.Fatalf("status = %q, want error", result.Status)
	}
	if result.Error.Code != domain.ErrInvalidCommand {
		t.Fatalf("Error.Code = %q, want %q", result.Error.Code, domain.ErrInvalidCommand)
	}
	if runner.lastCmd != "" {
		t.Fatal("expected the rejected command to never reach the runner")
	}
}

func TestHandleCLIReadonlyRequiresHost(t *testing.T) {
	runner := &fakeRunner{}
	svc := newTestService(t, runner)
	r := NewRegistry()

	result := r.DispatchWith(context.Background(), svc, domain.ToolCall{
		Tool: "aos.cli.readonly",
		Args: map[string]any{"command": "show chassis"},
	})

	if result.Status != "error" {
		t.Fatal("expected an error when host is missing")
	}
}

func TestHandleDiagPingSubstitutesTemplate(t *testing.T) {
	runner := &fakeRunner{stdout: "5 packets transmitted"}
	svc := newTestService(t, runner)
	r := NewRegistry()

	result := r.DispatchWith(context.Background(), svc, domain.ToolCall{
		Tool: "aos.diag.ping",
		Args: map[string]any{"host": "10.0.0.1", "destination": "8.8.8.8", "count": float64(3)},
	})

	if result.Status != "ok" {
		t.Fatalf("status = %q, want ok: %+v", result.Status, result.Error)
	}
	if runner.lastCmd != "ping 8.8.8.8 3" {
		t.Fatalf("lastCmd = %q, want 'ping 8.8.8.8 3'", runner.lastCmd)
	}
}

func TestHandleDiagPingFailsWithoutConfiguredTemplate(t *testing.T) {
	runner := &fakeRunner{}
	svc := newTestService(t, runner)
	svc.Templates.Ping = ""
	r := NewRegistry()

	result := r.DispatchWith(context.Background(), svc, domain.ToolCall{
		Tool: "aos.diag.ping",
		Args: map[string]any{"host": "10.0.0.1", "destination": "8.8.8.8"},
	})

	if result.Status != "error" || result.Error.Code != domain.ErrInvalidRequest {
		t.Fatalf("result = %+v, want an invalid_request error", result)
	}
}

func TestDispatchUnknownToolReturnsNotFound(t *testing.T) {
	r := NewRegistry()
	svc := newTestService(t, &fakeRunner{})

	result := r.DispatchWith(context.Background(), svc, domain.ToolCall{Tool: "aos.does.not.exist"})
	if result.Error == nil || result.Error.Code != domain.ErrUnknownTool {
		t.Fatalf("result = %+v, want unknown_tool", result)
	}
}
