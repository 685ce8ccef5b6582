package tools

import (
	"context"
	"time"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/policy"
)

// execCtx threads one handler invocation's device, zone resolver, and the
// ordered list of commands actually sent to the device (commands_executed)
// through a sequence of sanitize-then-run calls.
type execCtx struct {
	svc      *Service
	device   domain.Device
	commands []string

	lastRedacted bool
}

func newExecCtx(svc *Service, device domain.Device) *execCtx {
	return &execCtx{svc: svc, device: device}
}

// run sanitizes raw via C1, and iff that succeeds, executes it via C4 and
// records it in commands_executed. A command is never sent to a device
// before it has been sanitized. timeout of 0 uses the executor's configured
// default.
func (e *execCtx) run(ctx context.Context, raw string, timeout time.Duration) (*domain.CommandResult, *domain.ToolError) {
	sanitized, err := policy.Sanitize(raw, e.svc.Policy)
	if err != nil {
		return nil, err.(*domain.ToolError)
	}
	e.commands = append(e.commands, sanitized)

	res, runErr := e.svc.Executor.Run(ctx, e.device, sanitized, timeout, e.svc.Zones)
	if runErr != nil {
		if te, ok := runErr.(*domain.ToolError); ok {
			return nil, te
		}
		return nil, domain.NewToolError(domain.ErrSSH, runErr.Error())
	}
	sanitizedOut := policy.SanitizeOutput(res.Stdout, e.svc.Policy)
	sanitizedErr := policy.SanitizeOutput(res.Stderr, e.svc.Policy)
	e.lastRedacted = sanitizedOut != res.Stdout || sanitizedErr != res.Stderr
	res.Stdout = sanitizedOut
	res.Stderr = sanitizedErr
	return res, nil
}

// runOptional runs raw the same way as run, but treats any failure (policy
// rejection or ssh_error) as non-fatal: it returns (nil, issue-string)
// instead of a ToolError, so aggregating handlers can swallow it into
// issues/warnings and continue building a partial result.
func (e *execCtx) runOptional(ctx context.Context, raw string, timeout time.Duration) (*domain.CommandResult, string) {
	res, toolErr := e.run(ctx, raw, timeout)
	if toolErr != nil {
		return nil, toolErr.Message
	}
	return res, ""
}
