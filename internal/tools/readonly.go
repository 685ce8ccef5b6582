package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
)

func hostArgSchema(extra map[string]any) map[string]any {
	props := map[string]any{
		"host":     map[string]any{"type": "string", "description": "device IPv4 address or hostname"},
		"port":     map[string]any{"type": "integer", "description": "SSH port (default 22)"},
		"username": map[string]any{"type": "string"},
		"password": map[string]any{"type": "string"},
		"jump":     map[string]any{"type": "string", "description": "configured jump host name"},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]any{"type": "object", "properties": props, "required": []string{"host"}}
}

// commandResultData renders a CommandResult into the standard stdout/
// stderr/exit/duration/truncated/redacted data shape shared by every
// single-command tool.
func commandResultData(res *domain.CommandResult, redacted bool) map[string]any {
	data := map[string]any{
		"stdout":     res.Stdout,
		"stderr":     res.Stderr,
		"duration_ms": res.DurationMS,
		"truncated":  res.Truncated,
		"redacted":   redacted,
	}
	if res.ExitStatus != nil {
		data["exit_status"] = *res.ExitStatus
	}
	return data
}

func baseDeviceArgs(a *argReader) (string, int, string, *domain.Credential, string, *domain.ToolError) {
	host, err := a.str("host", true)
	if err != nil {
		return "", 0, "", nil, "", err
	}
	port, err := a.intDefault("port", 22)
	if err != nil {
		return "", 0, "", nil, "", err
	}
	username, err := a.str("username", false)
	if err != nil {
		return "", 0, "", nil, "", err
	}
	password, err := a.str("password", false)
	if err != nil {
		return "", 0, "", nil, "", err
	}
	jump, err := a.str("jump", false)
	if err != nil {
		return "", 0, "", nil, "", err
	}
	username, cred := credentialFromArgs(username, password)
	return host, port, username, cred, jump, nil
}

func registerReadonlyTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.cli.readonly",
		Description: "Run a single read-only CLI command against a device and return its sanitized output.",
		InputSchema: hostArgSchema(map[string]any{
			"command": map[string]any{"type": "string"},
		}),
	}, handleCLIReadonly)

	r.register(domain.Tool{
		Name:        "aos.diag.ping",
		Description: "Ping a destination from the device using the configured ping command template.",
		InputSchema: hostArgSchema(map[string]any{
			"destination": map[string]any{"type": "string"},
			"count":       map[string]any{"type": "integer"},
		}),
	}, handleDiagPing)

	r.register(domain.Tool{
		Name:        "aos.diag.traceroute",
		Description: "Traceroute to a destination from the device using the configured traceroute command template.",
		InputSchema: hostArgSchema(map[string]any{
			"destination": map[string]any{"type": "string"},
		}),
	}, handleDiagTraceroute)
}

func handleCLIReadonly(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump", "command")
	if aerr != nil {
		return domain.Fail(call.Tool, aerr)
	}
	host, port, username, cred, jump, err := baseDeviceArgs(a)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	command, err := a.str("command", true)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	res, toolErr := ec.run(ctx, command, defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	data := commandResultData(res, ec.lastRedacted)
	data["commands_executed"] = ec.commands
	return domain.OK(call.Tool, data, []domain.ContentBlock{textBlock(fmt.Sprintf("```\n%s\n```", res.Stdout))}, nil)
}

func handleDiagPing(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	return handleTemplateDiag(ctx, svc, call, svc.Templates.Ping, "destination")
}

func handleDiagTraceroute(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	return handleTemplateDiag(ctx, svc, call, svc.Templates.Traceroute, "destination")
}

func handleTemplateDiag(ctx context.Context, svc *Service, call domain.ToolCall, tmpl string, destKey string) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump", "destination", "count")
	if aerr != nil {
		return domain.Fail(call.Tool, aerr)
	}
	host, port, username, cred, jump, err := baseDeviceArgs(a)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	destination, err := a.str(destKey, true)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	count, err := a.intDefault("count", 5)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}

	if tmpl == "" {
		return domain.Fail(call.Tool, domain.NewToolError(domain.ErrInvalidRequest, "no command template configured for this tool"))
	}
	command := tmpl
	if strings.Contains(command, "{destination}") {
		command = strings.ReplaceAll(command, "{destination}", destination)
	} else {
		return domain.Fail(call.Tool, domain.NewToolError(domain.ErrInvalidRequest, "command template missing {destination} placeholder"))
	}
	command = strings.ReplaceAll(command, "{count}", fmt.Sprintf("%d", count))

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	res, toolErr := ec.run(ctx, command, defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	data := commandResultData(res, ec.lastRedacted)
	data["commands_executed"] = ec.commands
	return domain.OK(call.Tool, data, []domain.ContentBlock{textBlock(fmt.Sprintf("```\n%s\n```", res.Stdout))}, nil)
}
