package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerPoETools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.diag.poe",
		Description: "Read Power-over-Ethernet status for every port on a chassis slot.",
		InputSchema: hostArgSchema(map[string]any{
			"slot": map[string]any{"type": "integer", "description": "chassis slot number, default 1"},
		}),
	}, handleDiagPoE)

	r.register(domain.Tool{
		Name:        "aos.poe.restart",
		Description: "Power-cycle PoE on a single port: disable, wait, re-enable. The only write tool in the catalog.",
		InputSchema: hostArgSchema(map[string]any{
			"port_id":      map[string]any{"type": "string", "description": "chassis/slot/port id, e.g. 1/1/12"},
			"wait_seconds": map[string]any{"type": "integer", "description": "pause between disable and enable, default 5"},
		}),
	}, handlePoERestart)
}

func handleDiagPoE(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump", "slot")
	if aerr != nil {
		return domain.Fail(call.Tool, aerr)
	}
	host, port, username, cred, jump, err := baseDeviceArgs(a)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	slot, err := a.intDefault("slot", 1)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	res, toolErr := ec.run(ctx, fmt.Sprintf("show lanpower slot %d/1", slot), defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	ports, summary := parse.ShowLanPower(res.Stdout)
	data := map[string]any{
		"ports":              ports,
		"chassis_summary":    summary,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("%d PoE ports read from slot %d", len(ports), slot)),
	}, nil)
}

func handlePoERestart(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump", "port_id", "wait_seconds")
	if aerr != nil {
		return domain.Fail(call.Tool, aerr)
	}
	host, port, username, cred, jump, err := baseDeviceArgs(a)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	portID, err := a.str("port_id", true)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	waitSeconds, err := a.intDefault("wait_seconds", 5)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	disableRes, toolErr := ec.run(ctx, fmt.Sprintf("lanpower port %s admin-state disable", portID), defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	select {
	case <-time.After(time.Duration(waitSeconds) * time.Second):
	case <-ctx.Done():
		return domain.Fail(call.Tool, domain.NewToolError(domain.ErrSSH, "request cancelled while waiting between disable and enable"))
	}

	enableRes, toolErr := ec.run(ctx, fmt.Sprintf("lanpower port %s admin-state enable", portID), defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	success := disableRes.ExitStatus != nil && *disableRes.ExitStatus == 0 &&
		enableRes.ExitStatus != nil && *enableRes.ExitStatus == 0

	data := map[string]any{
		"success":            success,
		"port_id":            portID,
		"commands_executed":  ec.commands,
	}
	status := "restarted"
	if !success {
		status = "restart reported a non-zero exit status"
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("PoE on %s %s", portID, status)),
	}, nil)
}
