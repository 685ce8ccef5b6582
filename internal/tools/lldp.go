package tools

import (
	"context"
	"fmt"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerLLDPTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.lldp.neighbors",
		Description: "List LLDP remote-system neighbors, optionally scoped to a single local port.",
		InputSchema: hostArgSchema(map[string]any{
			"port_id": map[string]any{"type": "string", "description": "limit to one local port, e.g. 1/1/19"},
		}),
	}, handleLLDPNeighbors)
}

func handleLLDPNeighbors(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump", "port_id")
	if aerr != nil {
		return domain.Fail(call.Tool, aerr)
	}
	host, port, username, cred, jump, err := baseDeviceArgs(a)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	portID, err := a.str("port_id", false)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	command := "show lldp remote-system"
	if portID != "" {
		command = fmt.Sprintf("show lldp port %s remote-system", portID)
	}

	res, toolErr := ec.run(ctx, command, defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	neighbors := parse.ShowLLDPRemoteSystem(res.Stdout)

	data := map[string]any{
		"neighbors":          neighbors,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("%d LLDP neighbor(s) found", len(neighbors))),
	}, nil)
}
