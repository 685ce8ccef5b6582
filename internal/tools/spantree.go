package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerSpantreeTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.spantree.audit",
		Description: "Audit spanning tree mode, CIST root/bridge state, per-port roles, and per-VLAN STP status.",
		InputSchema: hostArgSchema(nil),
	}, handleSpantreeAudit)
}

func handleSpantreeAudit(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump")
	if aerr != nil {
		return domain.Fail(call.Tool, aerr)
	}
	host, port, username, cred, jump, err := baseDeviceArgs(a)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	modeRes, toolErr := ec.run(ctx, "show spantree mode", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	cistRes, toolErr := ec.run(ctx, "show spantree cist", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	portsRes, toolErr := ec.run(ctx, "show spantree ports", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	vlanRes, toolErr := ec.run(ctx, "show spantree vlan", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	mode := parse.ShowSpantreeMode(modeRes.Stdout)
	cist := parse.ShowSpantreeCIST(cistRes.Stdout)
	ports := parse.ShowSpantreePorts(portsRes.Stdout)
	vlans := parse.ShowSpantreeVLAN(vlanRes.Stdout)

	var issues []string
	if !strings.EqualFold(cist.STPStatus, "on") && !strings.EqualFold(cist.STPStatus, "enabled") {
		issues = append(issues, fmt.Sprintf("spanning tree status: %s", cist.STPStatus))
	}
	for _, p := range ports {
		if strings.EqualFold(p.Role, "backup") || strings.EqualFold(p.Role, "alternate") {
			issues = append(issues, fmt.Sprintf("port %s (MSTI %s): role %s, state %s", p.PortID, p.MSTI, p.Role, p.OperState))
		}
	}
	for _, v := range vlans {
		if strings.EqualFold(v.Status, "inactive") {
			issues = append(issues, fmt.Sprintf("VLAN %d: spanning tree status inactive", v.VLANID))
		}
	}

	data := map[string]any{
		"mode":               mode,
		"cist":               cist,
		"ports":              ports,
		"vlans":              vlans,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("spanning tree mode %s, %d issues flagged", mode.Mode, len(issues))),
	}, issues)
}
