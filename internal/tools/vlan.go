package tools

import (
	"context"
	"fmt"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerVLANTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.vlan.audit",
		Description: "Audit VLAN configuration: enabled/down mismatches, a still-enabled default VLAN, and suspicious placeholder names.",
		InputSchema: hostArgSchema(map[string]any{
			"vlan_id": map[string]any{"type": "integer", "description": "limit the audit to a single VLAN"},
		}),
	}, handleVLANAudit)
}

func handleVLANAudit(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump", "vlan_id")
	if aerr != nil {
		return domain.Fail(call.Tool, aerr)
	}
	host, port, username, cred, jump, err := baseDeviceArgs(a)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	vlanID, err := a.intDefault("vlan_id", 0)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	res, toolErr := ec.run(ctx, "show vlan", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	vlans := parse.ShowVlan(res.Stdout)

	var detail *parse.VLANDetail
	if vlanID != 0 {
		detailRes, toolErr := ec.run(ctx, fmt.Sprintf("show vlan %d", vlanID), defaultCommandTimeout)
		if toolErr != nil {
			return domain.Fail(call.Tool, toolErr)
		}
		d := parse.ShowVlanDetail(detailRes.Stdout)
		detail = &d
	}

	summary, issues := parse.AnalyzeVlanConfig(vlans)

	data := map[string]any{
		"vlans":              vlans,
		"summary":            summary,
		"detail":             detail,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("%d VLANs, %d issues flagged", summary.Total, len(issues))),
	}, issues)
}
