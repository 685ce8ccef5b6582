package tools

import (
	"context"
	"fmt"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerDHCPTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.dhcp.relay.info",
		Description: "Read per-interface DHCP relay configuration and global relay packet counters.",
		InputSchema: hostArgSchema(nil),
	}, handleDHCPRelayInfo)
}

func handleDHCPRelayInfo(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
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

	ifaceRes, toolErr := ec.run(ctx, "show ip dhcp relay interface", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	interfaces := parse.ShowDHCPRelayInterface(ifaceRes.Stdout)

	statsRes, toolErr := ec.run(ctx, "show ip dhcp relay statistics", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	stats := parse.ShowDHCPRelayStatistics(statsRes.Stdout)

	issues := parse.AnalyzeDHCPRelay(interfaces, stats)

	data := map[string]any{
		"interfaces":         interfaces,
		"global_statistics":  stats,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("%d relay interfaces, %d issues flagged", len(interfaces), len(issues))),
	}, issues)
}
