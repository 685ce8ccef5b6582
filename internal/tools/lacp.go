package tools

import (
	"context"
	"fmt"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerLACPTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.lacp.info",
		Description: "Read link aggregate groups and LACP protocol/partner status, cross-checked for members without an active partner.",
		InputSchema: hostArgSchema(nil),
	}, handleLACPInfo)
}

func handleLACPInfo(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
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

	linkaggRes, toolErr := ec.run(ctx, "show linkagg", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	lags, parseIssues := parse.ShowLinkAgg(linkaggRes.Stdout)

	lacpRes, toolErr := ec.run(ctx, "show lacp", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	lacp := parse.ShowLACP(lacpRes.Stdout)

	issues := append([]string{}, parseIssues...)
	issues = append(issues, parse.AnalyzeLACPIssues(lacp, lags)...)

	data := map[string]any{
		"link_aggregates":    lags,
		"lacp":               lacp,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("%d link aggregates, %d issues flagged", len(lags), len(issues))),
	}, issues)
}
