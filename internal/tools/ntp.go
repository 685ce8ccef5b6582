package tools

import (
	"context"
	"fmt"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerNTPTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.ntp.status",
		Description: "Read NTP sync status and configured server reachability, flagged for stratum, offset, and reachability problems.",
		InputSchema: hostArgSchema(nil),
	}, handleNTPStatus)
}

func handleNTPStatus(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
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

	statusRes, toolErr := ec.run(ctx, "show ntp status", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	status := parse.ShowNTPStatus(statusRes.Stdout)

	var servers []parse.NTPServer
	var issues []string
	if res, issue := ec.runOptional(ctx, "show ntp client server-list", defaultCommandTimeout); issue == "" {
		servers = parse.ShowNTPClientServerList(res.Stdout)
	} else {
		issues = append(issues, issue)
	}

	issues = append(issues, parse.AnalyzeNTPStatus(status, servers)...)

	data := map[string]any{
		"status":             status,
		"servers":            servers,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("synchronized=%v, %d issues flagged", status.Synchronized, len(issues))),
	}, issues)
}
