package tools

import (
	"context"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerFactsTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.device.facts",
		Description: "Collect normalized system and chassis identity facts for a device.",
		InputSchema: hostArgSchema(nil),
	}, handleDeviceFacts)
}

func handleDeviceFacts(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
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

	sysRes, toolErr := ec.run(ctx, "show system", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	chassisRes, toolErr := ec.run(ctx, "show chassis", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	facts := parse.ShowSystem(sysRes.Stdout)
	chassis := parse.ShowChassis(chassisRes.Stdout)

	var issues []string
	var hardwareInfo string
	if hwRes, issue := ec.runOptional(ctx, "show hardware-info", defaultCommandTimeout); issue == "" {
		hardwareInfo = hwRes.Stdout
	} else {
		issues = append(issues, issue)
	}

	data := map[string]any{
		"system":             facts,
		"chassis":            chassis,
		"hardware_info":      hardwareInfo,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock("device: " + facts.SystemName + " (" + chassis.Model + ")"),
	}, issues)
}
