package tools

import (
	"context"
	"fmt"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerHealthTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.health.monitor",
		Description: "Read module health, temperature, fan, and power-supply status and flag anything outside normal range.",
		InputSchema: hostArgSchema(nil),
	}, handleHealthMonitor)

	r.register(domain.Tool{
		Name:        "aos.chassis.status",
		Description: "Read chassis model/serial identity plus active/standby CMM role and status.",
		InputSchema: hostArgSchema(nil),
	}, handleChassisStatus)
}

func handleHealthMonitor(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
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

	healthRes, toolErr := ec.run(ctx, "show health all", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	tempRes, toolErr := ec.run(ctx, "show temperature", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	fanRes, toolErr := ec.run(ctx, "show fan", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	psuRes, toolErr := ec.run(ctx, "show power-supply", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	health := parse.ShowHealth(healthRes.Stdout)
	temp := parse.ShowTemperature(tempRes.Stdout)
	fans := parse.ShowFan(fanRes.Stdout)
	psus := parse.ShowPowerSupply(psuRes.Stdout)

	issues := append([]string{}, health.Issues...)
	issues = append(issues, temp.Issues...)
	issues = append(issues, parse.AnalyzeChassisHealth(temp, fans, psus)...)

	data := map[string]any{
		"modules":            health.Modules,
		"overall_status":     health.OverallStatus,
		"temperature":        temp.Sensors,
		"fans":               fans,
		"power_supplies":     psus,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("overall status %s, %d issues flagged", health.OverallStatus, len(issues))),
	}, issues)
}

func handleChassisStatus(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
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

	chassisRes, toolErr := ec.run(ctx, "show chassis", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	cmmRes, toolErr := ec.run(ctx, "show cmm", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	chassis := parse.ShowChassis(chassisRes.Stdout)
	cmm := parse.ShowCMM(cmmRes.Stdout)

	var issues []string
	if cmm.Secondary == nil {
		issues = append(issues, "no standby CMM detected")
	}
	if cmm.Primary != nil && cmm.Primary.Status != "running" && cmm.Primary.Status != "up" {
		issues = append(issues, fmt.Sprintf("primary CMM status: %s", cmm.Primary.Status))
	}

	data := map[string]any{
		"chassis":            chassis,
		"cmm":                cmm,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("%s, serial %s, CMM status %s", chassis.Model, chassis.SerialNumber, cmm.Status)),
	}, issues)
}
