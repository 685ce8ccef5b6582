package tools

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerPortTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.port.info",
		Description: "Read admin/oper state, speed, duplex, and VLAN for a single port.",
		InputSchema: hostArgSchema(map[string]any{
			"port_id": map[string]any{"type": "string"},
		}),
	}, handlePortInfo)

	r.register(domain.Tool{
		Name:        "aos.port.discover",
		Description: "Full per-port discovery: status, detail, VLAN membership, learned MACs, LLDP neighbor, and optional PoE.",
		InputSchema: hostArgSchema(map[string]any{
			"port_id": map[string]any{"type": "string"},
		}),
	}, handlePortDiscover)

	r.register(domain.Tool{
		Name:        "aos.interfaces.discover",
		Description: "Chassis-wide port discovery, aggregating status, VLAN, MAC, LLDP, and (heuristically probed) PoE data.",
		InputSchema: hostArgSchema(map[string]any{
			"include_statistics": map[string]any{"type": "boolean"},
			"active_only":        map[string]any{"type": "boolean"},
		}),
	}, handleInterfacesDiscover)
}

var ifacePortVlanRe = regexp.MustCompile(`(?i)Vlan\s*:\s*(\d+)`)

func handlePortInfo(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump", "port_id")
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

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	res, toolErr := ec.run(ctx, fmt.Sprintf("show interfaces port %s", portID), defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	status := parse.ShowInterfacesStatus(res.Stdout)[portID]
	var vlan *int
	if m := ifacePortVlanRe.FindStringSubmatch(res.Stdout); m != nil {
		v, _ := strconv.Atoi(m[1])
		vlan = &v
	}

	data := map[string]any{
		"port_id":            portID,
		"admin_state":        status.AdminState,
		"oper_state":         status.OperState,
		"speed":              status.Speed,
		"duplex":             status.Duplex,
		"vlan":               vlan,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("%s: admin=%s oper=%s", portID, status.AdminState, status.OperState)),
	}, nil)
}

// portSlot returns the "chassis/slot" prefix of a "chassis/slot/port" id.
func portSlot(portID string) (string, bool) {
	parts := strings.Split(portID, "/")
	if len(parts) != 3 {
		return "", false
	}
	return parts[0] + "/" + parts[1], true
}

func handlePortDiscover(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump", "port_id")
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
	slot, ok := portSlot(portID)
	if !ok {
		return domain.Fail(call.Tool, domain.NewToolError(domain.ErrInvalidRequest, "port_id must be in chassis/slot/port form, e.g. 1/1/19"))
	}

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	statusRes, toolErr := ec.run(ctx, fmt.Sprintf("show interfaces %s status", portID), defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	detailRes, toolErr := ec.run(ctx, fmt.Sprintf("show interfaces %s", portID), defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	vlanRes, toolErr := ec.run(ctx, fmt.Sprintf("show vlan members port %s", portID), defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	macRes, toolErr := ec.run(ctx, fmt.Sprintf("show mac-learning port %s", portID), defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	lldpRes, toolErr := ec.run(ctx, fmt.Sprintf("show lldp port %s remote-system", portID), defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	status := parse.ShowInterfacesStatus(statusRes.Stdout)[portID]
	detail := parse.ShowInterfacesDetailed(detailRes.Stdout, portID)
	vlanMembers := parse.ShowVlanMembersPort(vlanRes.Stdout)
	macEntries := parse.ShowMacLearning(macRes.Stdout)[portID]
	lldpByPort := parse.ShowLLDPRemoteSystem(lldpRes.Stdout)

	var issues []string
	var poe *parse.PoEPort
	if poeRes, issue := ec.runOptional(ctx, fmt.Sprintf("show lanpower slot %s", slot), defaultCommandTimeout); issue == "" {
		ports, _ := parse.ShowLanPower(poeRes.Stdout)
		for _, p := range ports {
			if p.PortID == portID {
				pp := p
				poe = &pp
				break
			}
		}
	} else {
		issues = append(issues, issue)
	}

	var untagged *int
	var tagged []int
	var vlanStatus string
	for _, v := range vlanMembers {
		switch v.Type {
		case "untagged":
			id := v.VLANID
			untagged = &id
			vlanStatus = v.Status
		case "tagged":
			tagged = append(tagged, v.VLANID)
		}
	}

	var lldpNeighbor *parse.LLDPNeighbor
	if n, ok := lldpByPort[portID]; ok {
		lldpNeighbor = &n
	}

	data := map[string]any{
		"port": map[string]any{
			"port_id":        portID,
			"admin_state":    status.AdminState,
			"oper_state":     status.OperState,
			"speed":          status.Speed,
			"duplex":         status.Duplex,
			"interface_type": detail.InterfaceType,
			"sfp_type":       detail.SFPType,
			"mac_address":    detail.MACAddress,
			"statistics":     detail.Statistics,
			"vlan_untagged":  untagged,
			"vlan_tagged":    tagged,
			"vlan_status":    vlanStatus,
			"mac_addresses":  macEntries,
			"lldp_neighbor":  lldpNeighbor,
			"poe":            poe,
		},
		"commands_executed": ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("%s discovered: admin=%s oper=%s", portID, status.AdminState, status.OperState)),
	}, issues)
}

func handleInterfacesDiscover(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump", "include_statistics", "active_only")
	if aerr != nil {
		return domain.Fail(call.Tool, aerr)
	}
	host, port, username, cred, jump, err := baseDeviceArgs(a)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	includeStats, err := a.boolDefault("include_statistics", false)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	activeOnly, err := a.boolDefault("active_only", false)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	statusRes, toolErr := ec.run(ctx, "show interfaces status", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	vlanRes, toolErr := ec.run(ctx, "show vlan members", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	macRes, toolErr := ec.run(ctx, "show mac-learning", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	lldpRes, toolErr := ec.run(ctx, "show lldp remote-system", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}

	status := parse.ShowInterfacesStatus(statusRes.Stdout)
	vlan := parse.ShowVlanMembers(vlanRes.Stdout)
	mac := parse.ShowMacLearning(macRes.Stdout)
	lldp := parse.ShowLLDPRemoteSystem(lldpRes.Stdout)

	var issues []string
	detailed := map[string]parse.InterfaceDetail{}
	if includeStats {
		if detailRes, issue := ec.runOptional(ctx, "show interfaces", defaultCommandTimeout); issue == "" {
			detailed = parse.ShowInterfacesAllDetailed(detailRes.Stdout)
		} else {
			issues = append(issues, issue)
		}
	}

	// PoE probe: best-effort only. Not every chassis slot carries PoE
	// hardware, so the probe is swallowed on failure and the result is
	// kept only when the output actually looks like a lanpower table.
	poe := map[string]parse.PoEPort{}
	if poeRes, issue := ec.runOptional(ctx, "show lanpower slot 1/1", defaultCommandTimeout); issue == "" {
		if strings.Contains(strings.ToLower(poeRes.Stdout), "lanpower") {
			ports, _ := parse.ShowLanPower(poeRes.Stdout)
			poe = parse.PoEByPort(ports)
		}
	}

	aggregated := parse.AggregateInterfaceData(status, vlan, mac, lldp, poe, detailed)
	if activeOnly {
		var filtered []parse.AggregatedPort
		for _, p := range aggregated {
			if p.OperState == "up" {
				filtered = append(filtered, p)
			}
		}
		aggregated = filtered
	}

	data := map[string]any{
		"ports":              aggregated,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("%d ports discovered", len(aggregated))),
	}, issues)
}
