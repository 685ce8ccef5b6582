package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerRoutingTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.routing.audit",
		Description: "Audit VRFs, OSPF interface/neighbor/area state, and (optionally) the routing table.",
		InputSchema: hostArgSchema(map[string]any{
			"vrf":             map[string]any{"type": "string", "description": "limit the audit to a single VRF name"},
			"include_routes":  map[string]any{"type": "boolean"},
			"route_limit":     map[string]any{"type": "integer"},
			"protocol_filter": map[string]any{"type": "string"},
		}),
	}, handleRoutingAudit)
}

type vrfOSPFView struct {
	VRF        string                `json:"vrf"`
	Areas      []parse.OSPFArea      `json:"areas"`
	Interfaces []parse.OSPFInterface `json:"interfaces"`
	Neighbors  []parse.OSPFNeighbor  `json:"neighbors"`
}

func vrfSuffix(name string) string {
	if name == "" || strings.EqualFold(name, "default") {
		return ""
	}
	return " -vrf " + name
}

func handleRoutingAudit(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump",
		"vrf", "include_routes", "route_limit", "protocol_filter")
	if aerr != nil {
		return domain.Fail(call.Tool, aerr)
	}
	host, port, username, cred, jump, err := baseDeviceArgs(a)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	vrfFilter, err := a.str("vrf", false)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	includeRoutes, err := a.boolDefault("include_routes", false)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	routeLimit, err := a.intDefault("route_limit", 200)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	protocolFilter, err := a.str("protocol_filter", false)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	vrfRes, toolErr := ec.run(ctx, "show vrf", defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	vrfs := parse.ShowVRF(vrfRes.Stdout)

	var issues []string
	var ospfViews []vrfOSPFView
	for _, v := range vrfs {
		if vrfFilter != "" && !strings.EqualFold(v.Name, vrfFilter) {
			continue
		}
		hasOSPF := false
		for _, p := range v.Protocols {
			if strings.EqualFold(p, "ospf") {
				hasOSPF = true
				break
			}
		}
		if !hasOSPF {
			continue
		}
		suffix := vrfSuffix(v.Name)
		view := vrfOSPFView{VRF: v.Name}

		if res, issue := ec.runOptional(ctx, "show ip ospf area"+suffix, defaultCommandTimeout); issue == "" {
			view.Areas = parse.ShowIPOSPFArea(res.Stdout)
			for _, area := range view.Areas {
				if area.OperState != "" && !strings.EqualFold(area.OperState, "enabled") && !strings.EqualFold(area.OperState, "active") {
					issues = append(issues, fmt.Sprintf("VRF %s area %s: operational state %s", v.Name, area.AreaID, area.OperState))
				}
			}
		} else {
			issues = append(issues, issue)
		}

		if res, issue := ec.runOptional(ctx, "show ip ospf interface"+suffix, defaultCommandTimeout); issue == "" {
			view.Interfaces = parse.ShowIPOSPFInterface(res.Stdout)
			for _, iface := range view.Interfaces {
				if !strings.EqualFold(iface.State, "dr") && !strings.EqualFold(iface.State, "bdr") &&
					!strings.EqualFold(iface.State, "point-to-point") && !strings.EqualFold(iface.OperState, "up") {
					issues = append(issues, fmt.Sprintf("VRF %s OSPF interface %s: operationally %s", v.Name, iface.Interface, iface.OperState))
				}
			}
		} else {
			issues = append(issues, issue)
		}

		if res, issue := ec.runOptional(ctx, "show ip ospf neighbor"+suffix, defaultCommandTimeout); issue == "" {
			view.Neighbors = parse.ShowIPOSPFNeighbor(res.Stdout)
			for _, n := range view.Neighbors {
				if !strings.EqualFold(n.State, "full") {
					issues = append(issues, fmt.Sprintf("VRF %s OSPF neighbor %s (%s): state %s", v.Name, n.RouterID, n.Address, n.State))
				}
			}
		} else {
			issues = append(issues, issue)
		}

		ospfViews = append(ospfViews, view)
	}

	var ipInterfaces []parse.IPInterface
	if res, issue := ec.runOptional(ctx, "show ip interface", defaultCommandTimeout); issue == "" {
		ipInterfaces = parse.ShowIPInterface(res.Stdout)
	} else {
		issues = append(issues, issue)
	}

	var routes *parse.IPRoutesResult
	var staticRoutes []parse.StaticRoute
	if includeRoutes {
		if res, issue := ec.runOptional(ctx, "show ip routes", defaultCommandTimeout); issue == "" {
			r := parse.ShowIPRoutes(res.Stdout, routeLimit, protocolFilter)
			routes = &r
		} else {
			issues = append(issues, issue)
		}
		if res, issue := ec.runOptional(ctx, "show ip static-routes", defaultCommandTimeout); issue == "" {
			staticRoutes = parse.ShowIPStaticRoutes(res.Stdout)
		} else {
			issues = append(issues, issue)
		}
	}

	data := map[string]any{
		"vrfs":               vrfs,
		"ospf":               ospfViews,
		"ip_interfaces":      ipInterfaces,
		"routes":             routes,
		"static_routes":      staticRoutes,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("%d VRFs audited, %d OSPF issues flagged", len(vrfs), len(issues))),
	}, issues)
}
