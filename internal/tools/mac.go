package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

func registerMACTools(r *Registry) {
	r.register(domain.Tool{
		Name:        "aos.mac.lookup",
		Description: "Find which port(s) a MAC address was learned on, optionally scoped to a port or VLAN.",
		InputSchema: hostArgSchema(map[string]any{
			"mac_address": map[string]any{"type": "string"},
			"port_id":     map[string]any{"type": "string"},
			"vlan_id":     map[string]any{"type": "integer"},
		}),
	}, handleMACLookup)
}

var macSepRe = regexp.MustCompile(`[.:\-]`)

// normalizeMAC lowercases and reduces any of the common AOS MAC separator
// styles (colons, dots, dashes) to colon-separated octets.
func normalizeMAC(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = macSepRe.ReplaceAllString(s, "")
	var out []byte
	for i := 0; i < len(s); i += 2 {
		if i > 0 {
			out = append(out, ':')
		}
		end := i + 2
		if end > len(s) {
			end = len(s)
		}
		out = append(out, s[i:end]...)
	}
	return string(out)
}

func handleMACLookup(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	a, aerr := newArgs(call.Args, "host", "port", "username", "password", "jump", "mac_address", "port_id", "vlan_id")
	if aerr != nil {
		return domain.Fail(call.Tool, aerr)
	}
	host, port, username, cred, jump, err := baseDeviceArgs(a)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	macAddress, err := a.str("mac_address", false)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	portID, err := a.str("port_id", false)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}
	vlanID, err := a.intDefault("vlan_id", 0)
	if err != nil {
		return domain.Fail(call.Tool, err)
	}

	device := buildDevice(host, port, username, cred, jump)
	ec := newExecCtx(svc, device)

	command := "show mac-learning"
	switch {
	case portID != "":
		command = fmt.Sprintf("show mac-learning port %s", portID)
	case vlanID != 0:
		command = fmt.Sprintf("show mac-learning domain vlan %d", vlanID)
	}

	res, toolErr := ec.run(ctx, command, defaultCommandTimeout)
	if toolErr != nil {
		return domain.Fail(call.Tool, toolErr)
	}
	byPort := parse.ShowMacLearning(res.Stdout)

	var wantMAC string
	if macAddress != "" {
		wantMAC = normalizeMAC(macAddress)
	}

	seen := map[string]bool{}
	type match struct {
		PortID string `json:"port_id"`
		MAC    string `json:"mac"`
		VLANID int    `json:"vlan_id"`
	}
	var matches []match
	for p, entries := range byPort {
		for _, e := range entries {
			norm := normalizeMAC(e.MAC)
			if wantMAC != "" && norm != wantMAC {
				continue
			}
			key := p + "|" + norm + "|" + fmt.Sprint(e.VLANID)
			if seen[key] {
				continue
			}
			seen[key] = true
			matches = append(matches, match{PortID: p, MAC: norm, VLANID: e.VLANID})
		}
	}

	data := map[string]any{
		"matches":            matches,
		"commands_executed":  ec.commands,
	}
	return domain.OK(call.Tool, data, []domain.ContentBlock{
		textBlock(fmt.Sprintf("%d match(es) found", len(matches))),
	}, nil)
}
