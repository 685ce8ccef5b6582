package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DHCPRelayInterface is one interface's relay configuration; it carries no
// statistics (relay counters are parsed by ShowDHCPRelayStatistics).
type DHCPRelayInterface struct {
	Interface        string
	AdminState       string
	OperState        string
	Servers          []string
	AgentInformation bool
}

var dhcpInterfaceRe = regexp.MustCompile(`(?i)Interface:\s*(\S+(?:\s+\d+)?)`)
var dhcpAdminStateRe = regexp.MustCompile(`(?i)State:\s*(enabled|disabled)`)
var dhcpOperStateRe = regexp.MustCompile(`(?i)State:\s*(up|down)`)
var dhcpServerRe = regexp.MustCompile(`(?i)Server:\s*(\d+\.\d+\.\d+\.\d+)`)

// ShowDHCPRelayInterface parses 'show ip dhcp relay interface' into one
// record per interface.
func ShowDHCPRelayInterface(output string) []DHCPRelayInterface {
	var out []DHCPRelayInterface
	var current *DHCPRelayInterface

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if m := dhcpInterfaceRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				out = append(out, *current)
			}
			current = &DHCPRelayInterface{Interface: m[1]}
			continue
		}
		if current == nil {
			continue
		}
		if strings.Contains(line, "Admin State:") || strings.Contains(line, "Administrative State:") {
			if m := dhcpAdminStateRe.FindStringSubmatch(line); m != nil {
				current.AdminState = strings.ToLower(m[1])
			}
		}
		if strings.Contains(line, "Oper State:") || strings.Contains(line, "Operational State:") {
			if m := dhcpOperStateRe.FindStringSubmatch(line); m != nil {
				current.OperState = strings.ToLower(m[1])
			}
		}
		if m := dhcpServerRe.FindStringSubmatch(line); m != nil {
			current.Servers = append(current.Servers, m[1])
		}
		if strings.Contains(line, "Agent Information:") || strings.Contains(line, "Option 82:") {
			if regexp.MustCompile(`(?i)enabled|yes`).MatchString(line) {
				current.AgentInformation = true
			}
		}
	}
	if current != nil {
		out = append(out, *current)
	}
	return out
}

// DHCPRelayGlobalStats is the process-wide packet counter set returned by
// ShowDHCPRelayStatistics.
type DHCPRelayGlobalStats struct {
	RequestsReceived  int
	RequestsForwarded int
	RequestsDropped   int
	RepliesReceived   int
	RepliesForwarded  int
	RepliesDropped    int
	TotalPackets      int
	Errors            int
}

var (
	dhcpClientTotalRe = regexp.MustCompile(`(?i)Reception From Client.*Total Count\s*=\s*(\d+)`)
	dhcpTxServerRe    = regexp.MustCompile(`(?i)Tx Server.*Total Count\s*=\s*(\d+)`)
	dhcpDropRe        = regexp.MustCompile(`(?i)(Forw Delay|Max Hops|Agent Info|Invalid Gateway).*Total Count\s*=\s*(\d+)`)
	dhcpReqRecvRe     = regexp.MustCompile(`(?i)Requests?\s+Received:\s*(\d+)`)
	dhcpReqFwdRe      = regexp.MustCompile(`(?i)Requests?\s+Forwarded:\s*(\d+)`)
	dhcpReqDropRe     = regexp.MustCompile(`(?i)Requests?\s+Dropped:\s*(\d+)`)
	dhcpRepRecvRe     = regexp.MustCompile(`(?i)Replies\s+Received:\s*(\d+)`)
	dhcpRepFwdRe      = regexp.MustCompile(`(?i)Replies\s+Forwarded:\s*(\d+)`)
	dhcpRepDropRe     = regexp.MustCompile(`(?i)Replies\s+Dropped:\s*(\d+)`)
	dhcpErrorsRe      = regexp.MustCompile(`(?i)Errors?:\s*(\d+)`)
)

// ShowDHCPRelayStatistics parses 'show ip dhcp relay statistics', supporting
// both the AOS counter-table phrasing and a plain labeled-field fallback.
func ShowDHCPRelayStatistics(output string) DHCPRelayGlobalStats {
	var s DHCPRelayGlobalStats

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if m := dhcpClientTotalRe.FindStringSubmatch(line); m != nil {
			s.RequestsReceived, _ = strconv.Atoi(m[1])
		}
		if m := dhcpTxServerRe.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			s.RequestsForwarded += n
		}
		if m := dhcpDropRe.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[2])
			if n > 0 {
				s.RequestsDropped += n
				s.Errors += n
			}
		}
		if m := dhcpReqRecvRe.FindStringSubmatch(line); m != nil {
			s.RequestsReceived, _ = strconv.Atoi(m[1])
		}
		if m := dhcpReqFwdRe.FindStringSubmatch(line); m != nil {
			s.RequestsForwarded, _ = strconv.Atoi(m[1])
		}
		if m := dhcpReqDropRe.FindStringSubmatch(line); m != nil {
			s.RequestsDropped, _ = strconv.Atoi(m[1])
		}
		if m := dhcpRepRecvRe.FindStringSubmatch(line); m != nil {
			s.RepliesReceived, _ = strconv.Atoi(m[1])
		}
		if m := dhcpRepFwdRe.FindStringSubmatch(line); m != nil {
			s.RepliesForwarded, _ = strconv.Atoi(m[1])
		}
		if m := dhcpRepDropRe.FindStringSubmatch(line); m != nil {
			s.RepliesDropped, _ = strconv.Atoi(m[1])
		}
		if m := dhcpErrorsRe.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			s.Errors += n
		}
	}

	s.TotalPackets = s.RequestsReceived + s.RepliesReceived
	return s
}

// AnalyzeDHCPRelay flags per-interface and global relay issues: admin-up
// but oper-down, no configured servers, and excessive drop rates.
func AnalyzeDHCPRelay(interfaces []DHCPRelayInterface, stats DHCPRelayGlobalStats) []string {
	var issues []string

	if len(interfaces) == 0 {
		return []string{"No DHCP relay interfaces configured"}
	}

	for _, iface := range interfaces {
		if iface.AdminState == "enabled" && iface.OperState == "down" {
			issues = append(issues, fmt.Sprintf("%s: DHCP relay enabled but interface down", iface.Interface))
		}
		if len(iface.Servers) == 0 {
			issues = append(issues, fmt.Sprintf("%s: No DHCP servers configured", iface.Interface))
		}
	}

	totalReq := stats.RequestsReceived
	totalDrop := stats.RequestsDropped + stats.RepliesDropped
	if totalReq > 0 {
		rate := float64(totalDrop) / float64(totalReq) * 100
		if rate > 5 {
			issues = append(issues, fmt.Sprintf("Global DHCP drop rate high: %.1f%%", rate))
		}
	}
	if stats.Errors > 0 {
		issues = append(issues, fmt.Sprintf("DHCP relay errors detected: %d", stats.Errors))
	}
	if totalReq > 100 && (stats.RequestsForwarded == 0 || stats.RepliesForwarded == 0) {
		issues = append(issues, "DHCP packets received but not forwarded - check server connectivity")
	}

	return issues
}
