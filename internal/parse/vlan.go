package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// VLAN is one row of 'show vlan'.
type VLAN struct {
	VLANID     int
	Name       string
	Type       string
	AdminState string // Ena | Dis
	OperState  string
	IPRouting  string
	MTU        int
}

var vlanRowRe = regexp.MustCompile(`^\s*(\d+)\s+(\w+)\s+(Ena|Dis)\s+(Ena|Dis)\s+(Ena|Dis)\s+(\d+)\s+(.*)$`)

// ShowVlan parses 'show vlan'.
func ShowVlan(output string) []VLAN {
	var out []VLAN
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "vlan") && strings.Contains(lower, "type") {
			continue
		}
		if strings.Contains(line, "----") || strings.TrimSpace(line) == "" {
			continue
		}
		m := vlanRowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, _ := strconv.Atoi(m[1])
		mtu, _ := strconv.Atoi(m[6])
		out = append(out, VLAN{
			VLANID:     id,
			Type:       m[2],
			AdminState: m[3],
			OperState:  m[4],
			IPRouting:  m[5],
			MTU:        mtu,
			Name:       strings.TrimSpace(m[7]),
		})
	}
	return out
}

// VLANDetail is the result of ShowVlanDetail: 'show vlan <id>'.
type VLANDetail struct {
	Name          string
	Type          string
	AdminState    string
	OperState     string
	IPRouting     string
	MTU           int
	MACTunneling  string
}

// ShowVlanDetail parses 'show vlan <id>' key:value output.
func ShowVlanDetail(output string) VLANDetail {
	var d VLANDetail
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if !strings.Contains(line, ":") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimRight(strings.TrimSpace(parts[1]), ",")

		switch key {
		case "Name":
			d.Name = value
		case "Type":
			d.Type = value
		case "Administrative State":
			d.AdminState = value
		case "Operational State":
			d.OperState = value
		case "IP Routing":
			d.IPRouting = value
		case "IP MTU":
			if n, err := strconv.Atoi(value); err == nil {
				d.MTU = n
			}
		case "MAC Tunneling":
			d.MACTunneling = value
		}
	}
	return d
}

// VLANSummary is the aggregate statistics half of AnalyzeVlanConfig.
type VLANSummary struct {
	Total         int
	Enabled       int
	Disabled      int
	Operational   int
	Down          int
	WithIPRouting int
	StdVLANs      int
	VCMVLANs      int
}

var suspiciousVLANNameKeywords = []string{"test", "temp", "old", "unused", "ne pas", "poubelle", "toto"}

// AnalyzeVlanConfig tallies state counters across vlans and flags the same
// heuristics as the source: enabled-but-down, a still-enabled default VLAN
// 1, and suspicious/placeholder names.
func AnalyzeVlanConfig(vlans []VLAN) (VLANSummary, []string) {
	summary := VLANSummary{Total: len(vlans)}
	var issues []string

	for _, v := range vlans {
		if v.AdminState == "Ena" {
			summary.Enabled++
		} else {
			summary.Disabled++
		}
		if v.OperState == "Ena" {
			summary.Operational++
		} else {
			summary.Down++
		}
		if v.IPRouting == "Ena" {
			summary.WithIPRouting++
		}
		switch v.Type {
		case "std":
			summary.StdVLANs++
		case "vcm":
			summary.VCMVLANs++
		}

		if v.AdminState == "Ena" && v.OperState == "Dis" {
			issues = append(issues, fmt.Sprintf("VLAN %d (%s): Enabled but operationally down", v.VLANID, v.Name))
		}
		if v.VLANID == 1 && v.AdminState == "Ena" {
			issues = append(issues, "VLAN 1: Default VLAN is enabled - consider disabling if unused")
		}
		lowerName := strings.ToLower(v.Name)
		for _, kw := range suspiciousVLANNameKeywords {
			if strings.Contains(lowerName, kw) {
				issues = append(issues, fmt.Sprintf("VLAN %d (%s): Suspicious name suggests temporary/test VLAN", v.VLANID, v.Name))
				break
			}
		}
	}

	return summary, issues
}
