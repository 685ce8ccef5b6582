package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LinkAgg is one aggregate group from 'show linkagg'.
type LinkAgg struct {
	AggID          string
	Name           string
	Size           int
	AdminState     string
	OperState      string
	Type           string // lacp | static
	HashAlgorithm  string
	AttachedPorts  int
	SelectedPorts  int
}

var (
	linkaggOS6860Re = regexp.MustCompile(`^\s*(\d+)\s+(\S+)\s+\d+\s+(\d+)\s+(ENABLED|DISABLED)\s+(UP|DOWN)\s+(\d+)\s+(\d+)`)
	linkaggLegacyRe = regexp.MustCompile(`(?i)(\d+)\s+(\S+)\s+(\d+)\s+(enabled|disabled)\s+(up|down)\s+(lacp|static)\s+(\S+)`)
)

// ShowLinkAgg parses 'show linkagg', recognizing both the OS6860 SNMP-Id
// table shape and the legacy admin/oper/type/hash shape.
func ShowLinkAgg(output string) (lags []LinkAgg, issues []string) {
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if m := linkaggOS6860Re.FindStringSubmatch(line); m != nil {
			size, _ := strconv.Atoi(m[3])
			attached, _ := strconv.Atoi(m[6])
			selected, _ := strconv.Atoi(m[7])
			name := m[2]
			if name == "---" {
				name = "agg" + m[1]
			}
			lagType := "static"
			if strings.Contains(strings.ToLower(name), "dynamic") {
				lagType = "lacp"
			}
			admin := strings.ToLower(m[4])
			oper := strings.ToLower(m[5])
			lags = append(lags, LinkAgg{
				AggID: m[1], Name: name, Size: size,
				AdminState: admin, OperState: oper, Type: lagType,
				HashAlgorithm: "unknown", AttachedPorts: attached, SelectedPorts: selected,
			})
			if admin == "enabled" && oper == "down" {
				issues = append(issues, fmt.Sprintf("LAG %s (%s): administratively enabled but operationally down", m[1], name))
			}
			if selected < attached {
				issues = append(issues, fmt.Sprintf("LAG %s (%s): %d port(s) attached but not selected", m[1], name, attached-selected))
			}
			continue
		}

		if m := linkaggLegacyRe.FindStringSubmatch(line); m != nil {
			size, _ := strconv.Atoi(m[3])
			name := m[2]
			if name == "---" {
				name = "agg" + m[1]
			}
			admin := strings.ToLower(m[4])
			oper := strings.ToLower(m[5])
			lags = append(lags, LinkAgg{
				AggID: m[1], Name: name, Size: size,
				AdminState: admin, OperState: oper, Type: strings.ToLower(m[6]),
				HashAlgorithm: m[7],
			})
			if m[4] == "enabled" && oper == "down" {
				issues = append(issues, fmt.Sprintf("LAG %s (%s): administratively enabled but operationally down", m[1], name))
			}
		}
	}
	return lags, issues
}

// LACPAggregatePort is one LACP partner-port row under an aggregate.
type LACPAggregatePort struct {
	Port          string
	PartnerSystem string
	PartnerPort   string
}

// LACPAggregate groups LACP partner ports by aggregate ID.
type LACPAggregate struct {
	AggID string
	Ports []LACPAggregatePort
}

// LACPStatus is the result of ShowLACP.
type LACPStatus struct {
	Enabled        bool
	SystemID       string
	SystemPriority int
	Aggregates     []LACPAggregate
}

var (
	lacpSystemIDRe  = regexp.MustCompile(`:\s*([0-9a-fA-F:]{17})`)
	lacpPriorityRe  = regexp.MustCompile(`:\s*(\d+)`)
	lacpEnabledRe   = regexp.MustCompile(`(?i)LACP\s+(Enabled|Active)`)
	lacpAggregateRe = regexp.MustCompile(`(\d+)\s+(\d+/\d+/\d+)\s+([0-9a-fA-F:]{17})\s+(\S+)`)
)

// ShowLACP parses 'show lacp'.
func ShowLACP(output string) LACPStatus {
	var s LACPStatus
	byID := map[string]*LACPAggregate{}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.Contains(line, "System ID:") || strings.Contains(line, "System MAC:") {
			if m := lacpSystemIDRe.FindStringSubmatch(line); m != nil {
				s.SystemID = m[1]
			}
		}
		if strings.Contains(line, "System Priority:") {
			if m := lacpPriorityRe.FindStringSubmatch(line); m != nil {
				s.SystemPriority, _ = strconv.Atoi(m[1])
			}
		}
		if lacpEnabledRe.MatchString(line) {
			s.Enabled = true
		}
		if m := lacpAggregateRe.FindStringSubmatch(line); m != nil {
			aggID := m[1]
			agg, ok := byID[aggID]
			if !ok {
				agg = &LACPAggregate{AggID: aggID}
				byID[aggID] = agg
				s.Aggregates = append(s.Aggregates, *agg)
			}
			entry := LACPAggregatePort{Port: m[2], PartnerSystem: m[3], PartnerPort: m[4]}
			agg.Ports = append(agg.Ports, entry)
			for i := range s.Aggregates {
				if s.Aggregates[i].AggID == aggID {
					s.Aggregates[i].Ports = agg.Ports
				}
			}
		}
	}
	return s
}

// AnalyzeLACPIssues cross-checks LACP protocol status against configured
// link aggregates.
func AnalyzeLACPIssues(lacp LACPStatus, lags []LinkAgg) []string {
	var issues []string

	hasLACPLag := false
	for _, l := range lags {
		if l.Type == "lacp" {
			hasLACPLag = true
			break
		}
	}
	if hasLACPLag && !lacp.Enabled {
		issues = append(issues, "LACP LAGs configured but LACP protocol not enabled")
	}

	for _, l := range lags {
		if l.OperState == "down" && l.AdminState == "enabled" {
			issues = append(issues, fmt.Sprintf("LAG %s (%s): no active members", l.AggID, l.Name))
		}
	}

	return issues
}
