package parse

import (
	"strconv"
	"strings"
)

// SpantreeMode is the result of ShowSpantreeMode.
type SpantreeMode struct {
	Mode                  string
	Protocol              string
	PathCostMode          string
	AutoVLANContainment   string
}

// ShowSpantreeMode parses 'show spantree mode'.
func ShowSpantreeMode(output string) SpantreeMode {
	var m SpantreeMode
	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)
		if !strings.Contains(line, ":") {
			continue
		}
		switch {
		case strings.Contains(line, "Current Running Mode"):
			m.Mode = valueAfterColon(line)
		case strings.Contains(line, "Current Protocol"):
			m.Protocol = valueAfterColon(line)
		case strings.Contains(line, "Path Cost Mode"):
			m.PathCostMode = valueAfterColon(line)
		case strings.Contains(line, "Auto Vlan Containment"):
			m.AutoVLANContainment = strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
		}
	}
	return m
}

func valueAfterColon(line string) string {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(parts[1]), ",")
}

// SpantreeCIST is the result of ShowSpantreeCIST.
type SpantreeCIST struct {
	STPStatus          string
	Protocol           string
	Mode               string
	Priority           string
	BridgeID           string
	CSTDesignatedRoot  string
	CostToCSTRoot      string
	DesignatedRoot     string
	CostToRoot         string
	RootPort           string
	TopologyChanges    string
	TopologyAge        string
	LastTCPort         string
	LastTCBridge       string
	MaxAge             string
	ForwardDelay       string
	HelloTime          string
}

// ShowSpantreeCIST parses 'show spantree cist'.
func ShowSpantreeCIST(output string) SpantreeCIST {
	var c SpantreeCIST
	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)
		if !strings.Contains(line, ":") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimRight(strings.TrimSpace(parts[1]), ",")

		switch {
		case strings.Contains(key, "Spanning Tree Status"):
			c.STPStatus = value
		case key == "Protocol":
			c.Protocol = value
		case key == "mode":
			c.Mode = value
		case key == "Priority":
			c.Priority = value
		case key == "Bridge ID":
			c.BridgeID = value
		case key == "CST Designated Root":
			c.CSTDesignatedRoot = value
		case key == "Cost to CST Root":
			c.CostToCSTRoot = value
		case key == "Designated Root":
			c.DesignatedRoot = value
		case key == "Cost to Root Bridge":
			c.CostToRoot = value
		case key == "Root Port":
			c.RootPort = value
		case key == "Topology Changes":
			c.TopologyChanges = value
		case key == "Topology age":
			c.TopologyAge = value
		case key == "Last TC Rcvd Port":
			c.LastTCPort = value
		case key == "Last TC Rcvd Bridge":
			c.LastTCBridge = value
		case strings.Contains(key, "Max Age") && strings.Contains(line, "="):
			c.MaxAge = strings.TrimRight(strings.TrimSpace(strings.SplitN(value, "=", 2)[1]), ",")
		case strings.Contains(key, "Forward Delay") && strings.Contains(line, "="):
			c.ForwardDelay = strings.TrimRight(strings.TrimSpace(strings.SplitN(value, "=", 2)[1]), ",")
		case strings.Contains(key, "Hello Time") && strings.Contains(line, "="):
			c.HelloTime = strings.TrimSpace(strings.SplitN(value, "=", 2)[1])
		}
	}
	return c
}

// SpantreePort is one row of 'show spantree ports'.
type SpantreePort struct {
	MSTI      string
	PortID    string
	OperState string
	PathCost  string
	Role      string
	LoopGuard string
}

// ShowSpantreePorts parses 'show spantree ports'.
func ShowSpantreePorts(output string) []SpantreePort {
	var out []SpantreePort
	inData := false
	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)

		if strings.Contains(line, "Msti") && strings.Contains(line, "Port") && strings.Contains(line, "Oper Status") {
			inData = true
			continue
		}
		if !inData || line == "" || strings.HasPrefix(line, "---") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 6 {
			continue
		}
		if parts[0] == "Msti" || parts[1] == "Port" {
			continue
		}
		out = append(out, SpantreePort{
			MSTI: parts[0], PortID: parts[1], OperState: parts[2],
			PathCost: parts[3], Role: parts[4], LoopGuard: parts[5],
		})
	}
	return out
}

// SpantreeVLAN is one row of 'show spantree vlan'.
type SpantreeVLAN struct {
	VLANID   int
	Status   string
	Protocol string
	Priority string
}

// ShowSpantreeVLAN parses 'show spantree vlan'.
func ShowSpantreeVLAN(output string) []SpantreeVLAN {
	var out []SpantreeVLAN
	inData := false
	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)

		if strings.Contains(line, "Vlan") && strings.Contains(line, "STP Status") && strings.Contains(line, "Protocol") {
			inData = true
			continue
		}
		if !inData || line == "" || strings.HasPrefix(line, "---") {
			continue
		}
		if strings.Contains(line, "Spanning Tree") || strings.Contains(line, "Inactive") || strings.Contains(line, "Path Cost Mode") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 4 || parts[0] == "Vlan" {
			continue
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		out = append(out, SpantreeVLAN{VLANID: id, Status: parts[1], Protocol: parts[2], Priority: parts[3]})
	}
	return out
}
