package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// PortStatus is one row of 'show interfaces status'.
type PortStatus struct {
	PortID     string
	AdminState string
	AutoNeg    bool
	Speed      string
	Duplex     string
	OperState  string
}

var portStatusRe = regexp.MustCompile(`^\s*(\d+/\d+/\d+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)`)

// ShowInterfacesStatus parses 'show interfaces status', keyed by port ID.
func ShowInterfacesStatus(output string) map[string]PortStatus {
	out := make(map[string]PortStatus)
	inData := false
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.Contains(line, "-------") {
			inData = true
			continue
		}
		if !inData {
			continue
		}
		m := portStatusRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		portID, admin, autoNeg, speed, duplex := m[1], m[2], m[3], m[4], m[5]

		st := PortStatus{
			PortID:     portID,
			AdminState: "disabled",
			AutoNeg:    autoNeg == "en",
			OperState:  "down",
		}
		if admin == "en" {
			st.AdminState = "enabled"
		}
		if speed != "-" {
			st.OperState = "up"
			if _, err := strconv.Atoi(speed); err == nil {
				st.Speed = speed + "Mbps"
			} else {
				st.Speed = speed
			}
		}
		if duplex != "-" {
			st.Duplex = duplex
		}
		out[portID] = st
	}
	return out
}

// InterfaceDetail is the result of ShowInterfacesDetailed: SFP/MAC/stats for
// one port.
type InterfaceDetail struct {
	PortID         string
	InterfaceType  string
	SFPType        string
	MACAddress     string
	Statistics     map[string]int64
}

var (
	ifaceTypeRe = regexp.MustCompile(`(?i)Interface Type\s*:\s*(\w+)`)
	sfpRe       = regexp.MustCompile(`(?i)SFP/XFP\s*:\s*(.+?),`)
	macRe       = regexp.MustCompile(`(?i)MAC address\s*:\s*([0-9a-f:]+)`)
	chassisHdrRe = regexp.MustCompile(`Chassis/Slot/Port\s*:\s*(\d+/\d+/\d+)`)
)

type statPattern struct {
	key string
	re  *regexp.Regexp
}

var detailStatPatterns = []statPattern{
	{"rx_bytes", regexp.MustCompile(`Bytes Received\s*:\s*(\d+)`)},
	{"rx_unicast", regexp.MustCompile(`(?s)Rx.*?Unicast Frames\s*:\s*(\d+)`)},
	{"rx_broadcast", regexp.MustCompile(`(?s)Rx.*?Broadcast Frames:\s*(\d+)`)},
	{"rx_multicast", regexp.MustCompile(`(?s)Rx.*?M-cast Frames\s*:\s*(\d+)`)},
	{"rx_errors", regexp.MustCompile(`(?s)Rx.*?Error Frames\s*:\s*(\d+)`)},
	{"tx_bytes", regexp.MustCompile(`Bytes Xmitted\s*:\s*(\d+)`)},
	{"tx_unicast", regexp.MustCompile(`(?s)Tx.*?Unicast Frames\s*:\s*(\d+)`)},
	{"tx_broadcast", regexp.MustCompile(`(?s)Tx.*?Broadcast Frames:\s*(\d+)`)},
	{"tx_multicast", regexp.MustCompile(`(?s)Tx.*?M-cast Frames\s*:\s*(\d+)`)},
	{"tx_errors", regexp.MustCompile(`(?s)Tx.*?Error Frames\s*:\s*(\d+)`)},
}

// ShowInterfacesDetailed parses a single-port 'show interfaces <port>'
// section: type, optics, MAC, and packet counters.
func ShowInterfacesDetailed(output, portID string) InterfaceDetail {
	d := InterfaceDetail{PortID: portID}
	if m := ifaceTypeRe.FindStringSubmatch(output); m != nil {
		d.InterfaceType = m[1]
	}
	if m := sfpRe.FindStringSubmatch(output); m != nil {
		if v := strings.TrimSpace(m[1]); v != "N/A" {
			d.SFPType = v
		}
	}
	if m := macRe.FindStringSubmatch(output); m != nil {
		d.MACAddress = m[1]
	}
	for _, p := range detailStatPatterns {
		if m := p.re.FindStringSubmatch(output); m != nil {
			if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				if d.Statistics == nil {
					d.Statistics = make(map[string]int64)
				}
				d.Statistics[p.key] = n
			}
		}
	}
	return d
}

// ShowInterfacesAllDetailed splits a whole-chassis 'show interfaces' dump
// into one detailed record per port, on the "Chassis/Slot/Port" header.
func ShowInterfacesAllDetailed(output string) map[string]InterfaceDetail {
	out := make(map[string]InterfaceDetail)
	sections := splitBeforeEach(output, "Chassis/Slot/Port")
	for _, section := range sections {
		if strings.TrimSpace(section) == "" || !strings.Contains(section, "Chassis/Slot/Port") {
			continue
		}
		m := chassisHdrRe.FindStringSubmatch(section)
		if m == nil {
			continue
		}
		portID := m[1]
		out[portID] = ShowInterfacesDetailed(section, portID)
	}
	return out
}

// splitBeforeEach splits s into chunks, each starting at an occurrence of
// marker (the first chunk may lack it if text precedes the first marker).
func splitBeforeEach(s, marker string) []string {
	var chunks []string
	rest := s
	for {
		idx := strings.Index(rest, marker)
		if idx < 0 {
			chunks = append(chunks, rest)
			break
		}
		if idx > 0 {
			chunks = append(chunks, rest[:idx])
		}
		next := strings.Index(rest[idx+len(marker):], marker)
		if next < 0 {
			chunks = append(chunks, rest[idx:])
			break
		}
		chunks = append(chunks, rest[idx:idx+len(marker)+next])
		rest = rest[idx+len(marker)+next:]
	}
	return chunks
}

// VLANMembership is one (vlan, type, status) tuple for a port.
type VLANMembership struct {
	VLANID int
	Type   string // tagged | untagged
	Status string // forwarding | inactive
}

var vlanMemberRe = regexp.MustCompile(`^\s*(\d+)\s+(\d+/\d+/\d+)\s+(\S+)\s+(\S+)`)

// ShowVlanMembers parses 'show vlan members', keyed by port ID.
func ShowVlanMembers(output string) map[string][]VLANMembership {
	out := make(map[string][]VLANMembership)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "vlan") || strings.Contains(line, "----") {
			continue
		}
		m := vlanMemberRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		vlanID, _ := strconv.Atoi(m[1])
		portID := m[2]
		out[portID] = append(out[portID], VLANMembership{VLANID: vlanID, Type: m[3], Status: m[4]})
	}
	return out
}

var vlanMemberPortRe = regexp.MustCompile(`^\s*(\d+)\s+(\S+)\s+(\S+)`)

// ShowVlanMembersPort parses 'show vlan members port <id>' (no port column).
func ShowVlanMembersPort(output string) []VLANMembership {
	var out []VLANMembership
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "vlan") || strings.Contains(line, "----") {
			continue
		}
		m := vlanMemberPortRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		vlanID, _ := strconv.Atoi(m[1])
		out = append(out, VLANMembership{VLANID: vlanID, Type: m[2], Status: m[3]})
	}
	return out
}

// MACEntry is one learned MAC address on a port.
type MACEntry struct {
	MAC    string
	VLANID int
}

var macLearningRe = regexp.MustCompile(`(?i)VLAN\s+(\d+)\s+([0-9a-f:]+)\s+\S+\s+\S+\s+(\d+/\d+/\d+)`)

// ShowMacLearning parses 'show mac-learning', keyed by port ID.
func ShowMacLearning(output string) map[string][]MACEntry {
	out := make(map[string][]MACEntry)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.Contains(line, "Legend:") || strings.Contains(line, "Domain") ||
			strings.Contains(line, "----") || strings.Contains(line, "Total number") {
			continue
		}
		m := macLearningRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		vlanID, _ := strconv.Atoi(m[1])
		portID := m[3]
		out[portID] = append(out[portID], MACEntry{MAC: m[2], VLANID: vlanID})
	}
	return out
}

// AggregatedPort is one fully-joined port record produced by
// AggregateInterfaceData: status as the anchor, everything else optional.
type AggregatedPort struct {
	PortID        string
	AdminState    string
	OperState     string
	Speed         string
	Duplex        string
	AutoNeg       bool
	InterfaceType string
	SFPType       string
	MACAddress    string
	VLANUntagged  *int
	VLANTagged    []int
	VLANStatus    string
	MACAddresses  []MACEntry
	LLDPNeighbor  *LLDPNeighbor
	PoE           *AggregatedPoE
	Statistics    map[string]int64
}

// AggregatedPoE is the PoE view folded into AggregateInterfaceData; it
// mirrors the subset of PoEPort the discovery tools expose per-port.
type AggregatedPoE struct {
	Enabled      bool
	Status       string
	PowerUsedMW  int
	MaxPowerMW   int
	DeviceClass  string
	Priority     string
}

// AggregateInterfaceData outer-left-joins status_data (the anchor) with
// vlan/mac/lldp/poe/detailed maps keyed by port ID, matching the original
// aggregate_interface_data join order and precedence.
func AggregateInterfaceData(
	status map[string]PortStatus,
	vlan map[string][]VLANMembership,
	mac map[string][]MACEntry,
	lldp map[string]LLDPNeighbor,
	poe map[string]PoEPort,
	detailed map[string]InterfaceDetail,
) []AggregatedPort {
	var out []AggregatedPort
	for portID, st := range status {
		p := AggregatedPort{
			PortID:     portID,
			AdminState: st.AdminState,
			OperState:  st.OperState,
			Speed:      st.Speed,
			Duplex:     st.Duplex,
			AutoNeg:    st.AutoNeg,
		}
		if det, ok := detailed[portID]; ok {
			p.InterfaceType = det.InterfaceType
			p.SFPType = det.SFPType
			p.MACAddress = det.MACAddress
			if len(det.Statistics) > 0 {
				p.Statistics = det.Statistics
			}
		}
		for _, v := range vlan[portID] {
			switch v.Type {
			case "untagged":
				id := v.VLANID
				p.VLANUntagged = &id
				p.VLANStatus = v.Status
			case "tagged":
				p.VLANTagged = append(p.VLANTagged, v.VLANID)
			}
		}
		p.MACAddresses = mac[portID]
		if n, ok := lldp[portID]; ok {
			p.LLDPNeighbor = &n
		}
		if pp, ok := poe[portID]; ok {
			p.PoE = &AggregatedPoE{
				Enabled:     pp.AdminState == "ON",
				Status:      pp.Status,
				PowerUsedMW: pp.ActualUsedMW,
				MaxPowerMW:  pp.MaxPowerMW,
				DeviceClass: pp.Class,
				Priority:    pp.Priority,
			}
		}
		out = append(out, p)
	}
	return out
}
