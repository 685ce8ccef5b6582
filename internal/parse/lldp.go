package parse

import (
	"regexp"
	"strings"
)

// LLDPNeighbor is one remote-system record keyed by local port. Field set
// matches the richer of the two duplicated source parsers (capabilities
// added from the port-keyed variant; header/value handling from the
// dataclass-based variant, which tolerates both the AOS 5 and AOS 8+ header
// shapes).
type LLDPNeighbor struct {
	LocalPort          string
	ChassisID          string
	PortID             string
	PortDescription    string
	SystemName         string
	SystemDescription  string
	ManagementIP       string
	Capabilities       string
}

var (
	lldpPortHeaderRe = regexp.MustCompile(`^Remote LLDP(?:\s+\S+)*\s+Agents on Local\s+(?:Slot/Port:\s*|Port\s+)([0-9]+(?:/[0-9]+)+)\s*[:,]?\s*$`)
	lldpChassisPortRe = regexp.MustCompile(`^\s*Chassis\s+([^,]+),\s*Port\s+(.+):\s*$`)
	lldpKVRe          = regexp.MustCompile(`^\s*([A-Za-z0-9 /_-]+?)\s*=\s*(.*?),?\s*$`)
	lldpIPv4Re        = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
)

// ShowLLDPRemoteSystem parses 'show lldp remote-system', keyed by local
// port ID.
func ShowLLDPRemoteSystem(output string) map[string]LLDPNeighbor {
	out := make(map[string]LLDPNeighbor)
	var current *LLDPNeighbor

	commit := func() {
		if current != nil {
			out[current.LocalPort] = *current
		}
	}

	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimRight(raw, "\r\n")

		if m := lldpPortHeaderRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			commit()
			current = &LLDPNeighbor{LocalPort: m[1]}
			continue
		}
		if current == nil {
			continue
		}

		if m := lldpChassisPortRe.FindStringSubmatch(line); m != nil {
			current.ChassisID = strings.TrimSpace(m[1])
			current.PortID = strings.TrimSpace(m[2])
			continue
		}

		m := lldpKVRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := strings.ToLower(collapseSpaces(strings.TrimSpace(m[1])))
		value := strings.Trim(strings.TrimSpace(m[2]), `"`)
		if value == "(null)" {
			value = ""
		}

		switch {
		case strings.HasPrefix(key, "chassis id") && !strings.Contains(key, "subtype"):
			current.ChassisID = value
		case strings.HasPrefix(key, "port id") && !strings.Contains(key, "subtype"):
			current.PortID = value
		case strings.HasPrefix(key, "port description"):
			current.PortDescription = value
		case strings.HasPrefix(key, "system name"):
			current.SystemName = value
		case strings.HasPrefix(key, "system description"):
			current.SystemDescription = value
		case strings.Contains(key, "management ip address"), strings.Contains(key, "management address"):
			if ip := lldpIPv4Re.FindString(value); ip != "" {
				current.ManagementIP = ip
			}
		case strings.HasPrefix(key, "capabilities"):
			current.Capabilities = value
		}
	}
	commit()

	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ShowLLDPLocalManagementAddress parses 'show lldp local-management-address'
// for this switch's own management IPv4 address.
func ShowLLDPLocalManagementAddress(output string) (string, bool) {
	re := regexp.MustCompile(`Management IP Address\s*=\s*(` + lldpIPv4Re.String() + `)`)
	for _, line := range strings.Split(output, "\n") {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}
