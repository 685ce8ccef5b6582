package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// VRF is one row of 'show vrf'.
type VRF struct {
	Name      string
	Profile   string
	Protocols []string
}

// ShowVRF parses 'show vrf'.
func ShowVRF(output string) []VRF {
	var out []VRF
	for _, raw := range strings.Split(strings.TrimSpace(output), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.Contains(line, "Virtual Routers") || strings.Contains(line, "---") || strings.Contains(line, "Total Number") {
			continue
		}
		m := regexp.MustCompile(`^(\S+)\s+(\S+)\s+(.+)$`).FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, VRF{Name: m[1], Profile: m[2], Protocols: strings.Fields(m[3])})
	}
	return out
}

// IPRoute is one row of 'show ip routes'.
type IPRoute struct {
	Destination string
	Gateway     string
	Age         string
	Protocol    string
}

// IPRoutesResult is the result of ShowIPRoutes, including the switch's own
// reported total and whether the caller-supplied limit truncated the list.
type IPRoutesResult struct {
	TotalRoutes int
	Routes      []IPRoute
	Truncated   bool
}

var totalRoutesRe = regexp.MustCompile(`Total\s+(\d+)\s+routes`)

// ShowIPRoutes parses 'show ip routes', optionally capping the returned list
// at limit rows and filtering by protocol (case-insensitive).
func ShowIPRoutes(output string, limit int, protocolFilter string) IPRoutesResult {
	var res IPRoutesResult
	lines := strings.Split(strings.TrimSpace(output), "\n")

	for _, line := range lines {
		if strings.Contains(line, "Total") && strings.Contains(line, "routes") {
			if m := totalRoutesRe.FindStringSubmatch(line); m != nil {
				res.TotalRoutes, _ = strconv.Atoi(m[1])
				break
			}
		}
	}

	count := 0
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.Contains(line, "Dest Address") || strings.Contains(line, "---") ||
			strings.Contains(line, "+") || strings.Contains(line, "Total") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}
		destination, gateway := parts[0], parts[1]
		var age, protocol string
		switch {
		case len(parts) == 3:
			protocol = parts[2]
		case len(parts) == 4:
			age, protocol = parts[2], parts[3]
		default:
			age = strings.Join(parts[2:len(parts)-1], " ")
			protocol = parts[len(parts)-1]
		}

		if protocolFilter != "" && !strings.EqualFold(protocol, protocolFilter) {
			continue
		}

		res.Routes = append(res.Routes, IPRoute{Destination: destination, Gateway: gateway, Age: age, Protocol: protocol})
		count++
		if limit > 0 && count >= limit {
			break
		}
	}

	res.Truncated = limit > 0 && res.TotalRoutes > limit
	return res
}

// OSPFInterface is one row of 'show ip ospf interface'.
type OSPFInterface struct {
	Interface  string
	DomainName string
	DomainID   string
	DRAddress  string
	BackupDR   string
	AdminState string
	OperState  string
	State      string
	BFDState   string
}

// ShowIPOSPFInterface parses 'show ip ospf interface'.
func ShowIPOSPFInterface(output string) []OSPFInterface {
	var out []OSPFInterface
	for _, raw := range strings.Split(strings.TrimSpace(output), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.Contains(line, "Interface") || strings.Contains(line, "---") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 8 {
			continue
		}
		o := OSPFInterface{Interface: parts[0]}
		if len(parts) > 1 {
			o.DomainName = parts[1]
		}
		if len(parts) > 2 {
			o.DomainID = parts[2]
		}
		if len(parts) > 3 {
			o.DRAddress = parts[3]
		}
		if len(parts) > 4 {
			o.BackupDR = parts[4]
		}
		if len(parts) > 5 {
			o.AdminState = parts[5]
		}
		if len(parts) > 6 {
			o.OperState = parts[6]
		}
		if len(parts) > 7 {
			o.State = parts[7]
		}
		if len(parts) > 8 {
			o.BFDState = parts[8]
		}
		out = append(out, o)
	}
	return out
}

// OSPFNeighbor is one row of 'show ip ospf neighbor'.
type OSPFNeighbor struct {
	RouterID    string
	Address     string
	AreaID      string
	DeviceType  string
	InterfaceID string
	State       string
}

// ShowIPOSPFNeighbor parses 'show ip ospf neighbor'.
func ShowIPOSPFNeighbor(output string) []OSPFNeighbor {
	var out []OSPFNeighbor
	for _, raw := range strings.Split(strings.TrimSpace(output), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.Contains(line, "---") || strings.Contains(line, "Total") {
			continue
		}
		if strings.Contains(line, "IP") && strings.Contains(line, "Address") && strings.Contains(line, "Area") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 6 {
			continue
		}
		out = append(out, OSPFNeighbor{
			RouterID: parts[0], Address: parts[1], AreaID: parts[2],
			DeviceType: parts[3], InterfaceID: parts[4], State: parts[5],
		})
	}
	return out
}

// IPInterface is one row of 'show ip interface'.
type IPInterface struct {
	Interface  string
	IPAddress  string
	AdminState string
	OperState  string
	State      string
}

// ShowIPInterface parses 'show ip interface'.
func ShowIPInterface(output string) []IPInterface {
	var out []IPInterface
	for _, raw := range strings.Split(strings.TrimSpace(output), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.Contains(line, "IP Address") || strings.Contains(line, "---") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}
		iface := IPInterface{Interface: parts[0]}
		if len(parts) > 1 {
			iface.IPAddress = parts[1]
		}
		if len(parts) > 2 {
			iface.AdminState = parts[2]
		}
		if len(parts) > 3 {
			iface.OperState = parts[3]
		}
		if len(parts) > 4 {
			iface.State = parts[4]
		}
		out = append(out, iface)
	}
	return out
}

// OSPFArea is one row of 'show ip ospf area'.
type OSPFArea struct {
	AreaID     string
	AdminState string
	Type       string
	OperState  string
}

// ShowIPOSPFArea parses 'show ip ospf area'.
func ShowIPOSPFArea(output string) []OSPFArea {
	var out []OSPFArea
	for _, raw := range strings.Split(strings.TrimSpace(output), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.Contains(line, "Area Id") || strings.Contains(line, "---") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			continue
		}
		out = append(out, OSPFArea{AreaID: parts[0], AdminState: parts[1], Type: parts[2], OperState: parts[3]})
	}
	return out
}

// StaticRoute is one row of 'show ip static-routes'.
type StaticRoute struct {
	Destination string
	Gateway     string
	Metric      string
	Distance    string
}

// ShowIPStaticRoutes parses 'show ip static-routes'.
func ShowIPStaticRoutes(output string) []StaticRoute {
	var out []StaticRoute
	for _, raw := range strings.Split(strings.TrimSpace(output), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.Contains(line, "Destination") || strings.Contains(line, "---") || strings.Contains(line, "No static") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		r := StaticRoute{Destination: parts[0], Gateway: parts[1]}
		if len(parts) >= 3 {
			r.Metric = parts[2]
		}
		if len(parts) >= 4 {
			r.Distance = parts[3]
		}
		out = append(out, r)
	}
	return out
}
