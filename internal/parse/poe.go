package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// PoEPort is one line of 'show lanpower slot X/Y'.
type PoEPort struct {
	PortID       string
	MaxPowerMW   int
	ActualUsedMW int
	Status       string
	Priority     string
	AdminState   string
	Class        string
	Type         string
}

// PoEChassisSummary is the chassis/slot power budget summary at the tail of
// 'show lanpower slot X/Y'.
type PoEChassisSummary struct {
	ChassisID                 int
	SlotID                    int
	MaxWatts                  int
	ActualPowerConsumedWatts  int
	PowerBudgetRemainingWatts int
	TotalPowerBudgetWatts     int
	PowerSuppliesAvailable    int
}

var poePortRe = regexp.MustCompile(`^(\d+/\d+/\d+)\s+(\d+)\s+(\d+)\s+(\S+(?:\s+\S+)*?)\s+(Low|High|Critical)\s+(ON|OFF)\s+(.?)\s*(.*?)$`)

var (
	poeChassisIDRe = regexp.MustCompile(`ChassisId\s+(\d+)\s+Slot\s+(\d+)\s+Max Watts\s+(\d+)`)
	poeConsumedRe  = regexp.MustCompile(`(\d+)\s+Watts\s+Actual Power Consumed`)
	poeRemainingRe = regexp.MustCompile(`(\d+)\s+Watts\s+Actual Power Budget Remaining`)
	poeTotalRe     = regexp.MustCompile(`(\d+)\s+Watts\s+Total Power Budget Available`)
	poeSuppliesRe  = regexp.MustCompile(`(\d+)\s+Power Supply Available`)
)

// ShowLanPower parses 'show lanpower slot X/Y': per-port PoE state plus the
// chassis/slot power budget summary.
func ShowLanPower(output string) ([]PoEPort, PoEChassisSummary) {
	var ports []PoEPort
	var summary PoEChassisSummary

	lines := strings.Split(output, "\n")
	inPortSection := false

	for idx, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.Contains(line, "----") && idx > 0 && strings.Contains(lines[idx-1], "Port") {
			inPortSection = true
			continue
		}

		if inPortSection && trimmed != "" && !strings.HasPrefix(trimmed, "Chassis") {
			if m := poePortRe.FindStringSubmatch(trimmed); m != nil {
				maxMW, _ := strconv.Atoi(m[2])
				usedMW, _ := strconv.Atoi(m[3])
				class := m[7]
				if class == "_" {
					class = ""
				}
				ports = append(ports, PoEPort{
					PortID:       m[1],
					MaxPowerMW:   maxMW,
					ActualUsedMW: usedMW,
					Status:       strings.TrimSpace(m[4]),
					Priority:     m[5],
					AdminState:   m[6],
					Class:        class,
					Type:         strings.TrimSpace(m[8]),
				})
			}
		}

		switch {
		case strings.Contains(trimmed, "ChassisId"):
			if m := poeChassisIDRe.FindStringSubmatch(trimmed); m != nil {
				summary.ChassisID, _ = strconv.Atoi(m[1])
				summary.SlotID, _ = strconv.Atoi(m[2])
				summary.MaxWatts, _ = strconv.Atoi(m[3])
			}
		case strings.Contains(trimmed, "Actual Power Consumed"):
			if m := poeConsumedRe.FindStringSubmatch(trimmed); m != nil {
				summary.ActualPowerConsumedWatts, _ = strconv.Atoi(m[1])
			}
		case strings.Contains(trimmed, "Actual Power Budget Remaining"):
			if m := poeRemainingRe.FindStringSubmatch(trimmed); m != nil {
				summary.PowerBudgetRemainingWatts, _ = strconv.Atoi(m[1])
			}
		case strings.Contains(trimmed, "Total Power Budget Available"):
			if m := poeTotalRe.FindStringSubmatch(trimmed); m != nil {
				summary.TotalPowerBudgetWatts, _ = strconv.Atoi(m[1])
			}
		case strings.Contains(trimmed, "Power Supply Available"):
			if m := poeSuppliesRe.FindStringSubmatch(trimmed); m != nil {
				summary.PowerSuppliesAvailable, _ = strconv.Atoi(m[1])
			}
		}
	}

	return ports, summary
}

// PoEByPort indexes ShowLanPower's port list by port ID, for joins in
// AggregateInterfaceData.
func PoEByPort(ports []PoEPort) map[string]PoEPort {
	out := make(map[string]PoEPort, len(ports))
	for _, p := range ports {
		out[p.PortID] = p
	}
	return out
}
