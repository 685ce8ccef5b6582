package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// HealthModule is one module row from ShowHealth.
type HealthModule struct {
	ModuleName          string
	Slot                string
	Status              string
	CPUUsagePercent     int
	MemoryUsagePercent  int
	RxErrors            int
	TxErrors            int
}

// HealthResult is the result of ShowHealth.
type HealthResult struct {
	Modules       []HealthModule
	OverallStatus string
	Issues        []string
}

var (
	healthCPURe    = regexp.MustCompile(`^CPU\s+(\d+)`)
	healthMemRe    = regexp.MustCompile(`^Memory\s+(\d+)`)
	healthModuleRe = regexp.MustCompile(`(\w+)\s+(\d+/?\d*)\s+(OK|WARNING|CRITICAL|DOWN)\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)`)
)

// ShowHealth parses 'show health'/'show health all', recognizing both the
// AOS8 chassis module table and the OS6860 compact CMM resources table.
func ShowHealth(output string) HealthResult {
	res := HealthResult{OverallStatus: "OK"}
	lines := strings.Split(strings.TrimSpace(output), "\n")

	if strings.Contains(output, "Resources") && strings.Contains(output, "Current") {
		var cpu, mem int
		for _, line := range lines {
			if m := healthCPURe.FindStringSubmatch(line); m != nil {
				cpu, _ = strconv.Atoi(m[1])
			}
			if m := healthMemRe.FindStringSubmatch(line); m != nil {
				mem, _ = strconv.Atoi(m[1])
			}
		}
		if cpu > 0 || mem > 0 {
			res.Modules = append(res.Modules, HealthModule{
				ModuleName: "CMM", Slot: "1", Status: "OK",
				CPUUsagePercent: cpu, MemoryUsagePercent: mem,
			})
			if cpu > 80 {
				res.OverallStatus = "WARNING"
				res.Issues = append(res.Issues, fmt.Sprintf("CMM CPU usage high: %d%%", cpu))
			}
			if mem > 85 {
				res.OverallStatus = "WARNING"
				res.Issues = append(res.Issues, fmt.Sprintf("CMM memory usage high: %d%%", mem))
			}
		}
		return res
	}

	for _, line := range lines {
		m := healthModuleRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		cpu, _ := strconv.Atoi(m[4])
		mem, _ := strconv.Atoi(m[5])
		rxErr, _ := strconv.Atoi(m[6])
		txErr, _ := strconv.Atoi(m[7])
		mod := HealthModule{
			ModuleName: m[1], Slot: m[2], Status: m[3],
			CPUUsagePercent: cpu, MemoryUsagePercent: mem, RxErrors: rxErr, TxErrors: txErr,
		}
		res.Modules = append(res.Modules, mod)

		if mod.Status == "WARNING" || mod.Status == "CRITICAL" || mod.Status == "DOWN" {
			res.OverallStatus = mod.Status
			res.Issues = append(res.Issues, fmt.Sprintf("%s slot %s status: %s", mod.ModuleName, mod.Slot, mod.Status))
		}
		if cpu > 80 {
			res.Issues = append(res.Issues, fmt.Sprintf("%s slot %s CPU usage high: %d%%", mod.ModuleName, mod.Slot, cpu))
		}
		if mem > 85 {
			res.Issues = append(res.Issues, fmt.Sprintf("%s slot %s memory usage high: %d%%", mod.ModuleName, mod.Slot, mem))
		}
	}

	return res
}

// TemperatureSensor is one sensor row from ShowTemperature.
type TemperatureSensor struct {
	Sensor           string
	Location         string
	CurrentCelsius   int
	ThresholdCelsius int
	Status           string
}

// TemperatureResult is the result of ShowTemperature.
type TemperatureResult struct {
	Sensors       []TemperatureSensor
	OverallStatus string
	Issues        []string
}

var (
	tempOS6860Re = regexp.MustCompile(`(?i)(\d+/\w+)\s+(\d+)\s+\d+\s+to\s+\d+\s+\d+\s+(\d+)\s+(UNDER THRESHOLD|OVER THRESHOLD|OK)`)
	tempAOS8Re   = regexp.MustCompile(`(?i)(\w+[-\w]*)\s+([\w/]+)\s+(\d+)C?\s+(\d+)C?\s+(OK|WARNING|CRITICAL)`)
)

// ShowTemperature parses 'show temperature'.
func ShowTemperature(output string) TemperatureResult {
	res := TemperatureResult{OverallStatus: "OK"}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if m := tempOS6860Re.FindStringSubmatch(line); m != nil {
			location := m[1]
			current, _ := strconv.Atoi(m[2])
			threshold, _ := strconv.Atoi(m[3])
			status := "CRITICAL"
			if strings.Contains(strings.ToUpper(m[4]), "UNDER") {
				status = "OK"
			}
			res.Sensors = append(res.Sensors, TemperatureSensor{
				Sensor: location, Location: location, CurrentCelsius: current, ThresholdCelsius: threshold, Status: status,
			})
			if strings.Contains(strings.ToUpper(m[4]), "OVER") || current >= threshold {
				res.OverallStatus = "CRITICAL"
				res.Issues = append(res.Issues, fmt.Sprintf("%s: %d°C (threshold: %d°C)", location, current, threshold))
			}
			continue
		}
		if m := tempAOS8Re.FindStringSubmatch(line); m != nil {
			current, _ := strconv.Atoi(m[3])
			threshold, _ := strconv.Atoi(m[4])
			status := strings.ToUpper(m[5])
			res.Sensors = append(res.Sensors, TemperatureSensor{
				Sensor: m[1], Location: m[2], CurrentCelsius: current, ThresholdCelsius: threshold, Status: status,
			})
			if status == "WARNING" || status == "CRITICAL" {
				res.OverallStatus = status
				res.Issues = append(res.Issues, fmt.Sprintf("%s at %s: %d°C (threshold: %d°C)", m[1], m[2], current, threshold))
			}
		}
	}

	return res
}

// Fan is one row from ShowFan.
type Fan struct {
	FanID    int
	SpeedRPM int
	Status   string
}

var (
	fanOS6860Re = regexp.MustCompile(`(?i)(\d+)/[-\w]*\s+(\d+)\s+(YES|NO)`)
	fanAOS8Re   = regexp.MustCompile(`(?i)(?:Fan|FAN)\s+(\d+)\s+(\d+)\s*(RPM)?\s+(OK|WARNING|CRITICAL|FAILED|operational|not operational)`)
)

// ShowFan parses 'show fan'/'show fantray'.
func ShowFan(output string) []Fan {
	var out []Fan
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if m := fanOS6860Re.FindStringSubmatch(line); m != nil {
			id, _ := strconv.Atoi(m[2])
			speed, status := 0, "FAILED"
			if strings.ToUpper(m[3]) == "YES" {
				speed, status = 3500, "OK"
			}
			out = append(out, Fan{FanID: id, SpeedRPM: speed, Status: status})
			continue
		}
		if m := fanAOS8Re.FindStringSubmatch(line); m != nil {
			id, _ := strconv.Atoi(m[1])
			speed, _ := strconv.Atoi(m[2])
			status := strings.ToUpper(m[4])
			switch status {
			case "OK", "WARNING", "CRITICAL", "FAILED":
			default:
				if strings.Contains(strings.ToLower(m[4]), "operational") && !strings.Contains(strings.ToLower(m[4]), "not") {
					status = "OK"
				} else {
					status = "FAILED"
				}
			}
			out = append(out, Fan{FanID: id, SpeedRPM: speed, Status: status})
		}
	}
	return out
}

// PowerSupply is one row from ShowPowerSupply.
type PowerSupply struct {
	PSUID        int
	Status       string // present | not_present
	Operational  bool
	Type         string
	Watts        *int
}

var psuRe = regexp.MustCompile(`(?i)(?:PSU|PS|Power Supply)\s+(\d+)\s+(present|not present|operational|failed)\s+(AC|DC)?\s*(\d+)?`)

// ShowPowerSupply parses 'show power-supply'.
func ShowPowerSupply(output string) []PowerSupply {
	var out []PowerSupply
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		m := psuRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, _ := strconv.Atoi(m[1])
		statusLower := strings.ToLower(m[2])
		psu := PowerSupply{
			PSUID:       id,
			Operational: strings.Contains(statusLower, "operational"),
			Type:        "unknown",
		}
		if strings.Contains(statusLower, "present") && !strings.Contains(statusLower, "not") {
			psu.Status = "present"
		} else {
			psu.Status = "not_present"
		}
		if m[3] != "" {
			psu.Type = m[3]
		}
		if m[4] != "" {
			w, _ := strconv.Atoi(m[4])
			psu.Watts = &w
		}
		out = append(out, psu)
	}
	return out
}

// CMMSlot is one role's row from ShowCMM (primary or secondary).
type CMMSlot struct {
	Slot              int
	Role              string
	Status            string
	TemperatureCelsius *int
}

// CMMStatus is the result of ShowCMM.
type CMMStatus struct {
	Primary   *CMMSlot
	Secondary *CMMSlot
	Status    string
}

var cmmRe = regexp.MustCompile(`(?i)(?:Slot|CMM)\s+(\d+)\s+(primary|secondary|running|standby)\s+(running|standby|up|down)\s*(\d+)?`)

// ShowCMM parses 'show cmm'.
func ShowCMM(output string) CMMStatus {
	res := CMMStatus{Status: "unknown"}
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		m := cmmRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		slot, _ := strconv.Atoi(m[1])
		role := strings.ToLower(m[2])
		status := strings.ToLower(m[3])
		var temp *int
		if m[4] != "" {
			t, _ := strconv.Atoi(m[4])
			temp = &t
		}
		info := CMMSlot{Slot: slot, Role: role, Status: status, TemperatureCelsius: temp}

		if strings.Contains(role, "primary") || strings.Contains(role, "running") {
			res.Primary = &info
			res.Status = status
		} else if strings.Contains(role, "secondary") || strings.Contains(role, "standby") {
			res.Secondary = &info
		}
	}
	return res
}

// AnalyzeChassisHealth folds temperature, fan, and PSU readings into a flat
// issue list for a device-level health summary. Chassis inventory itself
// (model/serial/hardware revision) comes from ShowChassis, not this
// function.
func AnalyzeChassisHealth(temp TemperatureResult, fans []Fan, psus []PowerSupply) []string {
	var issues []string

	for _, s := range temp.Sensors {
		if s.Status != "OK" {
			issues = append(issues, fmt.Sprintf("Temperature sensor %s at %s: %d°C (threshold: %d°C)", s.Sensor, s.Location, s.CurrentCelsius, s.ThresholdCelsius))
		}
	}
	for _, f := range fans {
		if f.Status != "OK" {
			issues = append(issues, fmt.Sprintf("Fan %d status: %s", f.FanID, f.Status))
		}
		if f.SpeedRPM < 1000 {
			issues = append(issues, fmt.Sprintf("Fan %d speed low: %d RPM", f.FanID, f.SpeedRPM))
		}
	}
	for _, p := range psus {
		if p.Status != "present" {
			issues = append(issues, fmt.Sprintf("Power supply %d: %s", p.PSUID, p.Status))
		}
		if !p.Operational {
			issues = append(issues, fmt.Sprintf("Power supply %d not operational", p.PSUID))
		}
	}

	return issues
}
