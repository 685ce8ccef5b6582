package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NTPStatus is the result of ShowNTPStatus.
type NTPStatus struct {
	Synchronized      bool
	Mode              string
	Stratum           *int
	ReferenceClock    string
	OffsetMS          *float64
	RootDelayMS       *float64
	RootDispersionMS  *float64
}

var (
	ntpSyncedRe    = regexp.MustCompile(`(?i)synchronized|sync.*yes|status.*synchronized`)
	ntpNotSyncedRe = regexp.MustCompile(`(?i)not.*synchronized|sync.*no`)
	ntpModeRe      = regexp.MustCompile(`(?i)Mode:\s*(client|server|peer|broadcast)`)
	ntpStratumRe   = regexp.MustCompile(`Stratum:\s*(\d+)`)
	ntpRefClockRe  = regexp.MustCompile(`:\s*(\d+\.\d+\.\d+\.\d+)`)
	ntpOffsetRe    = regexp.MustCompile(`(?i)Offset:\s*([-\d.]+)\s*ms`)
	ntpValueMSRe   = regexp.MustCompile(`(?i):\s*([\d.]+)\s*ms`)
)

// ShowNTPStatus parses 'show ntp status'.
func ShowNTPStatus(output string) NTPStatus {
	var s NTPStatus
	s.Mode = "unknown"

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if ntpSyncedRe.MatchString(line) {
			s.Synchronized = true
		}
		if ntpNotSyncedRe.MatchString(line) {
			s.Synchronized = false
		}
		if strings.Contains(line, "Mode:") {
			if m := ntpModeRe.FindStringSubmatch(line); m != nil {
				s.Mode = strings.ToLower(m[1])
			}
		}
		if strings.Contains(line, "Stratum:") {
			if m := ntpStratumRe.FindStringSubmatch(line); m != nil {
				n, _ := strconv.Atoi(m[1])
				s.Stratum = &n
			}
		}
		if strings.Contains(line, "Reference Clock:") || strings.Contains(line, "Reference:") {
			if m := ntpRefClockRe.FindStringSubmatch(line); m != nil {
				s.ReferenceClock = m[1]
			}
		}
		if strings.Contains(line, "Offset:") {
			if m := ntpOffsetRe.FindStringSubmatch(line); m != nil {
				f, _ := strconv.ParseFloat(m[1], 64)
				s.OffsetMS = &f
			}
		}
		if strings.Contains(line, "Root Delay:") {
			if m := ntpValueMSRe.FindStringSubmatch(line); m != nil {
				f, _ := strconv.ParseFloat(m[1], 64)
				s.RootDelayMS = &f
			}
		}
		if strings.Contains(line, "Root Dispersion:") {
			if m := ntpValueMSRe.FindStringSubmatch(line); m != nil {
				f, _ := strconv.ParseFloat(m[1], 64)
				s.RootDispersionMS = &f
			}
		}
	}
	return s
}

// NTPServer is one configured server row.
type NTPServer struct {
	IP            string
	Status        string
	Stratum       int
	DelayMS       float64
	Reachability  int
	Preferred     bool
}

var ntpServerRe = regexp.MustCompile(`(?i)(\d+\.\d+\.\d+\.\d+)\s+(synchronized|reachable|unreachable|inactive)\s+(\d+)\s+([\d.]+)\s+(\d+)\s*(\*)?`)

// ShowNTPClientServerList parses 'show ntp client server-list'.
func ShowNTPClientServerList(output string) []NTPServer {
	var out []NTPServer
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		m := ntpServerRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		stratum, _ := strconv.Atoi(m[3])
		delay, _ := strconv.ParseFloat(m[4], 64)
		reach, _ := strconv.Atoi(m[5])
		out = append(out, NTPServer{
			IP: m[1], Status: strings.ToLower(m[2]), Stratum: stratum,
			DelayMS: delay, Reachability: reach, Preferred: m[6] == "*",
		})
	}
	return out
}

// AnalyzeNTPStatus flags unsynchronized state, invalid stratum, server
// reachability/delay problems, and excessive offset.
func AnalyzeNTPStatus(status NTPStatus, servers []NTPServer) []string {
	var issues []string

	if !status.Synchronized {
		issues = append(issues, "NTP not synchronized - time may be inaccurate")
	}
	if status.Stratum != nil && *status.Stratum >= 16 {
		issues = append(issues, fmt.Sprintf("NTP stratum %d invalid (should be < 16)", *status.Stratum))
	}

	if len(servers) == 0 {
		issues = append(issues, "No NTP servers configured")
	} else {
		anySynced := false
		for _, srv := range servers {
			if srv.Status == "unreachable" {
				issues = append(issues, fmt.Sprintf("NTP server %s unreachable", srv.IP))
			}
			if srv.Status == "synchronized" {
				anySynced = true
			}
			if srv.Reachability < 128 {
				issues = append(issues, fmt.Sprintf("NTP server %s has low reachability (%d/255 polls successful)", srv.IP, srv.Reachability))
			}
			if srv.DelayMS > 100 {
				issues = append(issues, fmt.Sprintf("NTP server %s has high delay (%gms)", srv.IP, srv.DelayMS))
			}
		}
		if !anySynced && status.Synchronized {
			issues = append(issues, "Synchronized but no server in 'synchronized' state")
		}
	}

	if status.OffsetMS != nil {
		abs := *status.OffsetMS
		if abs < 0 {
			abs = -abs
		}
		if abs > 100 {
			issues = append(issues, fmt.Sprintf("NTP offset high: %gms (should be < 100ms)", *status.OffsetMS))
		}
	}

	return issues
}
