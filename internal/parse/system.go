// Package parse is the pure, I/O-free parser library (C2): one function per
// CLI command family, turning unstructured AOS CLI text into typed records.
// No parser ever raises — each returns whatever fields it could extract and
// leaves the rest zero-valued. Grounded on original_source/aos_server/*.py;
// where two source variants exist for the same command, the richer one
// (more fields, more tolerant of AOS output quirks) is the one implemented
// here.
package parse

import (
	"regexp"
	"strings"
)

var (
	kvColonRe  = regexp.MustCompile(`^\s*([A-Za-z0-9 &/_-]+?)\s*:\s*(.*?)\s*,?\s*$`)
	versionRe  = regexp.MustCompile(`\b\d+\.\d+\.\d+\.R\d+\b`)
)

// SystemFacts is the result of ShowSystem.
type SystemFacts struct {
	SystemName       string
	SystemDescription string
	SoftwareVersion  string
	SNMPObjectID     string
	Uptime           string
	Contact          string
	Location         string
	Services         string
	DateTime         string
}

// ShowSystem parses 'show system' output. Only the "System:" block is
// scanned; the next top-level (unindented) section terminates parsing.
func ShowSystem(output string) SystemFacts {
	var f SystemFacts
	inSystem := false

	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.ToLower(strings.TrimSpace(line)) == "system:" {
			inSystem = true
			continue
		}
		if inSystem && line != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			break
		}
		if !inSystem {
			continue
		}

		m := kvColonRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(m[1]))
		value := strings.Trim(strings.TrimSpace(m[2]), `"`)

		switch key {
		case "description":
			f.SystemDescription = value
			if mv := versionRe.FindString(value); mv != "" {
				f.SoftwareVersion = mv
			}
		case "object id":
			f.SNMPObjectID = value
		case "up time":
			f.Uptime = value
		case "contact":
			f.Contact = value
		case "name":
			f.SystemName = value
		case "location":
			f.Location = value
		case "services":
			f.Services = value
		case "date & time":
			f.DateTime = value
		}
	}

	return f
}

// ChassisFacts is the result of ShowChassis.
type ChassisFacts struct {
	Model              string
	SerialNumber       string
	PartNumber         string
	HardwareRevision   string
	ManufactureDate    string
	BaseMAC            string
}

// ShowChassis parses 'show chassis' output: plain key:value, comma-terminated
// lines.
func ShowChassis(output string) ChassisFacts {
	var f ChassisFacts
	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimRight(raw, "\r")
		m := kvColonRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(m[1]))
		value := strings.Trim(strings.TrimSpace(m[2]), `"`)

		switch key {
		case "model name":
			f.Model = value
		case "serial number":
			f.SerialNumber = value
		case "part number":
			f.PartNumber = value
		case "hardware revision":
			f.HardwareRevision = value
		case "manufacture date":
			f.ManufactureDate = value
		case "mac address":
			f.BaseMAC = value
		}
	}
	return f
}
