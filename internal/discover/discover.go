// Package discover implements a library-only LLDP-crawl autodiscovery walk:
// starting from one seed device, follow LLDP neighbors that look like
// Alcatel/ALE gear and return every device reached plus the discovery edges
// used to get there. It has no tool-catalog entry and no transport surface;
// callers invoke Walk directly. Grounded on
// original_source/aos_server/autodiscover.py.
package discover

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/parse"
)

// defaultVendorPattern matches LLDP system-name/description/port-description
// text that looks like Alcatel-Lucent Enterprise gear.
const defaultVendorPattern = `(?i)(omniswitch|alcatel|alcatel-lucent|\bale\b)`

// Runner is the narrow interface Walk needs from C4; satisfied by
// *sshexec.Executor.
type Runner interface {
	Run(ctx context.Context, device domain.Device, command string, timeout time.Duration, zr ZoneResolver) (*domain.CommandResult, error)
}

// ZoneResolver is the narrow interface Walk needs from C3; aliased to
// domain.ZoneResolver so it names the identical type sshexec.Executor.Run
// requires.
type ZoneResolver = domain.ZoneResolver

// Options bounds and configures one Walk. A negative MaxDepth, or a
// non-positive MaxDevices or Timeout, takes the DefaultOptions value;
// MaxDepth 0 visits the seed only.
type Options struct {
	MaxDepth     int
	MaxDevices   int
	DNSSuffixes  []string
	VendorRegexp string
	Timeout      time.Duration
}

// DefaultOptions mirrors the original's defaults: depth 10, 200 devices, the
// built-in vendor pattern, a 30s per-command timeout.
func DefaultOptions() Options {
	return Options{MaxDepth: 10, MaxDevices: 200, Timeout: 30 * time.Second}
}

// Edge is one discovery hop: the neighbor reached and how it was found.
type Edge struct {
	Host              string
	SystemName        string
	SystemDescription string
	ViaDeviceHost      string
	ViaLocalPort      string
	ChassisID         string
	PortID            string
	PortDescription   string
	ManagementIP      string
}

// Walk crawls LLDP neighbors reachable from seed, returning every device
// visited (seed included) and one edge per vendor-matching neighbor whose
// host resolved, including neighbors already seen or beyond the depth and
// device limits; neighbors with no resolvable host get no edge. It never
// mutates seed or any shared inventory; the caller decides what to persist.
func Walk(ctx context.Context, seed domain.Device, runner Runner, zr ZoneResolver, opts Options) ([]domain.Device, []Edge, error) {
	if opts.MaxDepth < 0 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}
	if opts.MaxDevices <= 0 {
		opts.MaxDevices = DefaultOptions().MaxDevices
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	vendorRe, err := regexp.Compile(firstNonEmpty(opts.VendorRegexp, defaultVendorPattern))
	if err != nil {
		return nil, nil, fmt.Errorf("compile vendor regexp: %w", err)
	}

	type queued struct {
		device domain.Device
		depth  int
	}

	seenHosts := map[string]bool{seed.Host: true}
	seenIDs := map[string]bool{seed.ID: true}
	queue := []queued{{seed, 0}}

	var visited []domain.Device
	var edges []Edge

	for len(queue) > 0 && len(seenIDs) <= opts.MaxDevices {
		item := queue[0]
		queue = queue[1:]
		device, depth := item.device, item.depth

		visited = append(visited, device)

		res, err := runner.Run(ctx, device, "show lldp remote-system", opts.Timeout, zr)
		if err != nil {
			continue
		}
		neighbors := parse.ShowLLDPRemoteSystem(res.Stdout)

		for _, n := range neighbors {
			if !vendorMatch(n, vendorRe) {
				continue
			}

			host := n.ManagementIP
			if host == "" && n.SystemName != "" {
				host = resolveHostFromSystemName(n.SystemName, opts.DNSSuffixes)
			}
			if host == "" {
				continue
			}

			edges = append(edges, Edge{
				Host:              host,
				SystemName:        n.SystemName,
				SystemDescription: n.SystemDescription,
				ViaDeviceHost:     device.Host,
				ViaLocalPort:      n.LocalPort,
				ChassisID:         n.ChassisID,
				PortID:            n.PortID,
				PortDescription:   n.PortDescription,
				ManagementIP:      n.ManagementIP,
			})

			if seenHosts[host] {
				continue
			}
			seenHosts[host] = true

			next := domain.Device{ID: autoDeviceID(host), Host: host, Port: 22, Jump: device.Jump}
			if depth+1 > opts.MaxDepth || len(seenIDs) >= opts.MaxDevices || seenIDs[next.ID] {
				continue
			}
			seenIDs[next.ID] = true
			queue = append(queue, queued{next, depth + 1})
		}
	}

	return visited, edges, nil
}

func vendorMatch(n parse.LLDPNeighbor, re *regexp.Regexp) bool {
	hay := n.SystemName + " " + n.SystemDescription + " " + n.PortDescription
	return re.MatchString(hay)
}

// resolveHostFromSystemName tries the bare system name, then each DNS
// suffix appended to it, returning the first candidate that resolves.
func resolveHostFromSystemName(systemName string, dnsSuffixes []string) string {
	name := strings.TrimSpace(systemName)
	if name == "" {
		return ""
	}

	var candidates []string
	if strings.Contains(name, ".") {
		candidates = append(candidates, name)
	}
	for _, suf := range dnsSuffixes {
		suf = strings.TrimLeft(strings.TrimSpace(suf), ".")
		if suf != "" {
			candidates = append(candidates, name+"."+suf)
		}
	}
	candidates = append(candidates, name)

	for _, c := range candidates {
		if _, err := net.LookupHost(c); err == nil {
			return c
		}
	}
	return ""
}

var idFragmentRe = regexp.MustCompile(`[^a-z0-9]+`)

func autoDeviceID(host string) string {
	frag := idFragmentRe.ReplaceAllString(strings.ToLower(host), "-")
	return "auto:host:" + strings.Trim(frag, "-")
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
