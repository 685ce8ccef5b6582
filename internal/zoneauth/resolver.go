// Package zoneauth resolves per-host credential candidates from an IP
// address's "zone" (the second octet of a dotted-quad IPv4), falling back
// between a global credential and a per-zone one. Grounded on
// original_source/aos_server/zone_auth.py.
package zoneauth

import (
	"log/slog"
	"os"
	"regexp"
	"strconv"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
)

var ipv4Re = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)\.(\d+)$`)

// ExtractZone returns the second octet of host if host is a valid dotted-quad
// IPv4 address with all octets in [0,255]; otherwise ok is false.
func ExtractZone(host string) (zone int, ok bool) {
	m := ipv4Re.FindStringSubmatch(host)
	if m == nil {
		return 0, false
	}
	octets := make([]int, 4)
	for i, s := range m[1:] {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 255 {
			return 0, false
		}
		octets[i] = n
	}
	return octets[1], true
}

// Resolver resolves ordered credential candidates for a host from a
// process-wide zone credential map.
type Resolver struct {
	m      *domain.ZoneCredentialMap
	logger *slog.Logger
}

// New builds a Resolver over an immutable zone credential map.
func New(m *domain.ZoneCredentialMap, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{m: m, logger: logger}
}

func resolveEntry(e domain.ZoneCredentialEntry) (username, password string) {
	if e.UsernameEnv != "" {
		username = os.Getenv(e.UsernameEnv)
	}
	if username == "" {
		username = e.Username
	}
	if e.PasswordEnv != "" {
		password = os.Getenv(e.PasswordEnv)
	}
	if password == "" {
		password = e.Password
	}
	return username, password
}

// ForHost returns the ordered credential candidates for host: global first
// (if configured and resolvable), then zone-specific (if the host maps to a
// configured zone and that zone resolves). Missing env vars silently skip
// that entry rather than failing the resolver.
func (r *Resolver) ForHost(host string) []domain.ZoneCredentials {
	if r.m == nil {
		return nil
	}

	var out []domain.ZoneCredentials

	if r.m.Global != nil {
		u, p := resolveEntry(*r.m.Global)
		if u != "" && p != "" {
			out = append(out, domain.ZoneCredentials{Username: u, Password: p})
			r.logger.Debug("zoneauth: resolved global credential", "host", host)
		}
	}

	if zone, ok := ExtractZone(host); ok {
		if entry, exists := r.m.Zones[zone]; exists {
			u, p := resolveEntry(entry)
			if u != "" && p != "" {
				z := zone
				out = append(out, domain.ZoneCredentials{Username: u, Password: p, ZoneID: &z})
				r.logger.Debug("zoneauth: resolved zone credential", "host", host, "zone", zone)
			} else {
				r.logger.Warn("zoneauth: zone configured but credentials did not resolve", "zone", zone)
			}
		}
	}

	if len(out) == 0 {
		r.logger.Debug("zoneauth: no credentials resolved", "host", host)
	}
	return out
}

// Primary returns the first candidate for host, or false if none resolved.
func (r *Resolver) Primary(host string) (domain.ZoneCredentials, bool) {
	list := r.ForHost(host)
	if len(list) == 0 {
		return domain.ZoneCredentials{}, false
	}
	return list[0], true
}
