// Package http implements the C6 Transport Adapter's HTTP-facing handlers:
// the unary tool-call/list endpoints, the JSON-RPC-over-SSE endpoint, and
// the shared auth/CIDR/rate-limit middleware chain wrapping all three.
package http

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/config"
)

// clientIP extracts the caller's address from r, preferring
// X-Forwarded-For's first hop when present (reverse-proxy deployments) and
// falling back to RemoteAddr otherwise.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ipAllowed reports whether ip matches one of the configured CIDRs. An
// empty cidrs list allows every address, matching the IP-whitelisting
// behavior when no allow-list is configured.
func ipAllowed(ip string, cidrs []string) bool {
	if len(cidrs) == 0 {
		return true
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, raw := range cidrs {
		prefix, err := netip.ParsePrefix(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// RateLimiter is the narrow interface this package needs from
// *gateway.RateLimiter; satisfied structurally, no import of internal/gateway
// required (internal/gateway is the one importing internal/http to build
// its mux, not the other way around).
type RateLimiter interface {
	Allow(key string) bool
}

// guard wraps next with the IP allow-list, bearer-token, and rate-limit
// checks shared by every externally reachable route, in that order: IP
// first, then the token, then the per-client rate limit.
func guard(cfg *config.ServerConfig, limiter RateLimiter, logger *slog.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if !ipAllowed(ip, cfg.AllowedCIDRs) {
			logger.Warn("request rejected: ip not allowed", "ip", ip, "path", r.URL.Path)
			http.Error(w, "access denied: ip not allowed", http.StatusForbidden)
			return
		}

		if cfg.BearerToken != "" {
			auth := r.Header.Get("Authorization")
			want := "Bearer " + cfg.BearerToken
			if auth != want {
				logger.Warn("request rejected: missing or invalid bearer token", "ip", ip, "path", r.URL.Path)
				http.Error(w, "invalid or missing bearer token", http.StatusUnauthorized)
				return
			}
		}

		if limiter != nil && !limiter.Allow(ip) {
			logger.Warn("request rejected: rate limit exceeded", "ip", ip, "path", r.URL.Path)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next(w, r)
	}
}
