package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/config"
	"log/slog"
)

func TestClientIPPrefersForwardedForFirstHop(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	r.RemoteAddr = "10.0.0.1:5555"
	if got := clientIP(r); got != "203.0.113.5" {
		t.Fatalf("clientIP = %q, want 203.0.113.5", got)
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "198.51.100.7:5555"
	if got := clientIP(r); got != "198.51.100.7" {
		t.Fatalf("clientIP = %q, want 198.51.100.7", got)
	}
}

func TestIPAllowedEmptyListAllowsAll(t *testing.T) {
	if !ipAllowed("1.2.3.4", nil) {
		t.Fatal("expected empty CIDR list to allow any address")
	}
}

func TestIPAllowedMatchesConfiguredCIDR(t *testing.T) {
	cidrs := []string{"10.0.0.0/8"}
	if !ipAllowed("10.1.2.3", cidrs) {
		t.Fatal("expected 10.1.2.3 to match 10.0.0.0/8")
	}
	if ipAllowed("192.168.1.1", cidrs) {
		t.Fatal("expected 192.168.1.1 to not match 10.0.0.0/8")
	}
}

func TestIPAllowedRejectsUnparseableAddress(t *testing.T) {
	if ipAllowed("not-an-ip", []string{"10.0.0.0/8"}) {
		t.Fatal("expected unparseable address to be rejected")
	}
}

type alwaysDeny struct{}

func (alwaysDeny) Allow(string) bool { return false }

type alwaysAllow struct{}

func (alwaysAllow) Allow(string) bool { return true }

func TestGuardRejectsDisallowedIP(t *testing.T) {
	cfg := &config.ServerConfig{AllowedCIDRs: []string{"10.0.0.0/8"}}
	called := false
	h := guard(cfg, alwaysAllow{}, slog.Default(), func(w http.ResponseWriter, r *http.Request) { called = true })

	r := httptest.NewRequest(http.MethodPost, "/v1/tools/call", nil)
	r.RemoteAddr = "203.0.113.5:1234"
	w := httptest.NewRecorder()
	h(w, r)

	if called {
		t.Fatal("expected handler not to be called for disallowed IP")
	}
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestGuardRejectsMissingBearerToken(t *testing.T) {
	cfg := &config.ServerConfig{BearerToken: "secret"}
	h := guard(cfg, alwaysAllow{}, slog.Default(), func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a valid token")
	})

	r := httptest.NewRequest(http.MethodPost, "/v1/tools/call", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	h(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestGuardRejectsRateLimited(t *testing.T) {
	cfg := &config.ServerConfig{}
	h := guard(cfg, alwaysDeny{}, slog.Default(), func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run when rate limited")
	})

	r := httptest.NewRequest(http.MethodPost, "/v1/tools/call", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	h(w, r)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
}

func TestGuardAllowsValidRequest(t *testing.T) {
	cfg := &config.ServerConfig{BearerToken: "secret"}
	called := false
	h := guard(cfg, alwaysAllow{}, slog.Default(), func(w http.ResponseWriter, r *http.Request) { called = true })

	r := httptest.NewRequest(http.MethodPost, "/v1/tools/call", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	h(w, r)

	if !called {
		t.Fatal("expected handler to run for a valid request")
	}
	if w.Code != 200 {
		t.Fatalf("status = %d, want 200 (unset -> default)", w.Code)
	}
}
