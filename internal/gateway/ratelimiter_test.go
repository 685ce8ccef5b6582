package gateway

import "testing"

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	l := NewRateLimiter(1, 3)
	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d: expected allowed within burst", i)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("expected 4th request to exceed burst")
	}
}

func TestRateLimiterTracksKeysIndependently(t *testing.T) {
	l := NewRateLimiter(1, 1)
	if !l.Allow("10.0.0.1") {
		t.Fatal("expected first client's first request allowed")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatal("expected second client's first request allowed independently")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("expected first client's second request denied")
	}
}

func TestRateLimiterDisabledWhenRPSNonPositive(t *testing.T) {
	l := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatal("expected unlimited Allow when rps <= 0")
		}
	}
}

func TestRateLimiterEvictionBoundsMapSize(t *testing.T) {
	l := NewRateLimiter(100, 100)
	for i := 0; i < maxTrackedClients+50; i++ {
		l.Allow(string(rune(i)))
	}
	l.mu.Lock()
	size := len(l.buckets)
	l.mu.Unlock()
	if size > maxTrackedClients {
		t.Fatalf("expected bucket map bounded at %d, got %d", maxTrackedClients, size)
	}
}
