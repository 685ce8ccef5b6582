package gateway

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedClients caps the number of per-client token buckets kept alive,
// bounding memory under a source-IP-rotation attack the same way a bounded
// rate-limit map would.
const maxTrackedClients = 4096

// staleAfter is how long a client's bucket can sit unused before it becomes
// eligible for eviction on the next Allow call that hits the cap.
const staleAfter = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token-bucket limiter per client key (normally
// the caller's IP), bounded to maxTrackedClients entries. Safe for
// concurrent use.
type RateLimiter struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	buckets map[string]*bucket
}

// NewRateLimiter builds a RateLimiter issuing rps-per-second buckets with
// the given burst. rps <= 0 disables limiting: Allow always returns true.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*bucket),
	}
}

// Allow reports whether key (typically a client IP) may proceed now.
func (l *RateLimiter) Allow(key string) bool {
	if l.rps <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxTrackedClients {
			l.evictStaleLocked(now)
		}
		b = &bucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.Allow()
}

// evictStaleLocked drops buckets untouched for longer than staleAfter, and
// if the map is still at capacity, falls back to removing an arbitrary
// entry so Allow never blocks on an unbounded map.
func (l *RateLimiter) evictStaleLocked(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) >= staleAfter {
			delete(l.buckets, k)
		}
	}
	for len(l.buckets) >= maxTrackedClients {
		for k := range l.buckets {
			delete(l.buckets, k)
			break
		}
	}
}
