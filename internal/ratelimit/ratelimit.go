// Package ratelimit provides a keyed token-bucket rate limiter. The
// public write forms (claims, cards, tips, comments) are limited per
// client IP so one guest cannot flood the shared site.
package ratelimit

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Keys idle longer than idleTTL are dropped; their buckets would be
// full again anyway. The sweep runs opportunistically on lookups so the
// limiter needs no background goroutine.
const (
	idleTTL       = 10 * time.Minute
	sweepInterval = time.Minute
)

// KeyedRateLimiter manages per-key rate limiting.
// Each unique key gets its own independent rate limiter.
type KeyedRateLimiter struct {
	mu        sync.RWMutex
	limiters  map[string]*entry
	limit     rate.Limit
	burst     int
	nextSweep time.Time
}

type entry struct {
	limiter *rate.Limiter

	// lastSeen is touched under the read lock, so it is atomic.
	lastSeen atomic.Int64
}

// New creates a new keyed rate limiter.
// rps: requests per second allowed.
// burst: maximum burst size (tokens available immediately).
func New(rps float64, burst int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters:  make(map[string]*entry),
		limit:     rate.Limit(rps),
		burst:     burst,
		nextSweep: time.Now().Add(sweepInterval),
	}
}

// Allow reports whether a request for the given key should be allowed.
// Returns immediately without blocking.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.getLimiter(key).Allow()
}

// Len returns the number of tracked keys.
func (krl *KeyedRateLimiter) Len() int {
	krl.mu.RLock()
	defer krl.mu.RUnlock()
	return len(krl.limiters)
}

// getLimiter returns the limiter for a key, creating one if needed.
func (krl *KeyedRateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now()

	// Fast path: read lock
	krl.mu.RLock()
	e, exists := krl.limiters[key]
	sweepDue := now.After(krl.nextSweep)
	krl.mu.RUnlock()

	if exists && !sweepDue {
		e.touch(now)
		return e.limiter
	}

	// Slow path: write lock to create and/or sweep
	krl.mu.Lock()
	defer krl.mu.Unlock()

	if now.After(krl.nextSweep) {
		krl.sweepLocked(now)
		krl.nextSweep = now.Add(sweepInterval)
	}

	// Double-check after acquiring write lock
	if e, exists = krl.limiters[key]; exists {
		e.touch(now)
		return e.limiter
	}

	e = &entry{limiter: rate.NewLimiter(krl.limit, krl.burst)}
	e.touch(now)
	krl.limiters[key] = e
	return e.limiter
}

// sweepLocked drops entries idle past idleTTL. Caller holds the write lock.
func (krl *KeyedRateLimiter) sweepLocked(now time.Time) {
	cutoff := now.Add(-idleTTL).UnixNano()
	for key, e := range krl.limiters {
		if e.lastSeen.Load() < cutoff {
			delete(krl.limiters, key)
		}
	}
}

func (e *entry) touch(now time.Time) {
	e.lastSeen.Store(now.UnixNano())
}
