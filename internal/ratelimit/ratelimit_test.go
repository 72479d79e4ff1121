package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_WithinBurst(t *testing.T) {
	krl := New(1, 3)

	assert.True(t, krl.Allow("10.0.0.1"))
	assert.True(t, krl.Allow("10.0.0.1"))
	assert.True(t, krl.Allow("10.0.0.1"))
	assert.False(t, krl.Allow("10.0.0.1"))
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	krl := New(1, 1)

	assert.True(t, krl.Allow("10.0.0.1"))
	assert.False(t, krl.Allow("10.0.0.1"))

	// A different key has its own bucket.
	assert.True(t, krl.Allow("10.0.0.2"))
}

func TestIdleKeysAreEvicted(t *testing.T) {
	krl := New(1, 1)

	krl.Allow("10.0.0.1")
	krl.Allow("10.0.0.2")
	assert.Equal(t, 2, krl.Len())

	// Backdate one key past the idle cutoff and force the next lookup
	// to sweep.
	krl.mu.Lock()
	krl.limiters["10.0.0.1"].lastSeen.Store(time.Now().Add(-idleTTL - time.Minute).UnixNano())
	krl.nextSweep = time.Now().Add(-time.Second)
	krl.mu.Unlock()

	krl.Allow("10.0.0.3")

	assert.Equal(t, 2, krl.Len())
	krl.mu.RLock()
	_, evicted := krl.limiters["10.0.0.1"]
	_, kept := krl.limiters["10.0.0.2"]
	krl.mu.RUnlock()
	assert.False(t, evicted)
	assert.True(t, kept)
}
