package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvictStaleDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter()

	rl.getLimiter("10.0.0.1", "/api/v1/webhook/seller/REFAAAA1111")
	rl.getLimiter("10.0.0.2", "/api/v1/webhook/seller/REFBBBB2222")
	rl.getLimiter("10.0.0.3", "/api/v1/sellers/register")

	rl.mu.RLock()
	resident := len(rl.clients)
	rl.mu.RUnlock()
	require.Equal(t, 3, resident)

	evicted := rl.evictStale(time.Now().Add(rl.staleAfter + time.Minute))
	assert.Equal(t, 3, evicted)

	rl.mu.RLock()
	resident = len(rl.clients)
	rl.mu.RUnlock()
	assert.Zero(t, resident)
}

func TestEvictStaleKeepsActiveClients(t *testing.T) {
	rl := NewRateLimiter()

	rl.getLimiter("10.0.0.1", "/api/v1/payouts")
	evicted := rl.evictStale(time.Now())
	assert.Zero(t, evicted)

	rl.mu.RLock()
	_, kept := rl.clients["10.0.0.1:/api/v1/payouts"]
	rl.mu.RUnlock()
	assert.True(t, kept)
}

func TestGetLimiterReusesAndRefreshes(t *testing.T) {
	rl := NewRateLimiter()

	first := rl.getLimiter("10.0.0.1", "/api/v1/payouts")
	second := rl.getLimiter("10.0.0.1", "/api/v1/payouts")
	assert.Same(t, first, second)

	// A touched entry survives a sweep that would have evicted its original
	// insertion time.
	rl.mu.Lock()
	rl.clients["10.0.0.1:/api/v1/payouts"].lastSeen = time.Now().Add(-rl.staleAfter - time.Minute)
	rl.mu.Unlock()
	rl.getLimiter("10.0.0.1", "/api/v1/payouts")

	evicted := rl.evictStale(time.Now())
	assert.Zero(t, evicted)
}

func TestEndpointOverridesApply(t *testing.T) {
	rl := NewRateLimiter()

	login := rl.getLimiter("10.0.0.1", "/api/v1/auth/login")
	other := rl.getLimiter("10.0.0.1", "/api/v1/payouts")

	assert.Equal(t, 5, login.Burst())
	assert.Equal(t, rl.defaultBurst, other.Burst())
}
