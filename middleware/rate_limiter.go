// middleware/rate_limiter.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/dracohq/seller_backend/models"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

// clientLimiter pairs a token bucket with when it was last used, so idle
// entries can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	clients        map[string]*clientLimiter
	mu             *sync.RWMutex
	defaultLimit   rate.Limit
	defaultBurst   int
	staleAfter     time.Duration
	endpointLimits map[string]endpointLimit
}

func NewRateLimiter() *RateLimiter {
	limiter := &RateLimiter{
		clients:        make(map[string]*clientLimiter),
		mu:             &sync.RWMutex{},
		defaultLimit:   rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst:   20,
		staleAfter:     15 * time.Minute,
		endpointLimits: make(map[string]endpointLimit),
	}

	// Login gets a strict limit to slow brute force attempts.
	limiter.endpointLimits["/api/v1/auth/login"] = endpointLimit{
		limit: rate.Every(2 * time.Second),
		burst: 5,
	}
	limiter.endpointLimits["/api/v1/sellers/register"] = endpointLimit{
		limit: rate.Every(500 * time.Millisecond),
		burst: 5,
	}

	// Start cleanup routine
	go limiter.cleanupStaleClients()

	return limiter
}

// cleanupStaleClients periodically drops limiters that have been idle longer
// than staleAfter. The webhook and registration endpoints are open to the
// internet, so without eviction the map grows one entry per client IP per
// path forever.
func (rl *RateLimiter) cleanupStaleClients() {
	for {
		time.Sleep(10 * time.Minute)
		rl.evictStale(time.Now())
	}
}

func (rl *RateLimiter) evictStale(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	evicted := 0
	for key, client := range rl.clients {
		if now.Sub(client.lastSeen) > rl.staleAfter {
			delete(rl.clients, key)
			evicted++
		}
	}
	return evicted
}

func (rl *RateLimiter) getLimiter(ip, path string) *rate.Limiter {
	key := ip + ":" + path
	now := time.Now()

	rl.mu.RLock()
	client, exists := rl.clients[key]
	rl.mu.RUnlock()
	if exists {
		rl.mu.Lock()
		client.lastSeen = now
		rl.mu.Unlock()
		return client.limiter
	}

	limit := rl.defaultLimit
	burst := rl.defaultBurst
	if el, ok := rl.endpointLimits[path]; ok {
		limit = el.limit
		burst = el.burst
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if client, exists = rl.clients[key]; exists {
		client.lastSeen = now
		return client.limiter
	}
	client = &clientLimiter{limiter: rate.NewLimiter(limit, burst), lastSeen: now}
	rl.clients[key] = client
	return client.limiter
}

// RateLimit enforces a per-IP request budget with per-endpoint overrides.
func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := rl.getLimiter(c.RealIP(), c.Request().URL.Path)
			if !limiter.Allow() {
				return c.JSON(http.StatusTooManyRequests, models.Response{
					Status:  http.StatusTooManyRequests,
					Message: "Too many requests, please try again later",
				})
			}
			return next(c)
		}
	}
}
