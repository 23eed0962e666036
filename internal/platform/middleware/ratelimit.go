package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig holds token-bucket settings for the API group.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns sensible console defaults.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{RequestsPerSecond: 50, BurstSize: 100}
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimit applies a per-client-IP token bucket. Buckets idle for
// more than an hour are pruned on the next request from any client.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	// A zero burst would cap every bucket at zero tokens and reject
	// all traffic, so it is as invalid as a zero rate.
	if cfg.RequestsPerSecond <= 0 || cfg.BurstSize <= 0 {
		cfg = DefaultRateLimitConfig()
	}

	var mu sync.Mutex
	buckets := map[string]*bucket{}
	lastPrune := time.Now()

	allow := func(ip string) bool {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if now.Sub(lastPrune) > time.Hour {
			for k, b := range buckets {
				if now.Sub(b.lastRefill) > time.Hour {
					delete(buckets, k)
				}
			}
			lastPrune = now
		}

		b, ok := buckets[ip]
		if !ok {
			b = &bucket{tokens: float64(cfg.BurstSize), lastRefill: now}
			buckets[ip] = b
		}

		b.tokens += now.Sub(b.lastRefill).Seconds() * cfg.RequestsPerSecond
		if b.tokens > float64(cfg.BurstSize) {
			b.tokens = float64(cfg.BurstSize)
		}
		b.lastRefill = now

		if b.tokens < 1 {
			return false
		}
		b.tokens--
		return true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
