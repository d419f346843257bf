package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiterConfig holds configuration for the in-memory rate limiter
type RateLimiterConfig struct {
	// Requests allowed per client within Window
	Limit  int
	Window time.Duration
}

// DefaultRateLimiterConfig allows 300 requests per minute per client
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Limit:  300,
		Window: time.Minute,
	}
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window in-memory rate limiter keyed by client
// IP. Suitable for a single node; a shared store is needed behind a
// load balancer.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateWindow
	cfg     RateLimiterConfig
}

// NewRateLimiter creates a new RateLimiter
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*rateWindow),
		cfg:     cfg,
	}
}

// Allow reports whether the client may proceed
func (r *RateLimiter) Allow(clientKey string) bool {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	window, ok := r.clients[clientKey]
	if !ok || now.After(window.resetAt) {
		r.clients[clientKey] = &rateWindow{count: 1, resetAt: now.Add(r.cfg.Window)}
		if len(r.clients) > 10000 {
			r.evictExpired(now)
		}
		return true
	}

	if window.count >= r.cfg.Limit {
		return false
	}
	window.count++
	return true
}

func (r *RateLimiter) evictExpired(now time.Time) {
	for key, window := range r.clients {
		if now.After(window.resetAt) {
			delete(r.clients, key)
		}
	}
}

// Middleware returns a gin middleware enforcing the rate limit
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": "Too many requests",
				},
			})
			return
		}
		c.Next()
	}
}
