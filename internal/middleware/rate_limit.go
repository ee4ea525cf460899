package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"go-formacao/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Limiter decides per key, so the in-memory token-bucket implementation
// can later be swapped for one backed by a shared store without touching
// the middleware.
type Limiter interface {
	Allow(key string) bool
	RetryAfter() time.Duration
}

type keyedRateLimiter struct {
	buckets map[string]*rate.Limiter
	mu      *sync.Mutex
	r       rate.Limit
	b       int
	window  time.Duration
}

// NewKeyedLimiter allows `requests` per `windowSecs` seconds per key,
// with the full window as burst.
func NewKeyedLimiter(requests, windowSecs int) Limiter {
	return &keyedRateLimiter{
		buckets: make(map[string]*rate.Limiter),
		mu:      &sync.Mutex{},
		r:       rate.Limit(float64(requests) / float64(windowSecs)),
		b:       requests,
		window:  time.Duration(windowSecs) * time.Second,
	}
}

func (l *keyedRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.buckets[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.buckets[key] = limiter
	}

	return limiter.Allow()
}

func (l *keyedRateLimiter) RetryAfter() time.Duration {
	return l.window
}

// RateLimitByIP throttles per client IP and answers 429 with Retry-After.
func RateLimitByIP(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			retryAfter := int(limiter.RetryAfter().Seconds())
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests from this IP", gin.H{
				"retry_after": retryAfter,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
