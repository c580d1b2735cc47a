// ratelimit.go implements per-client rate limiting with token buckets.
//
// Each client (the authenticated user, else the remote IP) gets a bucket of
// `limit` tokens that refills at `limit` tokens per hour. A request consumes
// one token; an empty bucket yields 429 Too Many Requests.
package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Shimizu-Technology/exam-prep-api/internal/models"
)

// RateLimiter tracks request rates per client.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int // requests per hour
	now     func() time.Time
	stop    chan struct{}
}

// bucket pairs a client's limiter with its last use, for cleanup.
type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing perHour requests per client
// and starts its background cleanup goroutine.
func NewRateLimiter(perHour int) *RateLimiter {
	if perHour <= 0 {
		perHour = 300
	}
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   perHour,
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// RateLimit returns Gin middleware enforcing the per-client limit.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := rl.allow(clientKey(c))

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
		if !allowed {
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Rate limit exceeded. Try again later.",
				Code:    http.StatusTooManyRequests,
			})
			return
		}
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%.0f", remaining))

		c.Next()
	}
}

// allow consumes a token for key if one is available and reports the
// tokens left, read under the same lock.
func (rl *RateLimiter) allow(key string) (bool, float64) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.limit)/3600.0), rl.limit),
		}
		rl.buckets[key] = b
	}
	b.lastSeen = now

	if !b.limiter.AllowN(now, 1) {
		return false, 0
	}
	return true, b.limiter.TokensAt(now)
}

// cleanup periodically drops buckets idle for over an hour.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.prune(time.Hour)
		}
	}
}

func (rl *RateLimiter) prune(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > idle {
			delete(rl.buckets, key)
		}
	}
}

// clientKey identifies the caller: the authenticated user, else the remote IP.
func clientKey(c *gin.Context) string {
	if user := GetUser(c); user != nil {
		return "user:" + user.ID
	}
	return "ip:" + c.ClientIP()
}
