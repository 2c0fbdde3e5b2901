package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type window struct {
	start time.Time
	count int
}

// memoryLimiter is a fixed-window limiter keyed by client IP. It backs
// RateLimit when no Redis address is configured.
type memoryLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	clients map[string]*window
}

func newMemoryLimiter(max int, win time.Duration) *memoryLimiter {
	return &memoryLimiter{
		max:     max,
		window:  win,
		clients: make(map[string]*window),
	}
}

func (l *memoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.clients[key]
	if !ok || now.Sub(w.start) > l.window {
		l.clients[key] = &window{start: now, count: 1}
		return true
	}
	w.count++
	return w.count <= l.max
}

// RateLimit limits requests per client IP over a fixed window. It uses
// Redis when InitRedis connected a client, falling back to an in-process
// limiter otherwise (single instance, best effort).
func RateLimit(max int, win time.Duration) gin.HandlerFunc {
	mem := newMemoryLimiter(max, win)

	return func(c *gin.Context) {
		rlRequests.WithLabelValues(c.FullPath()).Inc()

		var allowed bool
		if redisClient != nil {
			allowed = redisAllow(c, max, win)
		} else {
			allowed = mem.Allow(c.ClientIP())
		}

		if !allowed {
			rlBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
