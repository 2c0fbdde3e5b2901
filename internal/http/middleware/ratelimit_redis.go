package middleware

import (
	"context"
	"strconv"
	"time"

	"taskmanager/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client used by RateLimit so the
// limit holds across instances. A failed ping leaves the client nil and
// the limiter falls back to in-memory counting.
func InitRedis(addr, password string, db int) {
	if addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiting falls back to in-memory", "error", err)
		return
	}
	redisClient = client
}

// redisAllow implements a fixed window with INCR/EXPIRE. Redis errors
// fail open so a broken cache never takes the service down.
func redisAllow(c *gin.Context, max int, win time.Duration) bool {
	key := "rl:" + strconv.FormatInt(int64(win.Seconds()), 10) + ":" + c.ClientIP()
	ctx := c.Request.Context()

	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		c.Header("X-RateLimit-Error", "redis-error")
		return true
	}
	if val == 1 {
		redisClient.Expire(ctx, key, win)
	}
	return val <= int64(max)
}
