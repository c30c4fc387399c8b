package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-candidate-admin/internal/delivery/http/response"
	"go-candidate-admin/pkg/logger"
	"go-candidate-admin/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RateLimitConfig struct {
	// Requests per window
	Limit  int
	Window time.Duration
	// KeyFunc picks the bucket, the client IP by default
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// FailClosed rejects requests when redis errors instead of falling back
	// to the in-memory counter
	FailClosed bool
	// Client overrides the shared redis client
	Client *goredis.Client
	// Reject writes the refusal, a JSON envelope by default. It must abort.
	Reject func(c *gin.Context, status int, message string)
}

func rejectJSON(c *gin.Context, status int, message string) {
	response.Error(c, status, message, nil)
	c.Abort()
}

// SubmitRateLimitConfig limits form submissions per client IP.
func SubmitRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:submit:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// INCR with the TTL set on the first hit. Returns {count, ttl}.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

type windowCounter struct {
	count   int
	resetAt time.Time
}

// memoryLimiter is the per-process fallback used without redis.
type memoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowCounter
}

func (m *memoryLimiter) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) > 10000 {
		for k, e := range m.entries {
			if now.After(e.resetAt) {
				delete(m.entries, k)
			}
		}
	}
	e, ok := m.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &windowCounter{resetAt: now.Add(window)}
		m.entries[key] = e
	}
	e.count++
	return e.count, e.resetAt
}

// RateLimitMiddleware counts requests in fixed windows, in redis when
// available and in memory otherwise.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if config.Reject == nil {
		config.Reject = rejectJSON
	}
	fallback := &memoryLimiter{entries: make(map[string]*windowCounter)}

	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		client := config.Client
		if client == nil {
			client = redis.Client()
		}

		var count int
		var resetAt time.Time
		if client != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), client, key, config.Window)
			if err != nil {
				logger.Log.Warn("rate limit redis error", zap.String("key", key), zap.Error(err))
				if config.FailClosed {
					config.Reject(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.")
					return
				}
				count, resetAt = fallback.hit(key, config.Window, time.Now())
			}
		} else {
			count, resetAt = fallback.hit(key, config.Window, time.Now())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := max(int(time.Until(resetAt).Seconds()), 1)
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logger.Log.Warn("rate limit triggered",
				zap.String("ip", c.ClientIP()),
				zap.String("route", c.FullPath()),
				zap.String("request_id", requestID(c)),
			)
			config.Reject(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(config.Limit-count, 0)))
		c.Next()
	}
}

func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	res, err := rateLimitScript.Run(ctx, client, []string{key}, int(window.Seconds())).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit: %w", err)
	}
	if len(res) < 2 {
		return 0, time.Time{}, fmt.Errorf("redis rate limit: unexpected reply %v", res)
	}
	return int(res[0]), time.Now().Add(time.Duration(res[1]) * time.Second), nil
}
