package middleware

import (
	"context"
	"time"

	"contentcraft-api/internal/config"
	"contentcraft-api/internal/logger"
	"contentcraft-api/internal/services"

	"github.com/sirupsen/logrus"
)

// RedisRateLimiter shares window counters across handler replicas
// through the cache layer. Use it instead of MemoryRateLimiter when
// the API runs more than one instance.
type RedisRateLimiter struct {
	cache  services.CacheService
	max    int
	window time.Duration
}

func NewRedisRateLimiter(cache services.CacheService, cfg *config.RateLimitConfig) *RedisRateLimiter {
	return &RedisRateLimiter{
		cache:  cache,
		max:    cfg.MaxRequests,
		window: cfg.Window,
	}
}

func (rl *RedisRateLimiter) Allow(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	count, err := rl.cache.Increment(ctx, "ratelimit:"+key, rl.window)
	if err != nil {
		// An unreachable counter store should not take the API down
		// with it; let the request through and log.
		logger.LogEvent(logrus.WarnLevel, "Rate limit counter unavailable, allowing request", logrus.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return true
	}
	return count <= int64(rl.max)
}
