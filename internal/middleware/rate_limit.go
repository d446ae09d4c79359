package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/time/rate"

	"sociogram/internal/utils"
	"sociogram/pkg/constants"
	"sociogram/pkg/logger"
)

// RateLimiter throttles engagement writes per user. Counters live in Redis
// when a client is configured; otherwise an in-process token bucket per
// user is used.
type RateLimiter struct {
	redis    *redis.Client
	limit    int
	window   time.Duration
	logger   *logger.Logger
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiter creates a rate limiter allowing limit requests per window.
func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = constants.MaxEngagementPerMinute
	}
	if window <= 0 {
		window = constants.RateLimitTTL
	}
	return &RateLimiter{
		redis:    redisClient,
		limit:    limit,
		window:   window,
		logger:   logger.NewComponentLogger("RateLimiter"),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Limit enforces the per-user rate on authenticated routes. Unauthenticated
// requests are keyed by client IP.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if value, exists := c.Get("user_id"); exists {
			if userID, ok := value.(primitive.ObjectID); ok {
				key = userID.Hex()
			}
		}

		allowed := rl.allow(c, key)
		if !allowed {
			utils.TooManyRequests(c, "Too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(c *gin.Context, key string) bool {
	if rl.redis != nil {
		allowed, err := rl.allowRedis(c, key)
		if err == nil {
			return allowed
		}
		// Redis being down never blocks traffic.
		rl.logger.WithError(err).Warn("Rate limit check failed, falling back to local limiter")
	}
	return rl.allowLocal(key)
}

func (rl *RateLimiter) allowRedis(c *gin.Context, key string) (bool, error) {
	ctx := c.Request.Context()
	redisKey := constants.RateLimitPrefix + key

	count, err := rl.redis.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := rl.redis.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			return false, err
		}
	}
	if count > int64(rl.limit) {
		return false, nil
	}

	c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
	c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", int64(rl.limit)-count))
	return true, nil
}

func (rl *RateLimiter) allowLocal(key string) bool {
	rl.mu.Lock()
	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(rl.limit)/rl.window.Seconds()), rl.limit)
		rl.limiters[key] = limiter
	}
	rl.mu.Unlock()
	return limiter.Allow()
}
