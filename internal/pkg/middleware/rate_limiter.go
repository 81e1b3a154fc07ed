package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/lk2023060901/ai-summarizer/internal/pkg/errors"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/response"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/validator"
	"go.uber.org/zap"
)

// Rate limiting strategies
const (
	StrategyIP       = "ip"
	StrategyEndpoint = "endpoint"
)

// Evaler runs a Lua script; *redis.Client satisfies it
type Evaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)
}

// RateLimiterConfig configures the sliding window limiter
type RateLimiterConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// MaxRequests allowed per window
	MaxRequests int `mapstructure:"max_requests" yaml:"max_requests"`
	// WindowSeconds is the window length
	WindowSeconds int `mapstructure:"window_seconds" yaml:"window_seconds"`
	// Strategy is "ip" (default) or "endpoint"
	Strategy string `mapstructure:"strategy" yaml:"strategy"`
	// KeyPrefix namespaces the Redis keys
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix"`
}

// DefaultRateLimiterConfig returns a disabled limiter: 60 requests per minute per IP
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Enabled:       false,
		MaxRequests:   60,
		WindowSeconds: 60,
		Strategy:      StrategyIP,
		KeyPrefix:     "rate_limit",
	}
}

// Sliding window over a sorted set. Members are unique per request so that
// bursts inside the same second are all counted.
const slidingWindowScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, 0, now - window * 1000)

local current = redis.call('ZCARD', key)
if current < limit then
	redis.call('ZADD', key, now, member)
	redis.call('PEXPIRE', key, window * 1000)
	return {1, limit - current - 1, math.floor((now + window * 1000) / 1000)}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')[2]
return {0, 0, math.floor((tonumber(oldest) + window * 1000) / 1000)}
`

// RateLimiter limits requests with a Redis sliding window.
// When Redis is unavailable the request is let through.
func RateLimiter(store Evaler, cfg RateLimiterConfig, log *logger.Logger) gin.HandlerFunc {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 60
	}
	if cfg.WindowSeconds <= 0 {
		cfg.WindowSeconds = 60
	}
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyIP
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rate_limit"
	}

	return func(c *gin.Context) {
		key := buildRateLimitKey(c, cfg)
		ctx := c.Request.Context()

		allowed, remaining, resetAt, err := checkRateLimit(ctx, store, key, cfg)
		if err != nil {
			log.WithContext(ctx).Warn("rate limiter unavailable, allowing request",
				zap.String("key", key),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt))

		if !allowed {
			limited := apperrors.New(apperrors.ErrTooManyRequests, key)
			log.WithContext(ctx).Warn("request rate limited",
				zap.Int("code", limited.Code),
				zap.String("key", key),
				zap.Int64("reset_at", resetAt),
			)
			c.Header("Retry-After", fmt.Sprintf("%d", cfg.WindowSeconds))
			response.Error(c, limited.HTTPStatus(), limited.Message)
			return
		}

		c.Next()
	}
}

func buildRateLimitKey(c *gin.Context, cfg RateLimiterConfig) string {
	switch cfg.Strategy {
	case StrategyEndpoint:
		return fmt.Sprintf("%s:endpoint:%s:%s", cfg.KeyPrefix, c.Request.URL.Path, validator.ClientKey(c.ClientIP()))
	default:
		return fmt.Sprintf("%s:ip:%s", cfg.KeyPrefix, validator.ClientKey(c.ClientIP()))
	}
}

func checkRateLimit(ctx context.Context, store Evaler, key string, cfg RateLimiterConfig) (allowed bool, remaining int, resetAt int64, err error) {
	now := time.Now().UnixMilli()
	member := logger.GetRequestID(ctx)
	if member == "" {
		member = uuid.NewString()
	}

	result, err := store.Eval(ctx, slidingWindowScript, []string{key}, now, cfg.WindowSeconds, cfg.MaxRequests, member)
	if err != nil {
		return false, 0, 0, err
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 3 {
		return false, 0, 0, fmt.Errorf("invalid rate limit result: %v", result)
	}

	allowedInt, _ := values[0].(int64)
	remainingInt, _ := values[1].(int64)
	resetInt, _ := values[2].(int64)

	return allowedInt == 1, int(remainingInt), resetInt, nil
}
