package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client wraps a go-redis client. The gateway only needs it for rate limiting.
type Client struct {
	config *Config
	logger *logger.Logger
	rdb    *redis.Client
}

// New connects to Redis and pings it once
func New(cfg *Config, log *logger.Logger) (*Client, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	client := &Client{
		config: cfg,
		logger: log.Named("redis"),
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,

			PoolSize:     cfg.PoolSize,
			MinIdleConns: cfg.MinIdleConns,

			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			PoolTimeout:  cfg.PoolTimeout,

			MaxRetries: cfg.MaxRetries,
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	client.logger.Info("redis client initialized", zap.String("addr", cfg.Addr))
	return client, nil
}

// Ping checks the connection
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Eval runs a Lua script
func (c *Client) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	result, err := c.rdb.Eval(ctx, script, keys, args...).Result()
	if err != nil {
		c.logger.Error("redis eval failed",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
	return result, err
}

// Close closes the connection pool
func (c *Client) Close() error {
	if err := c.rdb.Close(); err != nil && !IsClosed(err) {
		return err
	}
	return nil
}
