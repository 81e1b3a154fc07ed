package injector

import (
	"github.com/lk2023060901/ai-summarizer/internal/conf"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/service"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/upstream"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/middleware"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/redis"
	"github.com/lk2023060901/ai-summarizer/internal/server"
	"go.uber.org/zap"
)

// App encapsulates all application dependencies
type App struct {
	Config     *conf.Config
	Logger     *logger.Logger
	HTTPServer *server.HTTPServer
}

func newApp(config *conf.Config, log *logger.Logger, httpServer *server.HTTPServer) *App {
	return &App{
		Config:     config,
		Logger:     log,
		HTTPServer: httpServer,
	}
}

// Provider functions for dependencies that need configuration plumbing

func provideUpstreamConfig(config *conf.Config) *upstream.Config {
	return &config.Upstream
}

func provideUpstreamClient(cfg *upstream.Config, log *logger.Logger) (*upstream.Client, func(), error) {
	client, err := upstream.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	log.Info("upstream client ready",
		zap.String("base_url", client.BaseURL()),
		zap.Duration("timeout", cfg.Timeout),
	)

	return client, func() { _ = client.Close() }, nil
}

func provideServiceConfig(config *conf.Config) *service.Config {
	return &service.Config{MaxUploadBytes: config.Server.MaxUploadBytes}
}

// provideAPIMiddleware builds the optional rate limiter. Redis is only
// dialed when rate limiting is enabled.
func provideAPIMiddleware(config *conf.Config, log *logger.Logger) (server.APIMiddleware, func(), error) {
	if !config.RateLimit.Enabled {
		return nil, func() {}, nil
	}

	rdb, err := redis.New(&config.Redis, log)
	if err != nil {
		return nil, nil, err
	}

	log.Info("rate limiting enabled",
		zap.String("strategy", config.RateLimit.Strategy),
		zap.Int("max_requests", config.RateLimit.MaxRequests),
		zap.Int("window_seconds", config.RateLimit.WindowSeconds),
	)

	limiter := middleware.RateLimiter(rdb, config.RateLimit, log)
	cleanup := func() {
		if err := rdb.Close(); err != nil {
			log.Warn("failed to close redis client", zap.Error(err))
		}
	}

	return server.APIMiddleware{limiter}, cleanup, nil
}
