package conf

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lk2023060901/ai-summarizer/internal/gateway/upstream"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/middleware"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/redis"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// DefaultConfigPath is read when no -config flag is given. It may be absent.
const DefaultConfigPath = "configs/config.yaml"

type Config struct {
	Server    ServerConfig                 `mapstructure:"server"`
	Upstream  upstream.Config              `mapstructure:"upstream"`
	CORS      middleware.CORSConfig        `mapstructure:"cors"`
	RateLimit middleware.RateLimiterConfig `mapstructure:"rate_limit"`
	Redis     redis.Config                 `mapstructure:"redis"`
	Web       WebConfig                    `mapstructure:"web"`
	Stub      StubConfig                   `mapstructure:"stub"`
	Log       logger.Config                `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug, release, test
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// WebConfig configures the browser UI server
type WebConfig struct {
	Host       string        `mapstructure:"host"`
	Port       int           `mapstructure:"port"`
	GatewayURL string        `mapstructure:"gateway_url"`
	Timeout    time.Duration `mapstructure:"timeout"`

	// SummaryFormat is "text" (shown verbatim) or "markdown"
	SummaryFormat string `mapstructure:"summary_format"`
}

// StubConfig configures the placeholder upstream used in development
type StubConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns host:port
func (c ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Addr returns host:port
func (c WebConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Addr returns host:port
func (c StubConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// legacyEnv maps config keys to the plain variable names deployments already use
var legacyEnv = map[string][]string{
	"server.port":       {"SERVER_PORT", "PORT"},
	"upstream.base_url": {"UPSTREAM_BASE_URL", "FASTAPI_URL"},
	"web.port":          {"WEB_PORT"},
	"web.gateway_url":   {"WEB_GATEWAY_URL", "GATEWAY_URL"},
	"stub.port":         {"STUB_PORT"},
	"redis.addr":        {"REDIS_ADDR"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_upload_bytes", int64(32<<20))
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	up := upstream.DefaultConfig()
	v.SetDefault("upstream.base_url", up.BaseURL)
	v.SetDefault("upstream.timeout", up.Timeout)
	v.SetDefault("upstream.user_agent", up.UserAgent)

	cors := middleware.DefaultCORSConfig()
	v.SetDefault("cors.allow_origins", cors.AllowOrigins)
	v.SetDefault("cors.max_age", cors.MaxAge)

	rl := middleware.DefaultRateLimiterConfig()
	v.SetDefault("rate_limit.enabled", rl.Enabled)
	v.SetDefault("rate_limit.max_requests", rl.MaxRequests)
	v.SetDefault("rate_limit.window_seconds", rl.WindowSeconds)
	v.SetDefault("rate_limit.strategy", rl.Strategy)
	v.SetDefault("rate_limit.key_prefix", rl.KeyPrefix)

	rd := redis.DefaultConfig()
	v.SetDefault("redis.addr", rd.Addr)
	v.SetDefault("redis.username", rd.Username)
	v.SetDefault("redis.password", rd.Password)
	v.SetDefault("redis.db", rd.DB)
	v.SetDefault("redis.pool_size", rd.PoolSize)
	v.SetDefault("redis.min_idle_conns", rd.MinIdleConns)
	v.SetDefault("redis.dial_timeout", rd.DialTimeout)
	v.SetDefault("redis.read_timeout", rd.ReadTimeout)
	v.SetDefault("redis.write_timeout", rd.WriteTimeout)
	v.SetDefault("redis.pool_timeout", rd.PoolTimeout)
	v.SetDefault("redis.max_retries", rd.MaxRetries)

	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", 3000)
	v.SetDefault("web.gateway_url", "http://localhost:5000")
	v.SetDefault("web.timeout", 90*time.Second)
	v.SetDefault("web.summary_format", "text")

	v.SetDefault("stub.host", "0.0.0.0")
	v.SetDefault("stub.port", 8000)

	lg := logger.DefaultConfig()
	v.SetDefault("log.level", lg.Level)
	v.SetDefault("log.format", lg.Format)
	v.SetDefault("log.output", lg.Output)
	v.SetDefault("log.enablecaller", lg.EnableCaller)
	v.SetDefault("log.enablestacktrace", lg.EnableStacktrace)
	v.SetDefault("log.file.filename", lg.File.Filename)
	v.SetDefault("log.file.maxsize", lg.File.MaxSize)
	v.SetDefault("log.file.maxage", lg.File.MaxAge)
	v.SetDefault("log.file.maxbackups", lg.File.MaxBackups)
	v.SetDefault("log.file.compress", lg.File.Compress)
}

// LoadEnvFiles loads .env style files into the process environment.
// Missing files are skipped and variables already set are not overwritten.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := gotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// and the environment, in increasing order of precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range legacyEnv {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) || path != DefaultConfigPath {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Validate checks the settings the gateway depends on
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return errors.New("server.max_upload_bytes must be > 0")
	}
	if err := c.Upstream.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.RateLimit.Enabled {
		switch c.RateLimit.Strategy {
		case middleware.StrategyIP, middleware.StrategyEndpoint:
		default:
			return fmt.Errorf("rate_limit.strategy must be %q or %q", middleware.StrategyIP, middleware.StrategyEndpoint)
		}
		if err := c.Redis.Validate(); err != nil {
			return err
		}
	}
	return nil
}
