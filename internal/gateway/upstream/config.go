package upstream

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config describes how the gateway reaches the summarization service
type Config struct {
	// BaseURL of the upstream service, e.g. http://127.0.0.1:8000
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Timeout bounds one upstream call end to end
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// UserAgent sent on outbound requests
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// DefaultConfig returns the default upstream configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "http://127.0.0.1:8000",
		Timeout:   60 * time.Second,
		UserAgent: "ai-summarizer-gateway/1.0",
	}
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("upstream: base_url is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("upstream: base_url must be an absolute http(s) URL")
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}

	if c.UserAgent == "" {
		c.UserAgent = "ai-summarizer-gateway/1.0"
	}

	return nil
}
