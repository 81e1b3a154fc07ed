package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lk2023060901/ai-summarizer/internal/pkg/formdata"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/httpclient"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Upstream endpoint paths
const (
	PathSummarizeWeb      = "/summarize-web"
	PathSummarizePDF      = "/summarize-pdf"
	PathSummarizeCombined = "/summarize-combined"
	PathGenerateQuiz      = "/generate-quiz"
)

const (
	maxResponseBytes = 16 << 20
	maxLoggedBody    = 512
)

// Client is the outbound HTTP client for the summarization service.
// It never retries: one call in, one call out.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *logger.Logger
}

// New creates an upstream client
func New(cfg *Config, log *logger.Logger) (*Client, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Client{
		config:     cfg,
		httpClient: httpclient.New(cfg.Timeout),
		logger:     log.Named("upstream"),
	}, nil
}

// BaseURL returns the normalized upstream base URL
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// PostJSON sends payload as a JSON body and returns the raw response body
func (c *Client) PostJSON(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return c.do(ctx, path, "application/json", bytes.NewReader(data))
}

// PostMultipart sends fields and files as multipart/form-data and returns the raw response body
func (c *Client) PostMultipart(ctx context.Context, path string, fields []formdata.Field, files []formdata.File) ([]byte, error) {
	body, contentType, err := formdata.Build(fields, files)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	return c.do(ctx, path, contentType, body)
}

func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	url := c.config.BaseURL + path
	log := c.logger.WithContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		req.Header.Set(logger.RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("upstream request failed",
			zap.String("url", url),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	log.Debug("upstream response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(respData)),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       truncate(respData, maxLoggedBody),
		}
	}

	if !gjson.ValidBytes(respData) {
		return nil, fmt.Errorf("%w (path=%s, bytes=%d)", ErrInvalidResponse, path, len(respData))
	}

	return respData, nil
}

// Close releases idle connections
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
