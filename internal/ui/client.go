package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lk2023060901/ai-summarizer/internal/gateway/types"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/formdata"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/httpclient"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ErrGatewayFailed covers every failed gateway call
var ErrGatewayFailed = errors.New("gateway request failed")

// GatewayClient calls the gateway's /api endpoints on behalf of the UI
type GatewayClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewGatewayClient creates a client for the gateway at baseURL
func NewGatewayClient(baseURL string, timeout time.Duration, log *logger.Logger) *GatewayClient {
	return &GatewayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpclient.New(timeout),
		logger:     log.Named("gateway-client"),
	}
}

// ProcessTopic returns the summary for a topic
func (g *GatewayClient) ProcessTopic(ctx context.Context, topic string) (string, error) {
	data, err := json.Marshal(types.TopicRequest{Topic: topic})
	if err != nil {
		return "", g.fail("/api/process-topic", err)
	}
	return g.summary(ctx, "/api/process-topic", "application/json", bytes.NewReader(data))
}

// ProcessPDF returns the summary for an uploaded document
func (g *GatewayClient) ProcessPDF(ctx context.Context, file types.FileUpload) (string, error) {
	return g.multipartSummary(ctx, "/api/process-pdf", nil, file)
}

// ProcessCombined returns the summary for a topic plus document
func (g *GatewayClient) ProcessCombined(ctx context.Context, topic string, file types.FileUpload) (string, error) {
	return g.multipartSummary(ctx, "/api/process-combined", []formdata.Field{{Name: "topic", Value: topic}}, file)
}

// GenerateQuiz returns a quiz built from summary
func (g *GatewayClient) GenerateQuiz(ctx context.Context, summary string) (*types.QuizResponse, error) {
	data, err := json.Marshal(types.QuizRequest{Summary: summary})
	if err != nil {
		return nil, g.fail("/api/generate-quiz", err)
	}

	body, err := g.post(ctx, "/api/generate-quiz", "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var quiz types.QuizResponse
	if err := json.Unmarshal(body, &quiz); err != nil {
		return nil, g.fail("/api/generate-quiz", fmt.Errorf("decode quiz: %w", err))
	}
	return &quiz, nil
}

func (g *GatewayClient) multipartSummary(ctx context.Context, path string, fields []formdata.Field, file types.FileUpload) (string, error) {
	body, contentType, err := formdata.Build(fields, []formdata.File{{
		FieldName:   "file",
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Data:        file.Data,
	}})
	if err != nil {
		return "", g.fail(path, err)
	}
	return g.summary(ctx, path, contentType, body)
}

// summary posts and extracts the "summary" field of the reply
func (g *GatewayClient) summary(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	data, err := g.post(ctx, path, contentType, body)
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(data, "summary").String(), nil
}

func (g *GatewayClient) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, body)
	if err != nil {
		return nil, g.fail(path, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		req.Header.Set(logger.RequestIDHeader, requestID)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, g.fail(path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, g.fail(path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, g.fail(path, fmt.Errorf("status %d: %s", resp.StatusCode, gjson.GetBytes(data, "error").String()))
	}
	if !gjson.ValidBytes(data) {
		return nil, g.fail(path, errors.New("reply is not JSON"))
	}

	return data, nil
}

func (g *GatewayClient) fail(path string, err error) error {
	g.logger.Warn("gateway call failed", zap.String("path", path), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", ErrGatewayFailed, path, err)
}
