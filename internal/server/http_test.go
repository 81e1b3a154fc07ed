package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/ai-summarizer/internal/conf"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/biz"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/service"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/upstream"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, upstreamURL string, apiMW APIMiddleware) *gin.Engine {
	t.Helper()
	cfg, err := conf.LoadConfig("")
	require.NoError(t, err)
	cfg.Upstream.BaseURL = upstreamURL
	cfg.Upstream.Timeout = time.Second

	log := logger.NewNop()
	client, err := upstream.New(&cfg.Upstream, log)
	require.NoError(t, err)

	gw := service.NewGatewayService(biz.NewForwardUseCase(client, log), &service.Config{MaxUploadBytes: cfg.Server.MaxUploadBytes}, log)
	return NewRouter(cfg, log, gw, apiMW)
}

func TestHealth(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	_, err := time.Parse(time.RFC3339, body["time"])
	assert.NoError(t, err)
}

func TestRouter_ForwardsWithCORS(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"summary":"ok"}`)
	}))
	defer up.Close()

	r := setupRouter(t, up.URL, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/process-topic", strings.NewReader(`{"topic":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"summary":"ok"}`, w.Body.String())
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(logger.RequestIDHeader))
}

func TestRouter_Preflight(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1", nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/process-pdf", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_APIMiddlewareScope(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }
	r := setupRouter(t, "http://127.0.0.1:1", APIMiddleware{deny})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generate-quiz", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_GET_NotAllowed(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/process-topic", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_PanicAnswersGenericFailure(t *testing.T) {
	boom := func(c *gin.Context) { panic("nil map write") }
	r := setupRouter(t, "http://127.0.0.1:1", APIMiddleware{boom})

	for _, path := range []string{"/api/process-topic", "/api/process-pdf", "/api/process-combined", "/api/generate-quiz"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.JSONEq(t, `{"error":"Failed to process request."}`, w.Body.String(), path)
	}
}
