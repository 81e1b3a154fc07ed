package ui

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lk2023060901/ai-summarizer/internal/gateway/types"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T, handler http.HandlerFunc) *GatewayClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGatewayClient(srv.URL+"/", time.Second, logger.NewNop())
}

func TestGatewayClient_ProcessTopic(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/process-topic", r.URL.Path)
		var req types.TopicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Quantum Computing", req.Topic)
		_, _ = io.WriteString(w, `{"summary":"Quantum computing is..."}`)
	})

	summary, err := client.ProcessTopic(context.Background(), "Quantum Computing")
	require.NoError(t, err)
	assert.Equal(t, "Quantum computing is...", summary)
}

func TestGatewayClient_Uploads(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, fh, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "paper.pdf", fh.Filename)
		assert.Equal(t, "application/pdf", fh.Header.Get("Content-Type"))

		switch r.URL.Path {
		case "/api/process-pdf":
			assert.Empty(t, r.MultipartForm.Value["topic"])
		case "/api/process-combined":
			assert.Equal(t, []string{"Quantum"}, r.MultipartForm.Value["topic"])
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"summary":"ok"}`)
	})

	file := types.FileUpload{Filename: "paper.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}

	summary, err := client.ProcessPDF(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, "ok", summary)

	summary, err = client.ProcessCombined(context.Background(), "Quantum", file)
	require.NoError(t, err)
	assert.Equal(t, "ok", summary)
}

func TestGatewayClient_GenerateQuiz(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sampleQuiz())
	})

	quiz, err := client.GenerateQuiz(context.Background(), "summary")
	require.NoError(t, err)
	assert.Equal(t, sampleQuiz(), quiz)
}

func TestGatewayClient_Failures(t *testing.T) {
	generic := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"Failed to process request."}`)
	})
	notJSON := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "oops")
	})
	down := NewGatewayClient("http://127.0.0.1:1", time.Second, logger.NewNop())

	for name, client := range map[string]*GatewayClient{"500": generic, "not json": notJSON, "down": down} {
		t.Run(name, func(t *testing.T) {
			_, err := client.ProcessTopic(context.Background(), "x")
			assert.True(t, errors.Is(err, ErrGatewayFailed))

			_, err = client.GenerateQuiz(context.Background(), "x")
			assert.True(t, errors.Is(err, ErrGatewayFailed))
		})
	}
}
