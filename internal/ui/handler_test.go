package ui

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/types"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGateway struct {
	calls   []string
	topic   string
	file    types.FileUpload
	summary string
	quiz    *types.QuizResponse
	err     error
}

func (f *fakeGateway) ProcessTopic(_ context.Context, topic string) (string, error) {
	f.calls = append(f.calls, "topic")
	f.topic = topic
	return f.summary, f.err
}

func (f *fakeGateway) ProcessPDF(_ context.Context, file types.FileUpload) (string, error) {
	f.calls = append(f.calls, "pdf")
	f.file = file
	return f.summary, f.err
}

func (f *fakeGateway) ProcessCombined(_ context.Context, topic string, file types.FileUpload) (string, error) {
	f.calls = append(f.calls, "combined")
	f.topic, f.file = topic, file
	return f.summary, f.err
}

func (f *fakeGateway) GenerateQuiz(_ context.Context, summary string) (*types.QuizResponse, error) {
	f.calls = append(f.calls, "quiz:"+summary)
	return f.quiz, f.err
}

func setupUI(t *testing.T, gw Gateway) *gin.Engine {
	return setupUIWithConfig(t, gw, HandlerConfig{})
}

func setupUIWithConfig(t *testing.T, gw Gateway, cfg HandlerConfig) *gin.Engine {
	t.Helper()
	log := logger.NewNop()
	r, err := NewRouter(NewHandler(gw, cfg, log), log)
	require.NoError(t, err)
	return r
}

func postForm(r http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postUpload(t *testing.T, r http.Handler, mode, topic string) *httptest.ResponseRecorder {
	return postUploadTo(t, r, "/summarize", mode, topic)
}

func postUploadTo(t *testing.T, r http.Handler, path, mode, topic string) *httptest.ResponseRecorder {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.WriteField("mode", mode))
	if topic != "" {
		require.NoError(t, mw.WriteField("topic", topic))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, "paper.pdf"))
	h.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.7"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	r := setupUI(t, &fakeGateway{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?mode=pdf", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AI-Powered Summarizer")
	assert.Contains(t, w.Body.String(), `type="file"`)
}

func TestSummarize_Topic(t *testing.T) {
	gw := &fakeGateway{summary: "Quantum computing is..."}
	r := setupUI(t, gw)

	w := postForm(r, "/summarize", url.Values{"mode": {"web"}, "topic": {"Quantum Computing"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"topic"}, gw.calls)
	assert.Equal(t, "Quantum Computing", gw.topic)

	body := w.Body.String()
	i := strings.Index(body, "<h2>Summary:</h2>")
	require.GreaterOrEqual(t, i, 0)
	assert.Contains(t, body[i:], "Quantum computing is...")
}

func TestSummarize_EmptyTopicMakesNoCall(t *testing.T) {
	gw := &fakeGateway{}
	r := setupUI(t, gw)

	w := postForm(r, "/summarize", url.Values{"mode": {"web"}, "topic": {""}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, gw.calls)
}

func TestSummarize_Upload(t *testing.T) {
	gw := &fakeGateway{summary: "pdf summary"}
	r := setupUI(t, gw)

	w := postUpload(t, r, "pdf", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"pdf"}, gw.calls)
	assert.Equal(t, "paper.pdf", gw.file.Filename)
	assert.Equal(t, "application/pdf", gw.file.ContentType)
	assert.Equal(t, []byte("%PDF-1.7"), gw.file.Data)

	w = postUpload(t, r, "combined", "Quantum Computing")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"pdf", "combined"}, gw.calls)
	assert.Equal(t, "Quantum Computing", gw.topic)
}

func TestSummarize_CombinedWithoutTopicMakesNoCall(t *testing.T) {
	gw := &fakeGateway{}
	r := setupUI(t, gw)

	postUpload(t, r, "combined", "")
	assert.Empty(t, gw.calls)
}

func TestSummarize_Failure(t *testing.T) {
	gw := &fakeGateway{err: ErrGatewayFailed}
	r := setupUI(t, gw)

	w := postForm(r, "/summarize", url.Values{"mode": {"web"}, "topic": {"x"}})

	assert.Contains(t, w.Body.String(), SummaryErrorText)
	assert.NotContains(t, w.Body.String(), "<h2>Summary:</h2>")
}

func TestQuiz(t *testing.T) {
	gw := &fakeGateway{quiz: sampleQuiz()}
	r := setupUI(t, gw)

	w := postForm(r, "/quiz", url.Values{"mode": {"web"}, "topic": {"x"}, "summary": {"Quantum computing is..."}})

	assert.Equal(t, []string{"quiz:Quantum computing is..."}, gw.calls)
	body := w.Body.String()
	assert.Equal(t, 3, strings.Count(body, `<div class="question">`))
	assert.Contains(t, body, "<h2>Summary:</h2>")
}

func TestQuiz_Failure(t *testing.T) {
	gw := &fakeGateway{err: ErrGatewayFailed}
	r := setupUI(t, gw)

	w := postForm(r, "/quiz", url.Values{"summary": {"s"}})
	assert.Contains(t, w.Body.String(), QuizErrorText)

	gw.calls = nil
	postForm(r, "/quiz", url.Values{"summary": {""}})
	assert.Empty(t, gw.calls, "no summary, no call")
}

func TestSummarize_UploadTooLarge(t *testing.T) {
	gw := &fakeGateway{summary: "never"}
	r := setupUIWithConfig(t, gw, HandlerConfig{MaxUploadBytes: 64})

	w := postUploadTo(t, r, "/summarize?mode=pdf", "pdf", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, gw.calls)
	body := w.Body.String()
	assert.Contains(t, body, UploadErrorText)
	assert.Contains(t, body, `type="file"`, "mode survives through the query string")
	assert.NotContains(t, body, "<h2>Summary:</h2>")
}

func TestSummarize_MissingFileShowsNoBanner(t *testing.T) {
	gw := &fakeGateway{}
	r := setupUI(t, gw)

	w := postForm(r, "/summarize", url.Values{"mode": {"pdf"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, gw.calls)
	assert.NotContains(t, w.Body.String(), UploadErrorText)
}

func TestSummarize_ShowsSummaryVerbatim(t *testing.T) {
	summary := "# Not a heading\nThe **bold** claim: wrap content in a <div> element."
	gw := &fakeGateway{summary: summary}
	r := setupUI(t, gw)

	w := postForm(r, "/summarize", url.Values{"mode": {"web"}, "topic": {"HTML"}})

	body := w.Body.String()
	assert.Contains(t, body, `<p class="summary text"># Not a heading
The **bold** claim: wrap content in a &lt;div&gt; element.</p>`)
	assert.NotContains(t, body, "<h1>Not a heading</h1>")
	assert.NotContains(t, body, "<strong>")
}
