package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/types"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes caps the form upload accepted by the UI server
const DefaultMaxUploadBytes int64 = 32 << 20

// multipartMemory is held in memory before parts spill to temp files
const multipartMemory = 8 << 20

// Gateway is the subset of GatewayClient the handler uses
type Gateway interface {
	ProcessTopic(ctx context.Context, topic string) (string, error)
	ProcessPDF(ctx context.Context, file types.FileUpload) (string, error)
	ProcessCombined(ctx context.Context, topic string, file types.FileUpload) (string, error)
	GenerateQuiz(ctx context.Context, summary string) (*types.QuizResponse, error)
}

// HandlerConfig configures the UI handler
type HandlerConfig struct {
	MaxUploadBytes int64
	SummaryFormat  SummaryFormat
}

// Handler serves the page. All state travels with the form.
type Handler struct {
	gateway        Gateway
	maxUploadBytes int64
	summaryFormat  SummaryFormat
	logger         *logger.Logger
}

// NewHandler creates the UI handler
func NewHandler(gw Gateway, cfg HandlerConfig, log *logger.Logger) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.SummaryFormat == "" {
		cfg.SummaryFormat = SummaryText
	}
	return &Handler{
		gateway:        gw,
		maxUploadBytes: cfg.MaxUploadBytes,
		summaryFormat:  cfg.SummaryFormat,
		logger:         log.Named("ui"),
	}
}

// NewRouter builds the UI server
func NewRouter(h *Handler, log *logger.Logger) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(logger.GinRecovery(log))
	r.Use(logger.GinLogger(log))
	r.SetHTMLTemplate(tmpl)
	h.RegisterRoutes(r)
	return r, nil
}

// RegisterRoutes mounts the page routes
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/summarize", h.Summarize)
	r.POST("/quiz", h.Quiz)
}

// Index renders the empty form
func (h *Handler) Index(c *gin.Context) {
	state := ViewState{}
	if mode, err := ParseMode(c.Query("mode")); err == nil {
		state = Update(state, SelectMode{Mode: mode})
	}
	h.render(c, state)
}

// Summarize runs one summarize action
func (h *Handler) Summarize(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	ctx := c.Request.Context()

	formErr := c.Request.ParseMultipartForm(multipartMemory)
	state := h.formState(c)
	if formErr != nil && !errors.Is(formErr, http.ErrNotMultipart) {
		h.logger.WithContext(ctx).Warn("failed to parse form", zap.Error(formErr))
		h.render(c, Update(state, UploadFailed{}))
		return
	}

	var file types.FileUpload
	if state.Mode.NeedsFile() {
		var err error
		file, err = h.readFile(c)
		switch {
		case err == nil:
			state = Update(state, SelectFile{Name: file.Filename})
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		default:
			h.logger.WithContext(ctx).Warn("failed to read upload", zap.Error(err))
			state = Update(state, UploadFailed{})
		}
	}

	if !state.CanSubmit() {
		h.render(c, state)
		return
	}
	state = Update(state, SubmitStarted{})

	var (
		summary string
		err     error
	)
	switch state.Mode {
	case ModePDF:
		summary, err = h.gateway.ProcessPDF(ctx, file)
	case ModeCombined:
		summary, err = h.gateway.ProcessCombined(ctx, state.Topic, file)
	default:
		summary, err = h.gateway.ProcessTopic(ctx, state.Topic)
	}

	if err != nil {
		h.logger.WithContext(ctx).Warn("summarize failed", zap.String("mode", state.Mode.String()), zap.Error(err))
		state = Update(state, SummaryFailed{})
	} else {
		state = Update(state, SummaryLoaded{Summary: summary})
	}
	h.render(c, state)
}

// Quiz runs one quiz action against the summary carried in the form
func (h *Handler) Quiz(c *gin.Context) {
	state := h.formState(c)
	state.Summary = c.PostForm("summary")

	if !state.CanQuiz() {
		h.render(c, state)
		return
	}
	state = Update(state, QuizStarted{})

	ctx := c.Request.Context()
	quiz, err := h.gateway.GenerateQuiz(ctx, state.Summary)
	if err != nil {
		h.logger.WithContext(ctx).Warn("quiz failed", zap.Error(err))
		state = Update(state, QuizFailed{})
	} else {
		state = Update(state, QuizLoaded{Quiz: quiz})
	}
	h.render(c, state)
}

// formState rebuilds the view state from submitted fields. The mode falls
// back to the query string when the form body could not be read.
func (h *Handler) formState(c *gin.Context) ViewState {
	state := ViewState{}
	raw := c.PostForm("mode")
	if raw == "" {
		raw = c.Query("mode")
	}
	mode, err := ParseMode(raw)
	if err != nil {
		h.logger.Debug("unknown mode, using web", zap.Error(err))
	}
	state = Update(state, SelectMode{Mode: mode})
	return Update(state, EditTopic{Topic: c.PostForm("topic")})
}

func (h *Handler) readFile(c *gin.Context) (types.FileUpload, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return types.FileUpload{}, err
	}

	f, err := header.Open()
	if err != nil {
		return types.FileUpload{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return types.FileUpload{}, fmt.Errorf("read upload: %w", err)
	}

	return types.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *Handler) render(c *gin.Context, state ViewState) {
	c.HTML(http.StatusOK, PageTemplate, newPage(state, h.summaryFormat))
}
