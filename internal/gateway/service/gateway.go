package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/biz"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/types"
	apperrors "github.com/lk2023060901/ai-summarizer/internal/pkg/errors"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/response"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes caps a multipart request body
const DefaultMaxUploadBytes int64 = 32 << 20

// Config holds the request handling limits
type Config struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// Forwarder is what the handlers need from the business layer
type Forwarder interface {
	ForwardTopic(ctx context.Context, topic string) ([]byte, error)
	ForwardPDF(ctx context.Context, file types.FileUpload) ([]byte, error)
	ForwardCombined(ctx context.Context, topic *string, file types.FileUpload) ([]byte, error)
	ForwardQuiz(ctx context.Context, summary string) ([]byte, error)
}

var _ Forwarder = (*biz.ForwardUseCase)(nil)

// GatewayService exposes the /api endpoints
type GatewayService struct {
	forwarder      Forwarder
	maxUploadBytes int64
	logger         *logger.Logger
}

// NewGatewayService creates the gateway HTTP service
func NewGatewayService(fw Forwarder, cfg *Config, log *logger.Logger) *GatewayService {
	limit := DefaultMaxUploadBytes
	if cfg != nil && cfg.MaxUploadBytes > 0 {
		limit = cfg.MaxUploadBytes
	}

	return &GatewayService{
		forwarder:      fw,
		maxUploadBytes: limit,
		logger:         log,
	}
}

// RegisterRoutes mounts the four forwarding endpoints on rg
func (s *GatewayService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/process-topic", s.ProcessTopic)
	rg.POST("/process-pdf", s.ProcessPDF)
	rg.POST("/process-combined", s.ProcessCombined)
	rg.POST("/generate-quiz", s.GenerateQuiz)
}

// ProcessTopic summarizes a free-text topic
// @Summary Summarize a topic
// @Tags gateway
// @Accept json
// @Produce json
// @Param request body types.TopicRequest true "topic"
// @Success 200 {object} types.SummaryResponse
// @Failure 500 {object} response.ErrorBody
// @Router /api/process-topic [post]
func (s *GatewayService) ProcessTopic(c *gin.Context) {
	var req types.TopicRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, apperrors.Wrap(err, apperrors.ErrInvalidParams, "decode topic request"))
		return
	}

	body, err := s.forwarder.ForwardTopic(c.Request.Context(), req.Topic)
	s.reply(c, body, err)
}

// ProcessPDF summarizes an uploaded document
// @Summary Summarize a PDF
// @Tags gateway
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document"
// @Success 200 {object} types.SummaryResponse
// @Failure 500 {object} response.ErrorBody
// @Router /api/process-pdf [post]
func (s *GatewayService) ProcessPDF(c *gin.Context) {
	file, err := s.readUpload(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	body, err := s.forwarder.ForwardPDF(c.Request.Context(), file)
	s.reply(c, body, err)
}

// ProcessCombined summarizes a topic together with an uploaded document
// @Summary Summarize a topic and a PDF
// @Tags gateway
// @Accept multipart/form-data
// @Produce json
// @Param topic formData string false "topic"
// @Param file formData file true "document"
// @Success 200 {object} types.SummaryResponse
// @Failure 500 {object} response.ErrorBody
// @Router /api/process-combined [post]
func (s *GatewayService) ProcessCombined(c *gin.Context) {
	file, err := s.readUpload(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	var topic *string
	if v, ok := c.GetPostForm(biz.FieldTopic); ok {
		topic = &v
	}

	body, err := s.forwarder.ForwardCombined(c.Request.Context(), topic, file)
	s.reply(c, body, err)
}

// GenerateQuiz builds a quiz from a summary
// @Summary Generate a quiz
// @Tags gateway
// @Accept json
// @Produce json
// @Param request body types.QuizRequest true "summary"
// @Success 200 {object} types.QuizResponse
// @Failure 500 {object} response.ErrorBody
// @Router /api/generate-quiz [post]
func (s *GatewayService) GenerateQuiz(c *gin.Context) {
	var req types.QuizRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, apperrors.Wrap(err, apperrors.ErrInvalidParams, "decode quiz request"))
		return
	}

	body, err := s.forwarder.ForwardQuiz(c.Request.Context(), req.Summary)
	s.reply(c, body, err)
}

// readUpload pulls the "file" part out of a size-capped multipart body
func (s *GatewayService) readUpload(c *gin.Context) (types.FileUpload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)

	header, err := c.FormFile(biz.FieldFile)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return types.FileUpload{}, apperrors.Wrapf(err, apperrors.ErrUploadTooLarge, "limit %d bytes", s.maxUploadBytes)
		case errors.Is(err, http.ErrMissingFile):
			return types.FileUpload{}, apperrors.Wrap(err, apperrors.ErrUploadMissingFile)
		default:
			return types.FileUpload{}, apperrors.Wrap(err, apperrors.ErrUploadUnreadable)
		}
	}

	data, err := readFileHeader(header)
	if err != nil {
		return types.FileUpload{}, apperrors.Wrap(err, apperrors.ErrUploadUnreadable)
	}

	return types.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// bindJSON decodes the request body; an empty body decodes as {}
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *GatewayService) reply(c *gin.Context, body []byte, err error) {
	if err != nil {
		s.fail(c, err)
		return
	}
	response.Relay(c, body)
}

// fail logs the cause and answers with the generic failure. Bad client
// input is logged as a warning, upstream trouble as an error.
func (s *GatewayService) fail(c *gin.Context, err error) {
	code := apperrors.ExtractCode(err)
	fields := []zap.Field{
		zap.String("route", c.FullPath()),
		zap.Int("code", code),
		zap.Int("mapped_status", apperrors.GetHTTPStatus(code)),
		zap.String("details", apperrors.GetDetails(err)),
		zap.Error(err),
	}

	log := s.logger.WithContext(c.Request.Context())
	if apperrors.IsUpstream(code) {
		log.Error("request failed", fields...)
	} else {
		log.Warn("request rejected", fields...)
	}
	response.ForwardFailed(c)
}
