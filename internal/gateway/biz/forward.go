package biz

import (
	"context"
	"errors"
	"net"

	"github.com/lk2023060901/ai-summarizer/internal/gateway/types"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/upstream"
	apperrors "github.com/lk2023060901/ai-summarizer/internal/pkg/errors"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/formdata"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"go.uber.org/zap"
)

// Form field names shared with the upstream service
const (
	FieldTopic = "topic"
	FieldFile  = "file"
)

// Upstream is the outbound side of the gateway
type Upstream interface {
	PostJSON(ctx context.Context, path string, payload interface{}) ([]byte, error)
	PostMultipart(ctx context.Context, path string, fields []formdata.Field, files []formdata.File) ([]byte, error)
}

// ForwardUseCase translates one client request into exactly one upstream call
// and hands the raw upstream body back untouched.
type ForwardUseCase struct {
	upstream Upstream
	logger   *logger.Logger
}

// NewForwardUseCase creates a forward use case
func NewForwardUseCase(up Upstream, log *logger.Logger) *ForwardUseCase {
	return &ForwardUseCase{
		upstream: up,
		logger:   log.Named("forward"),
	}
}

// ForwardTopic relays a topic to /summarize-web
func (uc *ForwardUseCase) ForwardTopic(ctx context.Context, topic string) ([]byte, error) {
	body, err := uc.upstream.PostJSON(ctx, upstream.PathSummarizeWeb, types.TopicRequest{Topic: topic})
	return uc.result(ctx, upstream.PathSummarizeWeb, body, err)
}

// ForwardPDF relays an uploaded document to /summarize-pdf
func (uc *ForwardUseCase) ForwardPDF(ctx context.Context, file types.FileUpload) ([]byte, error) {
	uc.logUpload(ctx, upstream.PathSummarizePDF, file)
	body, err := uc.upstream.PostMultipart(ctx, upstream.PathSummarizePDF, nil, []formdata.File{filePart(file)})
	return uc.result(ctx, upstream.PathSummarizePDF, body, err)
}

// ForwardCombined relays an optional topic plus an uploaded document to
// /summarize-combined. A nil topic omits the field entirely.
func (uc *ForwardUseCase) ForwardCombined(ctx context.Context, topic *string, file types.FileUpload) ([]byte, error) {
	uc.logUpload(ctx, upstream.PathSummarizeCombined, file)
	var fields []formdata.Field
	if topic != nil {
		fields = append(fields, formdata.Field{Name: FieldTopic, Value: *topic})
	}

	body, err := uc.upstream.PostMultipart(ctx, upstream.PathSummarizeCombined, fields, []formdata.File{filePart(file)})
	return uc.result(ctx, upstream.PathSummarizeCombined, body, err)
}

// ForwardQuiz relays a summary to /generate-quiz
func (uc *ForwardUseCase) ForwardQuiz(ctx context.Context, summary string) ([]byte, error) {
	body, err := uc.upstream.PostJSON(ctx, upstream.PathGenerateQuiz, types.QuizRequest{Summary: summary})
	return uc.result(ctx, upstream.PathGenerateQuiz, body, err)
}

func (uc *ForwardUseCase) result(ctx context.Context, path string, body []byte, err error) ([]byte, error) {
	if err == nil {
		return body, nil
	}

	appErr := classify(err)
	uc.logger.WithContext(ctx).Error("upstream call failed",
		zap.String("path", path),
		zap.Int("code", appErr.Code),
		zap.Error(err),
	)
	return nil, appErr
}

func (uc *ForwardUseCase) logUpload(ctx context.Context, path string, file types.FileUpload) {
	uc.logger.WithContext(ctx).Debug("forwarding upload",
		zap.String("path", path),
		zap.String("filename", file.Filename),
		zap.Int("bytes", file.Size()),
	)
}

func filePart(file types.FileUpload) formdata.File {
	return formdata.File{
		FieldName:   FieldFile,
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Data:        file.Data,
	}
}

// classify maps a client error onto the upstream error codes
func classify(err error) *apperrors.AppError {
	var se *upstream.StatusError
	var netErr net.Error

	switch {
	case errors.As(err, &se):
		return apperrors.Wrapf(err, apperrors.ErrUpstreamStatus, "status %d", se.StatusCode)
	case errors.Is(err, upstream.ErrInvalidResponse):
		return apperrors.Wrap(err, apperrors.ErrUpstreamBadResponse)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrUpstreamTimeout)
	case errors.As(err, &netErr) && netErr.Timeout():
		return apperrors.Wrap(err, apperrors.ErrUpstreamTimeout)
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrUpstreamFailed, "client went away")
	case netErr != nil:
		return apperrors.Wrap(err, apperrors.ErrUpstreamUnreachable)
	default:
		return apperrors.Wrap(err, apperrors.ErrUpstreamFailed)
	}
}
