package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the correlation id between UI, gateway and upstream.
const RequestIDHeader = "X-Request-ID"

// MiddlewareOptions configures the logger middleware
type MiddlewareOptions struct {
	// SkipPaths are exact paths that are not logged (e.g. /health)
	SkipPaths []string
}

// GinLogger returns a gin middleware for logging HTTP requests
func GinLogger(l *Logger) gin.HandlerFunc {
	return GinLoggerWithConfig(l, MiddlewareOptions{})
}

// GinLoggerWithConfig returns a gin middleware with custom configuration.
// Every request gets a request id, even when its log line is skipped.
func GinLoggerWithConfig(l *Logger, opts MiddlewareOptions) gin.HandlerFunc {
	skipPaths := make(map[string]bool, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		skipPaths[p] = true
	}

	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := WithRequestID(c.Request.Context(), requestID)
		if route := c.FullPath(); route != "" {
			ctx = WithRoute(ctx, route)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)

		path := c.Request.URL.Path
		if skipPaths[path] {
			c.Next()
			return
		}

		start := time.Now()
		query := c.Request.URL.RawQuery

		c.Next()

		statusCode := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", statusCode),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case statusCode >= http.StatusInternalServerError:
			l.Error("HTTP Request", fields...)
		case statusCode >= http.StatusBadRequest:
			l.Warn("HTTP Request", fields...)
		default:
			l.Info("HTTP Request", fields...)
		}
	}
}

// GinRecovery returns a gin middleware for recovering from panics
func GinRecovery(l *Logger) gin.HandlerFunc {
	return GinRecoveryWithHandler(l, func(c *gin.Context) {
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// GinRecoveryWithHandler recovers from panics and lets handle write the
// response
func GinRecoveryWithHandler(l *Logger, handle gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				l.Error("Panic recovered",
					zap.String("request_id", GetRequestID(c.Request.Context())),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.Stack("stacktrace"),
				)
				handle(c)
			}
		}()

		c.Next()
	}
}
