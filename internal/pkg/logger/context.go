package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	routeKey     contextKey = "route"
)

// WithContext returns a logger carrying the request fields found in ctx
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	fields := make([]zap.Field, 0, 2)
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if route := GetRoute(ctx); route != "" {
		fields = append(fields, zap.String("route", route))
	}

	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithRoute records the matched route template (e.g. /api/process-pdf)
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey, route)
}

// GetRoute extracts the route template from context
func GetRoute(ctx context.Context) string {
	if route, ok := ctx.Value(routeKey).(string); ok {
		return route
	}
	return ""
}
