package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for structured logging.
// Use these constants instead of raw strings to keep log keys consistent.
const (
	FieldRequestID = "request_id"
	FieldComponent = "component"

	// Requests
	FieldMethod  = "method"
	FieldURL     = "url"
	FieldPath    = "path"
	FieldStatus  = "status"
	FieldAttempt = "attempt"
	FieldRetries = "retries"

	FieldDurationMS = "duration_ms"
	FieldError      = "error"

	// Dataset
	FieldImageID  = "image_id"
	FieldRegionID = "region_id"
	FieldQAType   = "qa_type"
	FieldPage     = "page"
	FieldCount    = "count"
)

type contextKey string

const requestIDKey contextKey = "logger_request_id"

// WithRequestID adds a request ID to the context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request ID stored by WithRequestID, if any
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromContext returns parent enriched with the request ID carried by ctx
func FromContext(ctx context.Context, parent *zap.SugaredLogger) *zap.SugaredLogger {
	if id := RequestIDFromContext(ctx); id != "" {
		return parent.With(FieldRequestID, id)
	}
	return parent
}

// ComponentLogger returns a named logger for a specific component, tagged
// with FieldComponent.
//
//	client := api.NewClient(api.Config{Logger: logger.ComponentLogger("api")})
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name).With(FieldComponent, name)
}
