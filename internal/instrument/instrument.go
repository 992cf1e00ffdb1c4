// Package instrument carries request tracing, Prometheus metrics and
// request logging.
package instrument

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey int

const (
	traceIDKey ctxKey = iota
	loggerKey
)

// TraceHeader is propagated from the caller or generated per request.
const TraceHeader = "X-Trace-ID"

func newTraceID() string {
	return uuid.New().String()
}

// WithTraceID sets the trace ID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GetTraceID returns the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		return v
	}
	return ""
}

// WithLogger stores a request-scoped logger in the context.
func WithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// Logger returns the request-scoped logger, or a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if v, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return v
	}
	return zap.NewNop()
}
