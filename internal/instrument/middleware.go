package instrument

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"datatable-backend/internal/permission"
)

// Middleware returns a Fiber middleware that propagates or generates a trace
// ID, puts a request-scoped logger in the context, logs the request and
// records its metrics. m may be nil.
func Middleware(m *Metrics, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		traceID := c.Get(TraceHeader)
		if traceID == "" {
			traceID = newTraceID()
		}
		c.Set(TraceHeader, traceID)

		reqLog := log.With(zap.String("trace_id", traceID))
		ctx := WithTraceID(c.UserContext(), traceID)
		ctx = WithLogger(ctx, reqLog)
		c.SetUserContext(ctx)

		// Let the error handler write the response so the status is final.
		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		latency := time.Since(start)
		route := c.Route().Path

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}
		if user, ok := c.Locals("user").(*permission.User); ok && user != nil {
			fields = append(fields, zap.String("user_id", user.ID))
		}
		switch {
		case status >= 500:
			reqLog.Error("request", append(fields, zap.Error(err))...)
		case status >= 400:
			reqLog.Info("request", fields...)
		default:
			reqLog.Debug("request", fields...)
		}

		if m != nil {
			m.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(latency.Seconds())
		}
		return nil
	}
}
