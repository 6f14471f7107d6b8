package middleware

import (
	"time"

	"groweasy/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestIDKey = "request_id"
)

// HTTPObserver records request outcomes per route pattern.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

type AccessLogMiddleware struct {
	log     *zap.Logger
	metrics HTTPObserver
}

func NewAccessLogMiddleware(log *zap.Logger, metrics HTTPObserver) *AccessLogMiddleware {
	return &AccessLogMiddleware{log: logger.Named(log, "access"), metrics: metrics}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()
		if err != nil {
			status, _, _ = normalizeError(err)
		}

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		if m.metrics != nil {
			m.metrics.ObserveHTTP(c.Method(), route, status, dur)
		}

		fields := []zap.Field{
			zap.String(logger.FieldRequestID, rid),
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", dur),
			zap.Int("req_bytes", c.Request().Header.ContentLength()),
			zap.Int("resp_bytes", len(c.Response().Body())),
			zap.String("ua", c.Get("User-Agent")),
		}
		if uid, ok := UserID(c); ok {
			fields = append(fields, zap.String(logger.FieldUserID, uid.String()))
		}
		m.log.Info("http access", fields...)

		return err
	}
}

// RequestID returns the id assigned by AccessLogMiddleware, if any.
func RequestID(c fiber.Ctx) string {
	rid, _ := c.Locals(CtxRequestIDKey).(string)
	return rid
}
