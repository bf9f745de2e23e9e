package logger

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
	"go.uber.org/zap"

	appLogger "estatehub_backend/internals/logger"
)

// RequestLogger assigns a request id, bounds the handler context and logs one line per request.
func RequestLogger(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		reqLogger := appLogger.L().With(zap.String("request_id", id))
		c.Locals("logger", reqLogger)

		if timeout > 0 {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			c.SetUserContext(ctx)
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		switch {
		case err != nil && status >= 500:
			reqLogger.Error("request failed", append(fields, zap.Error(err))...)
		case status >= 500:
			reqLogger.Error("request completed", fields...)
		default:
			reqLogger.Info("request completed", fields...)
		}
		return err
	}
}
