package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"estatehub_backend/internals/logger"
)

// FromFiberError turns an error returned out of a handler step (usually *fiber.Error from a
// transaction callback) into the standard JSON error. Anything else is logged and becomes 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return InternalError(c, "Internal server error", err)
}

// InternalError logs the original error and answers 500 with a generic message.
func InternalError(c *fiber.Ctx, message string, err error) error {
	logger.FromCtx(c).Error(message,
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return JsonError(c, fiber.StatusInternalServerError, message)
}

// ErrorHandler is the app-level fallback for errors no handler answered, such as 404 on an
// unknown route or a body over the size limit.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return InternalError(c, "Internal server error", err)
}
