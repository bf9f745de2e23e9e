package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"

	requestLogger "estatehub_backend/internals/middlewares/logger"
	"estatehub_backend/internals/metrics"
)

// SetupMiddlewares installs the global stack: recovery first so it wraps everything else.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(requestLogger.RequestLogger(30 * time.Second))
	app.Use(metrics.Middleware())
	app.Use(CorsMiddleware())
	app.Use("/api", GlobalRateLimiter())
}
