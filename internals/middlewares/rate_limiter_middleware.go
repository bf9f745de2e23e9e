package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"estatehub_backend/internals/configs"
)

func newIPLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return configs.DisableRateLimit
		},
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success":    false,
				"error":      message,
				"error_code": "RATE_LIMITED",
			})
		},
	})
}

// GlobalRateLimiter covers every /api route.
func GlobalRateLimiter() fiber.Handler {
	return newIPLimiter(100, 1*time.Minute, "Too many requests. Please try again later.")
}

func LoginRateLimiter() fiber.Handler {
	return newIPLimiter(5, 1*time.Minute, "Too many login attempts. Please wait a moment.")
}

func RegisterRateLimiter() fiber.Handler {
	return newIPLimiter(3, 5*time.Minute, "Too many registrations. Please wait a few minutes.")
}

// OtpRateLimiter guards code delivery and password reset.
func OtpRateLimiter() fiber.Handler {
	return newIPLimiter(5, 10*time.Minute, "Too many OTP requests. Please try again in 10 minutes.")
}
