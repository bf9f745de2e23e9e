// file: internals/features/users/auth/route/auth_route.go
package route

import (
	controller "estatehub_backend/internals/features/users/auth/controller"
	rateLimiter "estatehub_backend/internals/middlewares"
	authMiddleware "estatehub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthRoutes mounts /api/auth.
func AuthRoutes(router fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	auth := router.Group("/auth")

	// public
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	auth.Post("/reset-password", rateLimiter.OtpRateLimiter(), authController.ResetPassword)
	auth.Post("/otp/send", rateLimiter.OtpRateLimiter(), authController.SendOTP)
	auth.Post("/otp/verify", authController.VerifyOTP)

	// protected
	requireAuth := authMiddleware.RequireAuth(db)
	auth.Get("/me", requireAuth, authController.Me)
	auth.Post("/logout", requireAuth, authController.Logout)
	auth.Get("/verification-status", requireAuth, authController.VerificationStatus)
	auth.Post("/switch-role", requireAuth, authController.SwitchRole)
}
