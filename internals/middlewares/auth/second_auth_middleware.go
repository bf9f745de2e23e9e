package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"estatehub_backend/internals/logger"
)

// OptionalAuth resolves the user when a valid token is present and otherwise continues anonymously.
func OptionalAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		user, _, err := resolveUser(c, db)
		if err != nil {
			logger.FromCtx(c).Debug("optional auth ignored token", zap.Error(err))
			return c.Next()
		}
		if err := storeUserToLocals(c, db, user); err != nil {
			logger.FromCtx(c).Warn("optional auth role lookup failed", zap.Error(err))
		}
		return c.Next()
	}
}
