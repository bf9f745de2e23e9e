// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/logger"
)

// Public webhook paths that skip auth even when mounted under a protected group.
var skipPaths = map[string]struct{}{
	"/api/boosts/webhook": {},
}

// RequireAuth rejects the request with 401 unless a valid bearer token of an existing user is
// presented. Deactivated accounts get 403.
func RequireAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		user, _, err := resolveUser(c, db)
		switch {
		case err == nil:
		case errors.Is(err, errInactive):
			return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
		default:
			logger.FromCtx(c).Debug("auth rejected", zap.Error(err))
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		if err := storeUserToLocals(c, db, user); err != nil {
			return helper.InternalError(c, "Failed to resolve user roles", err)
		}
		return c.Next()
	}
}
