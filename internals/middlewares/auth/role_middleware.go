package auth

import (
	"github.com/gofiber/fiber/v2"

	"estatehub_backend/internals/constants"
	helper "estatehub_backend/internals/helpers"
)

// RequireAdmin must run after RequireAuth; users without the admin role get 403.
func RequireAdmin(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		if !helper.IsAdmin(c) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
		}
		return c.Next()
	}
}
