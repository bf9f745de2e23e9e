// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "estatehub_backend/internals/features/users/auth/model"
	roleService "estatehub_backend/internals/features/users/roles/service"
	userModel "estatehub_backend/internals/features/users/user/model"
	helpersAuth "estatehub_backend/internals/helpers/auth"
)

var (
	errInactive = errors.New("account is deactivated")
	errRevoked  = errors.New("token is revoked")
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		return "", fmt.Errorf("No token provided")
	}
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("Empty token")
	}
	return tok, nil
}

// resolveUser verifies the bearer token and loads the user behind it.
func resolveUser(c *fiber.Ctx, db *gorm.DB) (*userModel.UserModel, *helpersAuth.Claims, error) {
	tokenString, err := extractBearerToken(c)
	if err != nil {
		return nil, nil, err
	}
	claims, userID, err := helpersAuth.ParseToken(tokenString)
	if err != nil {
		return nil, nil, err
	}
	var revoked int64
	if err := db.WithContext(c.UserContext()).Model(&authModel.TokenBlacklist{}).
		Where("token_hash = ?", authModel.HashToken(tokenString)).
		Count(&revoked).Error; err != nil {
		return nil, nil, err
	}
	if revoked > 0 {
		return nil, nil, errRevoked
	}
	c.Locals("access_token", tokenString)
	var user userModel.UserModel
	if err := db.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return &user, claims, errInactive
	}
	return &user, claims, nil
}

func storeUserToLocals(c *fiber.Ctx, db *gorm.DB, user *userModel.UserModel) error {
	c.Locals("user_id", user.ID.String())
	c.Locals("user", user)
	isAdmin, err := roleService.HasRole(c.UserContext(), db, user.ID, "admin")
	if err != nil {
		return err
	}
	c.Locals("is_admin", isAdmin)
	return nil
}

// CurrentUser returns the user loaded by RequireAuth/OptionalAuth.
func CurrentUser(c *fiber.Ctx) *userModel.UserModel {
	u, _ := c.Locals("user").(*userModel.UserModel)
	return u
}

// UserIDOf is a convenience for tests and handlers.
func UserIDOf(c *fiber.Ctx) uuid.UUID {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return uuid.Nil
}
