package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub_backend/internals/constants"
	roleService "estatehub_backend/internals/features/users/roles/service"
	"estatehub_backend/internals/features/users/user/dto"
	"estatehub_backend/internals/features/users/user/model"
)

// Role categories drive which dashboard the client renders.
const (
	CategoryAdmin  = "admin"
	CategoryOwner  = "owner"
	CategoryTenant = "tenant"
)

func RoleCategory(roleName string) string {
	switch {
	case roleName == constants.RoleAdmin:
		return CategoryAdmin
	case constants.IsOwnerRole(roleName):
		return CategoryOwner
	default:
		return CategoryTenant
	}
}

// BuildResponse loads the held roles and shapes the user for the API.
func BuildResponse(ctx context.Context, db *gorm.DB, u model.UserModel) (dto.UserResponse, error) {
	roles, err := roleService.UserRoles(ctx, db, u.ID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.FromModel(u, roles, RoleCategory), nil
}

// ActiveCategory resolves the category of the user's active role.
func ActiveCategory(ctx context.Context, db *gorm.DB, activeRoleID *uuid.UUID) (string, error) {
	name, err := roleService.RoleName(ctx, db, activeRoleID)
	if err != nil {
		return "", err
	}
	return RoleCategory(name), nil
}
