package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"estatehub_backend/internals/features/users/roles/model"
	userModel "estatehub_backend/internals/features/users/user/model"
)

// EnsureRole returns the role with the given name, creating it when missing.
func EnsureRole(ctx context.Context, db *gorm.DB, name, description string) (model.RoleModel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	var role model.RoleModel
	err := db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return role, err
	}
	role = model.RoleModel{Name: name, Description: description}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&role).Error; err != nil {
		return role, err
	}
	// Lost a race with another creator: read the winner.
	if err := db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return role, err
	}
	return role, nil
}

// GrantRole links user and role; granting twice is a no-op.
func GrantRole(ctx context.Context, db *gorm.DB, userID, roleID uuid.UUID) error {
	ur := userModel.UserRoleModel{UserID: userID, RoleID: roleID}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}, {Name: "role_id"}}, DoNothing: true}).
		Create(&ur).Error
}

// UserRoles lists the roles a user holds, oldest grant first.
func UserRoles(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]model.RoleModel, error) {
	var roles []model.RoleModel
	err := db.WithContext(ctx).
		Table("roles").
		Select("roles.*").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("user_roles.created_at ASC").
		Find(&roles).Error
	return roles, err
}

// HasRole reports whether the user holds a role by name.
func HasRole(ctx context.Context, db *gorm.DB, userID uuid.UUID, name string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Table("user_roles").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ? AND roles.name = ?", userID, name).
		Count(&n).Error
	return n > 0, err
}

// HoldsRoleID reports whether the user was granted the role id.
func HoldsRoleID(ctx context.Context, db *gorm.DB, userID, roleID uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&userModel.UserRoleModel{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&n).Error
	return n > 0, err
}

// RoleName resolves a role id, returning "" when it does not exist.
func RoleName(ctx context.Context, db *gorm.DB, roleID *uuid.UUID) (string, error) {
	if roleID == nil {
		return "", nil
	}
	var role model.RoleModel
	err := db.WithContext(ctx).Select("name").Where("id = ?", *roleID).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return role.Name, err
}
