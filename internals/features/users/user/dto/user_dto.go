package dto

import (
	"time"

	"github.com/google/uuid"

	roleModel "estatehub_backend/internals/features/users/roles/model"
	"estatehub_backend/internals/features/users/user/model"
)

type RoleBrief struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserResponse is the public shape of an account; never carries the password hash.
type UserResponse struct {
	ID            uuid.UUID   `json:"id"`
	Email         *string     `json:"email"`
	Phone         *string     `json:"phone"`
	Name          string      `json:"name"`
	EmailVerified bool        `json:"emailVerified"`
	PhoneVerified bool        `json:"phoneVerified"`
	ActiveRoleID  *uuid.UUID  `json:"activeRoleId"`
	ActiveRole    string      `json:"activeRole"`
	RoleCategory  string      `json:"roleCategory"`
	Roles         []RoleBrief `json:"roles"`
	IsActive      bool        `json:"isActive"`
	HasPassword   bool        `json:"hasPassword"`
	LastLoginAt   *time.Time  `json:"lastLoginAt"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// FromModel builds the response; roles are the roles the user holds.
func FromModel(u model.UserModel, roles []roleModel.RoleModel, category func(string) string) UserResponse {
	out := UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Phone:         u.Phone,
		Name:          u.Name,
		EmailVerified: u.EmailVerifiedAt != nil,
		PhoneVerified: u.PhoneVerifiedAt != nil,
		ActiveRoleID:  u.ActiveRoleID,
		Roles:         make([]RoleBrief, 0, len(roles)),
		IsActive:      u.IsActive,
		HasPassword:   u.PasswordHash != nil && *u.PasswordHash != "",
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
	for _, r := range roles {
		out.Roles = append(out.Roles, RoleBrief{ID: r.ID, Name: r.Name})
		if u.ActiveRoleID != nil && *u.ActiveRoleID == r.ID {
			out.ActiveRole = r.Name
		}
	}
	if category != nil {
		out.RoleCategory = category(out.ActiveRole)
	}
	return out
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=150"`
	IsActive *bool   `json:"isActive"`
}

type AssignRoleRequest struct {
	RoleID   *uuid.UUID `json:"roleId"`
	RoleName string     `json:"roleName"`
}
