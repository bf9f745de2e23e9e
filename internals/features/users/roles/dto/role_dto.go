package dto

import (
	"strings"

	"github.com/google/uuid"

	"estatehub_backend/internals/features/users/roles/model"
)

type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=60"`
	Description string `json:"description" validate:"max=1000"`
}

func (r CreateRoleRequest) ToModel() model.RoleModel {
	return model.RoleModel{
		Name:        strings.ToLower(strings.TrimSpace(r.Name)),
		Description: strings.TrimSpace(r.Description),
	}
}

type UpdateRoleRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=60"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

func (r UpdateRoleRequest) Apply(m *model.RoleModel) {
	if r.Name != nil {
		m.Name = strings.ToLower(strings.TrimSpace(*r.Name))
	}
	if r.Description != nil {
		m.Description = strings.TrimSpace(*r.Description)
	}
}

type SetRolePermissionsRequest struct {
	PermissionIDs []uuid.UUID `json:"permissionIds" validate:"required"`
}

type RoleResponse struct {
	model.RoleModel
	Permissions []model.PermissionModel `json:"permissions"`
}

type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Category    string `json:"category" validate:"max=60"`
	Description string `json:"description" validate:"max=1000"`
}

func (r CreatePermissionRequest) ToModel() model.PermissionModel {
	return model.PermissionModel{
		Name:        strings.TrimSpace(r.Name),
		Category:    strings.TrimSpace(r.Category),
		Description: strings.TrimSpace(r.Description),
	}
}

type UpdatePermissionRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Category    *string `json:"category" validate:"omitempty,max=60"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

func (r UpdatePermissionRequest) Apply(m *model.PermissionModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Category != nil {
		m.Category = strings.TrimSpace(*r.Category)
	}
	if r.Description != nil {
		m.Description = strings.TrimSpace(*r.Description)
	}
}
