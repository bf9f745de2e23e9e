package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub_backend/internals/constants"
	roleModel "estatehub_backend/internals/features/users/roles/model"
	roleService "estatehub_backend/internals/features/users/roles/service"
	"estatehub_backend/internals/features/users/user/dto"
	"estatehub_backend/internals/features/users/user/model"
	"estatehub_backend/internals/features/users/user/service"
	helper "estatehub_backend/internals/helpers"
)

type UserAdminController struct {
	DB *gorm.DB
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{DB: db}
}

// =====================================================
// LIST: GET /api/admin/users?q=&role=&isActive=
// =====================================================

func (ctl *UserAdminController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	q := ctl.DB.WithContext(ctx).Model(&model.UserModel{})
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("(LOWER(COALESCE(email,'')) LIKE ? OR COALESCE(phone,'') LIKE ? OR LOWER(name) LIKE ?)", like, like, like)
	}
	if role := strings.ToLower(strings.TrimSpace(c.Query("role"))); role != "" {
		q = q.Where("id IN (?)", ctl.DB.Table("user_roles").
			Select("user_roles.user_id").
			Joins("JOIN roles ON roles.id = user_roles.role_id").
			Where("roles.name = ?", role))
	}
	switch c.Query("isActive") {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}

	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch users", err)
	}
	var users []model.UserModel
	if err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&users).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch users", err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp, err := service.BuildResponse(ctx, ctl.DB, u)
		if err != nil {
			return helper.InternalError(c, "Failed to fetch users", err)
		}
		out = append(out, resp)
	}
	return helper.JsonList(c, out, total, &p)
}

func (ctl *UserAdminController) find(c *fiber.Ctx) (*model.UserModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var u model.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}
	return &u, nil
}

func (ctl *UserAdminController) respond(c *fiber.Ctx, u model.UserModel) error {
	resp, err := service.BuildResponse(c.UserContext(), ctl.DB, u)
	if err != nil {
		return helper.InternalError(c, "Failed to load user", err)
	}
	return helper.JsonOK(c, resp)
}

// GET /api/admin/users/:id
func (ctl *UserAdminController) Get(c *fiber.Ctx) error {
	u, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.respond(c, *u)
}

// =====================================================
// UPDATE: PATCH /api/admin/users/:id
// =====================================================

// An admin cannot deactivate their own account.
func (ctl *UserAdminController) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	u, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if req.IsActive != nil && !*req.IsActive {
		if me := helper.OptionalUserID(c); me != nil && *me == u.ID {
			return helper.JsonError(c, fiber.StatusBadRequest, "You cannot deactivate your own account")
		}
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := ctl.DB.WithContext(c.UserContext()).Model(u).Updates(updates).Error; err != nil {
			return helper.InternalError(c, "Failed to update user", err)
		}
	}
	return ctl.respond(c, *u)
}

// =====================================================
// ROLES: POST /api/admin/users/:id/roles, DELETE /api/admin/users/:id/roles/:roleId
// =====================================================

// AssignRole grants a role by id or by name. A user without an active role starts acting under it.
func (ctl *UserAdminController) AssignRole(c *fiber.Ctx) error {
	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.RoleID == nil && strings.TrimSpace(req.RoleName) == "" {
		return helper.JsonValidationError(c, map[string][]string{"roleId": {"roleId or roleName is required"}})
	}
	u, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ctx := c.UserContext()
	var role roleModel.RoleModel
	q := ctl.DB.WithContext(ctx)
	if req.RoleID != nil {
		q = q.Where("id = ?", *req.RoleID)
	} else {
		q = q.Where("name = ?", strings.ToLower(strings.TrimSpace(req.RoleName)))
	}
	if err := q.First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Role not found")
		}
		return helper.InternalError(c, "Failed to assign role", err)
	}

	if err := roleService.GrantRole(ctx, ctl.DB, u.ID, role.ID); err != nil {
		return helper.InternalError(c, "Failed to assign role", err)
	}
	if u.ActiveRoleID == nil {
		if err := ctl.DB.WithContext(ctx).Model(u).Update("active_role_id", role.ID).Error; err != nil {
			return helper.InternalError(c, "Failed to assign role", err)
		}
	}
	return ctl.respond(c, *u)
}

// RevokeRole removes a grant. The last admin keeps the admin role; an active role that is
// revoked falls back to the oldest remaining grant.
func (ctl *UserAdminController) RevokeRole(c *fiber.Ctx) error {
	roleID, err := helper.ParseUUIDParam(c, "roleId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	u, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ctx := c.UserContext()
	err = ctl.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role roleModel.RoleModel
		if err := tx.First(&role, "id = ?", roleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Role not found")
			}
			return err
		}
		if role.Name == constants.RoleAdmin {
			var admins int64
			if err := tx.Model(&model.UserRoleModel{}).Where("role_id = ?", role.ID).Count(&admins).Error; err != nil {
				return err
			}
			if admins <= 1 {
				return fiber.NewError(fiber.StatusBadRequest, "Cannot remove the last admin")
			}
		}
		res := tx.Where("user_id = ? AND role_id = ?", u.ID, role.ID).Delete(&model.UserRoleModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "User does not hold this role")
		}
		if u.ActiveRoleID == nil || *u.ActiveRoleID != role.ID {
			return nil
		}
		var next *uuid.UUID
		remaining, err := roleService.UserRoles(ctx, tx, u.ID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			next = &remaining[0].ID
		}
		u.ActiveRoleID = next
		return tx.Model(u).Update("active_role_id", next).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.respond(c, *u)
}
