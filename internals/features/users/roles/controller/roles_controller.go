// file: internals/features/users/roles/controller/roles_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/users/roles/dto"
	"estatehub_backend/internals/features/users/roles/model"
	userModel "estatehub_backend/internals/features/users/user/model"
	helper "estatehub_backend/internals/helpers"
)

type RoleController struct {
	DB *gorm.DB
}

func NewRoleController(db *gorm.DB) *RoleController {
	return &RoleController{DB: db}
}

// =====================================================
// LIST: GET /api/admin/roles
// =====================================================

func (ctl *RoleController) List(c *fiber.Ctx) error {
	var roles []model.RoleModel
	if err := ctl.DB.WithContext(c.UserContext()).Order("name ASC").Find(&roles).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch roles", err)
	}

	var links []model.RolePermissionModel
	if err := ctl.DB.WithContext(c.UserContext()).Find(&links).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch roles", err)
	}
	var perms []model.PermissionModel
	if err := ctl.DB.WithContext(c.UserContext()).Find(&perms).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch roles", err)
	}
	permByID := make(map[uuid.UUID]model.PermissionModel, len(perms))
	for _, p := range perms {
		permByID[p.ID] = p
	}
	byRole := make(map[uuid.UUID][]model.PermissionModel)
	for _, l := range links {
		if p, ok := permByID[l.PermissionID]; ok {
			byRole[l.RoleID] = append(byRole[l.RoleID], p)
		}
	}

	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		ps := byRole[r.ID]
		if ps == nil {
			ps = []model.PermissionModel{}
		}
		out = append(out, dto.RoleResponse{RoleModel: r, Permissions: ps})
	}
	return helper.JsonList(c, out, int64(len(out)), nil)
}

// =====================================================
// GET: GET /api/admin/roles/:id
// =====================================================

func (ctl *RoleController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var role model.RoleModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&role, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Role not found")
		}
		return helper.InternalError(c, "Failed to fetch role", err)
	}
	perms, err := ctl.permissionsOf(c, role.ID)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch role", err)
	}
	return helper.JsonOK(c, dto.RoleResponse{RoleModel: role, Permissions: perms})
}

func (ctl *RoleController) permissionsOf(c *fiber.Ctx, roleID uuid.UUID) ([]model.PermissionModel, error) {
	perms := []model.PermissionModel{}
	err := ctl.DB.WithContext(c.UserContext()).
		Table("permissions").
		Select("permissions.*").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Order("permissions.category ASC, permissions.name ASC").
		Find(&perms).Error
	return perms, err
}

// =====================================================
// CREATE: POST /api/admin/roles
// =====================================================

func (ctl *RoleController) Create(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Role name already exists")
		}
		return helper.InternalError(c, "Failed to create role", err)
	}
	return helper.JsonCreated(c, dto.RoleResponse{RoleModel: m, Permissions: []model.PermissionModel{}})
}

// =====================================================
// UPDATE: PATCH /api/admin/roles/:id
// =====================================================

func (ctl *RoleController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var role model.RoleModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&role, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Role not found")
		}
		return helper.InternalError(c, "Failed to update role", err)
	}
	if role.Name == constants.RoleAdmin && req.Name != nil && strings.ToLower(strings.TrimSpace(*req.Name)) != constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusBadRequest, "The admin role cannot be renamed")
	}

	req.Apply(&role)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&role).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Role name already exists")
		}
		return helper.InternalError(c, "Failed to update role", err)
	}
	return helper.JsonUpdated(c, role)
}

// =====================================================
// DELETE: DELETE /api/admin/roles/:id
// =====================================================

func (ctl *RoleController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var role model.RoleModel
		if err := tx.First(&role, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Role not found")
			}
			return err
		}
		if role.Name == constants.RoleAdmin {
			return fiber.NewError(fiber.StatusBadRequest, "The admin role cannot be deleted")
		}
		if err := tx.Where("role_id = ?", id).Delete(&model.RolePermissionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&userModel.UserRoleModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&userModel.UserModel{}).Where("active_role_id = ?", id).
			Update("active_role_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&role).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c)
}

// =====================================================
// SET PERMISSIONS: PUT /api/admin/roles/:id/permissions
// =====================================================

func (ctl *RoleController) SetPermissions(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SetRolePermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.PermissionIDs == nil {
		req.PermissionIDs = []uuid.UUID{}
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var role model.RoleModel
		if err := tx.First(&role, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Role not found")
			}
			return err
		}
		if len(req.PermissionIDs) > 0 {
			var n int64
			if err := tx.Model(&model.PermissionModel{}).Where("id IN ?", req.PermissionIDs).Count(&n).Error; err != nil {
				return err
			}
			if int(n) != len(uniqueIDs(req.PermissionIDs)) {
				return fiber.NewError(fiber.StatusBadRequest, "One or more permissions do not exist")
			}
		}
		if err := tx.Where("role_id = ?", id).Delete(&model.RolePermissionModel{}).Error; err != nil {
			return err
		}
		for _, pid := range uniqueIDs(req.PermissionIDs) {
			if err := tx.Create(&model.RolePermissionModel{RoleID: id, PermissionID: pid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.Get(c)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
