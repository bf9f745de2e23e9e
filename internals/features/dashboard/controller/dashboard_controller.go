package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/dashboard/dto"
	"estatehub_backend/internals/features/dashboard/service"
	roleService "estatehub_backend/internals/features/users/roles/service"
	userService "estatehub_backend/internals/features/users/user/service"
	helper "estatehub_backend/internals/helpers"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GET /api/dashboard
// The view follows the active role: owner-type roles get the owner view, everyone else the
// tenant view. ?view= picks one explicitly.
func (ctl *DashboardController) Get(c *fiber.Ctx) error {
	user := authMiddleware.CurrentUser(c)
	if user == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Authentication required")
	}
	ctx := c.UserContext()
	roleName, err := roleService.RoleName(ctx, ctl.DB, user.ActiveRoleID)
	if err != nil {
		return helper.InternalError(c, "Failed to load dashboard", err)
	}

	view := service.ViewTenant
	if userService.RoleCategory(roleName) == userService.CategoryOwner {
		view = service.ViewOwner
	}
	switch c.Query("view") {
	case service.ViewOwner, service.ViewTenant:
		view = c.Query("view")
	}

	var out dto.DashboardResponse
	if view == service.ViewOwner {
		out, err = service.OwnerDashboard(ctx, ctl.DB, user.ID)
	} else {
		out, err = service.TenantDashboard(ctx, ctl.DB, user.ID)
	}
	if err != nil {
		return helper.InternalError(c, "Failed to load dashboard", err)
	}
	out.ActiveRole = roleName
	return helper.JsonOK(c, out)
}

// GET /api/admin/stats
func (ctl *DashboardController) AdminStats(c *fiber.Ctx) error {
	s, err := service.AdminStats(c.UserContext(), ctl.DB)
	if err != nil {
		return helper.InternalError(c, "Failed to load stats", err)
	}
	return helper.JsonOK(c, s)
}
