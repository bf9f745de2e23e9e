package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/content/settings/dto"
	"estatehub_backend/internals/features/content/settings/service"
	helper "estatehub_backend/internals/helpers"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

func actor(c *fiber.Ctx) *string {
	if id := helper.OptionalUserID(c); id != nil {
		s := id.String()
		return &s
	}
	return nil
}

// GET /api/admin/organization
func (ctl *SettingsController) GetOrganization(c *fiber.Ctx) error {
	org, err := service.Organization(c.UserContext(), ctl.DB)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch organization settings", err)
	}
	return helper.JsonOK(c, org)
}

// PUT /api/admin/organization
func (ctl *SettingsController) PutOrganization(c *fiber.Ctx) error {
	var req dto.Organization
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := service.SaveOrganization(c.UserContext(), ctl.DB, req, actor(c)); err != nil {
		return helper.InternalError(c, "Failed to save organization settings", err)
	}
	return helper.JsonUpdated(c, req)
}

// GET /api/footer-settings (public) and /api/admin/footer-settings
func (ctl *SettingsController) GetFooter(c *fiber.Ctx) error {
	f, err := service.Footer(c.UserContext(), ctl.DB)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch footer settings", err)
	}
	return helper.JsonOK(c, f)
}

// PUT /api/admin/footer-settings
func (ctl *SettingsController) PutFooter(c *fiber.Ctx) error {
	var req dto.FooterSettings
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := service.SaveFooter(c.UserContext(), ctl.DB, req, actor(c)); err != nil {
		return helper.InternalError(c, "Failed to save footer settings", err)
	}
	if req.Columns == nil {
		req.Columns = []dto.FooterColumn{}
	}
	return helper.JsonUpdated(c, req)
}
