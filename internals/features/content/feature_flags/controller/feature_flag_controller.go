package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/caches"
	"estatehub_backend/internals/features/content/feature_flags/dto"
	"estatehub_backend/internals/features/content/feature_flags/model"
	helper "estatehub_backend/internals/helpers"
)

const flagsTTL = 5 * time.Minute

type FeatureFlagController struct {
	DB *gorm.DB
}

func NewFeatureFlagController(db *gorm.DB) *FeatureFlagController {
	return &FeatureFlagController{DB: db}
}

// GET /api/feature-flags
func (ctl *FeatureFlagController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	rows, err := cache.Remember(ctx, cache.KeyFeatureFlags, flagsTTL, func() ([]model.FeatureFlagModel, error) {
		out := []model.FeatureFlagModel{}
		err := ctl.DB.WithContext(ctx).Order("name ASC").Find(&out).Error
		return out, err
	})
	if err != nil {
		return helper.InternalError(c, "Failed to fetch feature flags", err)
	}
	return helper.JsonList(c, rows, int64(len(rows)), nil)
}

// GET /api/feature-flags/:name
func (ctl *FeatureFlagController) Get(c *fiber.Ctx) error {
	var m model.FeatureFlagModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("name = ?", dto.NormalizeName(c.Params("name"))).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Feature flag not found")
		}
		return helper.InternalError(c, "Failed to fetch feature flag", err)
	}
	return helper.JsonOK(c, m)
}

// POST /api/feature-flags (admin)
func (ctl *FeatureFlagController) Create(c *fiber.Ctx) error {
	var req dto.CreateFeatureFlagRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Feature flag already exists")
		}
		return helper.InternalError(c, "Failed to create feature flag", err)
	}
	cache.Invalidate(c.UserContext(), cache.KeyFeatureFlags)
	return helper.JsonCreated(c, m)
}

// PATCH /api/feature-flags/:id (admin)
func (ctl *FeatureFlagController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateFeatureFlagRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	var m model.FeatureFlagModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Feature flag not found")
		}
		return helper.InternalError(c, "Failed to update feature flag", err)
	}
	req.Apply(&m)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Feature flag already exists")
		}
		return helper.InternalError(c, "Failed to update feature flag", err)
	}
	cache.Invalidate(c.UserContext(), cache.KeyFeatureFlags)
	return helper.JsonUpdated(c, m)
}

// DELETE /api/feature-flags/:id (admin)
func (ctl *FeatureFlagController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.FeatureFlagModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.InternalError(c, "Failed to delete feature flag", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Feature flag not found")
	}
	cache.Invalidate(c.UserContext(), cache.KeyFeatureFlags)
	return helper.JsonDeleted(c)
}
