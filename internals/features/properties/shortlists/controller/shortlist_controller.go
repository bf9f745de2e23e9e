package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	propertyService "estatehub_backend/internals/features/properties/properties/service"
	"estatehub_backend/internals/features/properties/shortlists/dto"
	"estatehub_backend/internals/features/properties/shortlists/model"
	helper "estatehub_backend/internals/helpers"
)

type ShortlistController struct {
	DB *gorm.DB
}

func NewShortlistController(db *gorm.DB) *ShortlistController {
	return &ShortlistController{DB: db}
}

// GET /api/shortlists
func (ctl *ShortlistController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var items []model.ShortlistModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch shortlist", err)
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.PropertyID)
	}
	var props []propertyModel.PropertyModel
	if len(ids) > 0 {
		if err := ctl.DB.WithContext(c.UserContext()).Where("id IN ?", ids).Find(&props).Error; err != nil {
			return helper.InternalError(c, "Failed to fetch shortlist", err)
		}
	}
	withImages, err := propertyService.WithPrimaryImages(c.UserContext(), ctl.DB, props)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch shortlist", err)
	}
	byID := make(map[uuid.UUID]int, len(withImages))
	for i, p := range withImages {
		byID[p.ID] = i
	}

	out := make([]dto.ShortlistResponse, 0, len(items))
	for _, it := range items {
		resp := dto.ShortlistResponse{ID: it.ID, PropertyID: it.PropertyID, Notes: it.Notes, CreatedAt: it.CreatedAt}
		if i, ok := byID[it.PropertyID]; ok {
			p := withImages[i]
			resp.Property = &p
		}
		out = append(out, resp)
	}
	return helper.JsonList(c, out, int64(len(out)), nil)
}

// POST /api/shortlists
func (ctl *ShortlistController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateShortlistRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&propertyModel.PropertyModel{}).
		Where("id = ?", req.PropertyID).Count(&n).Error; err != nil {
		return helper.InternalError(c, "Failed to shortlist property", err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Property not found")
	}

	m := model.ShortlistModel{UserID: userID, PropertyID: req.PropertyID, Notes: strings.TrimSpace(req.Notes)}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Property already shortlisted")
		}
		return helper.InternalError(c, "Failed to shortlist property", err)
	}
	return helper.JsonCreated(c, m)
}

// DELETE /api/shortlists/:id
func (ctl *ShortlistController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := ctl.DB.WithContext(c.UserContext()).Where("id = ? AND user_id = ?", id, userID).Delete(&model.ShortlistModel{})
	if res.Error != nil {
		return helper.InternalError(c, "Failed to remove from shortlist", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Shortlist entry not found")
	}
	return helper.JsonDeleted(c)
}

// DELETE /api/shortlists/property/:propertyId
func (ctl *ShortlistController) DeleteByProperty(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pid, err := helper.ParseUUIDParam(c, "propertyId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := ctl.DB.WithContext(c.UserContext()).Where("property_id = ? AND user_id = ?", pid, userID).Delete(&model.ShortlistModel{})
	if res.Error != nil {
		return helper.InternalError(c, "Failed to remove from shortlist", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Shortlist entry not found")
	}
	return helper.JsonDeleted(c)
}

// GET /api/shortlists/check/:propertyId
func (ctl *ShortlistController) Check(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pid, err := helper.ParseUUIDParam(c, "propertyId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var m model.ShortlistModel
	err = ctl.DB.WithContext(c.UserContext()).Where("property_id = ? AND user_id = ?", pid, userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonOK(c, dto.ShortlistCheckResponse{Shortlisted: false})
	}
	if err != nil {
		return helper.InternalError(c, "Failed to check shortlist", err)
	}
	return helper.JsonOK(c, dto.ShortlistCheckResponse{Shortlisted: true, ID: &m.ID})
}
