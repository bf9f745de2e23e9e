package controller

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/images/dto"
	"estatehub_backend/internals/features/properties/images/model"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	helper "estatehub_backend/internals/helpers"
)

type PropertyImageController struct {
	DB *gorm.DB
}

func NewPropertyImageController(db *gorm.DB) *PropertyImageController {
	return &PropertyImageController{DB: db}
}

func (ctl *PropertyImageController) property(c *fiber.Ctx, id uuid.UUID) (*propertyModel.PropertyModel, error) {
	var p propertyModel.PropertyModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return nil, err
	}
	return &p, nil
}

func canManage(c *fiber.Ctx, ownerID uuid.UUID) bool {
	if helper.IsAdmin(c) {
		return true
	}
	uid := helper.OptionalUserID(c)
	return uid != nil && *uid == ownerID
}

// image loads an image and checks the caller may manage its property.
func (ctl *PropertyImageController) image(c *fiber.Ctx) (*model.PropertyImageModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var img model.PropertyImageModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&img, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Image not found")
		}
		return nil, err
	}
	p, err := ctl.property(c, img.PropertyID)
	if err != nil {
		return nil, err
	}
	if !canManage(c, p.OwnerID) {
		return nil, fiber.NewError(fiber.StatusForbidden, constants.OwnershipError("image"))
	}
	return &img, nil
}

// clearPrimary unsets isPrimary on every other image of the property.
func clearPrimary(tx *gorm.DB, propertyID, keep uuid.UUID) error {
	return tx.Model(&model.PropertyImageModel{}).
		Where("property_id = ? AND id <> ? AND is_primary = ?", propertyID, keep, true).
		Update("is_primary", false).Error
}

// GET /api/properties/:id/images
func (ctl *PropertyImageController) List(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctl.property(c, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	q := ctl.DB.WithContext(c.UserContext()).Where("property_id = ?", p.ID)
	if !canManage(c, p.OwnerID) {
		q = q.Where("is_approved = ?", true)
	}
	rows := []model.PropertyImageModel{}
	if err := q.Order("display_order ASC, created_at ASC").Find(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch images", err)
	}
	return helper.JsonList(c, rows, int64(len(rows)), nil)
}

// POST /api/properties/:id/images
// Images added by an admin are approved immediately; owner images wait for moderation.
func (ctl *PropertyImageController) Create(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctl.property(c, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !canManage(c, p.OwnerID) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.OwnershipError("property"))
	}

	var req dto.CreateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m model.PropertyImageModel
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		order := 0
		if req.DisplayOrder != nil {
			order = *req.DisplayOrder
		} else {
			var maxOrder sql.NullInt64
			if err := tx.Model(&model.PropertyImageModel{}).
				Where("property_id = ?", p.ID).
				Select("MAX(display_order)").Row().Scan(&maxOrder); err != nil {
				return err
			}
			if maxOrder.Valid {
				order = int(maxOrder.Int64) + 1
			}
		}
		var existing int64
		if err := tx.Model(&model.PropertyImageModel{}).Where("property_id = ?", p.ID).Count(&existing).Error; err != nil {
			return err
		}
		m = req.ToModel(p.ID, order, helper.IsAdmin(c))
		if existing == 0 && !m.IsVideo {
			m.IsPrimary = true
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if m.IsPrimary {
			return clearPrimary(tx, p.ID, m.ID)
		}
		return nil
	})
	if err != nil {
		return helper.InternalError(c, "Failed to add image", err)
	}
	return helper.JsonCreated(c, m)
}

// PUT /api/properties/:id/images/reorder
func (ctl *PropertyImageController) Reorder(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctl.property(c, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !canManage(c, p.OwnerID) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.OwnershipError("property"))
	}
	var req dto.ReorderImagesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.PropertyImageModel{}).
			Where("property_id = ? AND id IN ?", p.ID, req.ImageIDs).
			Count(&n).Error; err != nil {
			return err
		}
		if int(n) != len(req.ImageIDs) {
			return fiber.NewError(fiber.StatusBadRequest, "Every image must belong to this property")
		}
		for i, imgID := range req.ImageIDs {
			if err := tx.Model(&model.PropertyImageModel{}).
				Where("id = ?", imgID).
				Update("display_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows := []model.PropertyImageModel{}
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("property_id = ?", p.ID).
		Order("display_order ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch images", err)
	}
	return helper.JsonList(c, rows, int64(len(rows)), nil)
}

// PATCH /api/property-images/:id
func (ctl *PropertyImageController) Update(c *fiber.Ctx) error {
	img, err := ctl.image(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.Apply(img)
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(img).Error; err != nil {
			return err
		}
		if img.IsPrimary {
			return clearPrimary(tx, img.PropertyID, img.ID)
		}
		return nil
	})
	if err != nil {
		return helper.InternalError(c, "Failed to update image", err)
	}
	return helper.JsonUpdated(c, img)
}

// DELETE /api/property-images/:id
func (ctl *PropertyImageController) Delete(c *fiber.Ctx) error {
	img, err := ctl.image(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(&model.PropertyImageModel{}, "id = ?", img.ID).Error; err != nil {
		return helper.InternalError(c, "Failed to delete image", err)
	}
	return helper.JsonDeleted(c)
}

// PATCH /api/property-images/:id/approve (admin)
func (ctl *PropertyImageController) Approve(c *fiber.Ctx) error {
	img, err := ctl.image(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ApproveImageRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	approved := true
	if req.IsApproved != nil {
		approved = *req.IsApproved
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(img).Update("is_approved", approved).Error; err != nil {
		return helper.InternalError(c, "Failed to update image", err)
	}
	img.IsApproved = approved
	return helper.JsonUpdated(c, img)
}
