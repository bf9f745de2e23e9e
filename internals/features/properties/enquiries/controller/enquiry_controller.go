// file: internals/features/properties/enquiries/controller/enquiry_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/enquiries/dto"
	"estatehub_backend/internals/features/properties/enquiries/model"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	userModel "estatehub_backend/internals/features/users/user/model"
	helper "estatehub_backend/internals/helpers"
)

type EnquiryController struct {
	DB *gorm.DB
}

func NewEnquiryController(db *gorm.DB) *EnquiryController {
	return &EnquiryController{DB: db}
}

func (ctl *EnquiryController) rows(c *fiber.Ctx) *gorm.DB {
	return ctl.DB.WithContext(c.UserContext()).
		Table("enquiries").
		Select(dto.EnquiryRowSelect).
		Joins("JOIN properties ON properties.id = enquiries.property_id")
}

func (ctl *EnquiryController) findRow(c *fiber.Ctx) (*dto.EnquiryRow, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var row dto.EnquiryRow
	res := ctl.rows(c).Where("enquiries.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Enquiry not found")
	}
	return &row, nil
}

func (ctl *EnquiryController) listRows(c *fiber.Ctx, q *gorm.DB) error {
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("enquiries.status = ?", st)
	}
	if pid := strings.TrimSpace(c.Query("propertyId")); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid propertyId")
		}
		q = q.Where("enquiries.property_id = ?", id)
	}
	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch enquiries", err)
	}
	rows := []dto.EnquiryRow{}
	if err := q.Order("enquiries.created_at DESC").Limit(p.Limit).Offset(p.Offset).Scan(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch enquiries", err)
	}
	return helper.JsonList(c, rows, total, &p)
}

// =====================================================
// CREATE: POST /api/enquiries (also /api/inquiries)
// =====================================================

func (ctl *EnquiryController) Create(c *fiber.Ctx) error {
	var req dto.CreateEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var prop propertyModel.PropertyModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&prop, "id = ?", req.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Property not found")
		}
		return helper.InternalError(c, "Failed to create enquiry", err)
	}

	uid := helper.OptionalUserID(c)
	m := req.ToModel(uid)
	// signed-in senders may leave contact fields to their profile
	if uid != nil {
		var u userModel.UserModel
		if err := ctl.DB.WithContext(c.UserContext()).First(&u, "id = ?", *uid).Error; err == nil {
			if m.Name == "" {
				m.Name = u.Name
			}
			if m.Email == "" {
				m.Email = u.EmailValue()
			}
			if m.Phone == "" {
				m.Phone = u.PhoneValue()
			}
		}
	}
	fe := map[string][]string{}
	if m.Name == "" {
		fe["name"] = []string{"is required"}
	}
	if m.Email == "" && m.Phone == "" {
		fe["email"] = []string{"email or phone is required"}
	}
	if len(fe) > 0 {
		return helper.JsonValidationError(c, fe)
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.InternalError(c, "Failed to create enquiry", err)
	}
	return helper.JsonCreated(c, m)
}

// =====================================================
// LIST: GET /api/enquiries?type=sent|received
// =====================================================

func (ctl *EnquiryController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	q := ctl.rows(c)
	if c.Query("type") == "received" {
		q = q.Where("properties.owner_id = ?", userID)
	} else {
		q = q.Where("enquiries.user_id = ?", userID)
	}
	return ctl.listRows(c, q)
}

// =====================================================
// GET: GET /api/enquiries/:id
// Visible to the sender, the property owner and admins.
// =====================================================

func (ctl *EnquiryController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctl.findRow(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	isSender := row.UserID != nil && *row.UserID == userID
	if !isSender && row.OwnerID != userID && !helper.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "You cannot view this enquiry")
	}
	return helper.JsonOK(c, row)
}

// =====================================================
// UPDATE: PATCH /api/enquiries/:id (property owner or admin)
// =====================================================

func (ctl *EnquiryController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctl.findRow(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if row.OwnerID != userID && !helper.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.OwnershipError("enquiry"))
	}
	return ctl.update(c, row.ID)
}

func (ctl *EnquiryController) update(c *fiber.Ctx, id uuid.UUID) error {
	var req dto.UpdateEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	var m model.EnquiryModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enquiry not found")
		}
		return helper.InternalError(c, "Failed to update enquiry", err)
	}
	req.Apply(&m)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.InternalError(c, "Failed to update enquiry", err)
	}
	return helper.JsonUpdated(c, m)
}

// =====================================================
// DELETE: DELETE /api/enquiries/:id (property owner or admin)
// =====================================================

func (ctl *EnquiryController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctl.findRow(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if row.OwnerID != userID && !helper.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.OwnershipError("enquiry"))
	}
	return ctl.delete(c, row.ID)
}

func (ctl *EnquiryController) delete(c *fiber.Ctx, id uuid.UUID) error {
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.EnquiryModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.InternalError(c, "Failed to delete enquiry", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Enquiry not found")
	}
	return helper.JsonDeleted(c)
}

/* =====================================================
   ADMIN: /api/admin/enquiries
===================================================== */

func (ctl *EnquiryController) AdminList(c *fiber.Ctx) error {
	q := ctl.rows(c)
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(enquiries.name) LIKE ? OR LOWER(enquiries.email) LIKE ? OR LOWER(properties.title) LIKE ?)", like, like, like)
	}
	return ctl.listRows(c, q)
}

func (ctl *EnquiryController) AdminGet(c *fiber.Ctx) error {
	row, err := ctl.findRow(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, row)
}

func (ctl *EnquiryController) AdminUpdate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.update(c, id)
}

func (ctl *EnquiryController) AdminDelete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.delete(c, id)
}
