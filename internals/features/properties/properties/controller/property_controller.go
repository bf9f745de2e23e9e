// file: internals/features/properties/properties/controller/property_controller.go
package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"estatehub_backend/internals/constants"
	boostModel "estatehub_backend/internals/features/billing/boosts/model"
	paymentModel "estatehub_backend/internals/features/billing/payments/model"
	enquiryModel "estatehub_backend/internals/features/properties/enquiries/model"
	imageModel "estatehub_backend/internals/features/properties/images/model"
	"estatehub_backend/internals/features/properties/properties/dto"
	"estatehub_backend/internals/features/properties/properties/model"
	"estatehub_backend/internals/features/properties/properties/service"
	reportModel "estatehub_backend/internals/features/properties/reports/model"
	shortlistModel "estatehub_backend/internals/features/properties/shortlists/model"
	userModel "estatehub_backend/internals/features/users/user/model"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/logger"
)

type PropertyController struct {
	DB *gorm.DB
}

func NewPropertyController(db *gorm.DB) *PropertyController {
	return &PropertyController{DB: db}
}

func (ctl *PropertyController) findProperty(c *fiber.Ctx) (*model.PropertyModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var p model.PropertyModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return nil, err
	}
	return &p, nil
}

// canManage: the owner or an admin.
func canManage(c *fiber.Ctx, p *model.PropertyModel) bool {
	if helper.IsAdmin(c) {
		return true
	}
	uid := helper.OptionalUserID(c)
	return uid != nil && *uid == p.OwnerID
}

func limitParam(c *fiber.Ctx, def, max int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// =====================================================
// LIST: GET /api/properties
// =====================================================

func (ctl *PropertyController) List(c *fiber.Ctx) error {
	f, err := dto.FilterFromQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	// the public list never shows non-active listings
	f.Status = ""
	f.OwnerID = nil
	return ctl.list(c, f)
}

func (ctl *PropertyController) list(c *fiber.Ctx, f dto.PropertyFilter) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := service.List(c.UserContext(), ctl.DB, f, p)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch properties", err)
	}
	out, err := service.WithPrimaryImages(c.UserContext(), ctl.DB, rows)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch properties", err)
	}
	return helper.JsonList(c, out, total, &p)
}

// =====================================================
// FEATURED: GET /api/properties/featured
// =====================================================

func (ctl *PropertyController) Featured(c *fiber.Ctx) error {
	rows, err := service.Featured(c.UserContext(), ctl.DB, limitParam(c, 6, 50))
	if err != nil {
		return helper.InternalError(c, "Failed to fetch featured properties", err)
	}
	out, err := service.WithPrimaryImages(c.UserContext(), ctl.DB, rows)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch featured properties", err)
	}
	return helper.JsonList(c, out, int64(len(out)), nil)
}

// =====================================================
// SEARCH: GET /api/properties/search?q=
// =====================================================

func (ctl *PropertyController) Search(c *fiber.Ctx) error {
	f, err := dto.FilterFromQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	f.Status = ""
	f.OwnerID = nil
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := service.Search(c.UserContext(), ctl.DB, f, p)
	if err != nil {
		return helper.InternalError(c, "Failed to search properties", err)
	}
	out, err := service.WithPrimaryImages(c.UserContext(), ctl.DB, rows)
	if err != nil {
		return helper.InternalError(c, "Failed to search properties", err)
	}
	return helper.JsonList(c, out, total, &p)
}

// =====================================================
// MINE: GET /api/properties/mine
// =====================================================

func (ctl *PropertyController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	f, err := dto.FilterFromQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.Status == "" {
		f.Status = dto.StatusAll
	}
	f.OwnerID = &userID
	return ctl.list(c, f)
}

// =====================================================
// GET: GET /api/properties/:id
// =====================================================

func (ctl *PropertyController) Get(c *fiber.Ctx) error {
	p, err := ctl.findProperty(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	manage := canManage(c, p)
	if p.Status != constants.PropertyActive && !manage {
		return helper.JsonError(c, fiber.StatusNotFound, "Property not found")
	}

	uid := helper.OptionalUserID(c)
	if uid == nil || *uid != p.OwnerID {
		if err := service.IncrementViews(c.UserContext(), ctl.DB, p.ID); err != nil {
			logger.FromCtx(c).Warn("view count update failed", zap.Error(err))
		} else {
			p.ViewCount++
		}
	}

	images, err := service.Gallery(c.UserContext(), ctl.DB, p.ID, !manage)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch property", err)
	}
	resp := dto.PropertyDetailResponse{
		PropertyResponse: dto.NewPropertyResponse(*p),
		Images:           images,
	}
	resp.ImageCount = len(images)
	for _, im := range images {
		if !im.IsApproved || im.IsVideo {
			continue
		}
		if resp.PrimaryImage == nil || im.IsPrimary {
			u := im.URL
			resp.PrimaryImage = &u
		}
		if im.IsPrimary {
			break
		}
	}

	var owner userModel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&owner, "id = ?", p.OwnerID).Error; err == nil {
		resp.Owner = &dto.OwnerBrief{ID: owner.ID, Name: owner.Name}
		// contact details only for signed-in visitors
		if uid != nil {
			resp.Owner.Email = owner.Email
			resp.Owner.Phone = owner.Phone
		}
	}
	return helper.JsonOK(c, resp)
}

// =====================================================
// SIMILAR: GET /api/properties/:id/similar
// =====================================================

func (ctl *PropertyController) Similar(c *fiber.Ctx) error {
	p, err := ctl.findProperty(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := service.Similar(c.UserContext(), ctl.DB, *p, limitParam(c, 4, 20))
	if err != nil {
		return helper.InternalError(c, "Failed to fetch similar properties", err)
	}
	out, err := service.WithPrimaryImages(c.UserContext(), ctl.DB, rows)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch similar properties", err)
	}
	return helper.JsonList(c, out, int64(len(out)), nil)
}

// =====================================================
// CREATE: POST /api/properties
// =====================================================

func (ctl *PropertyController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if fe := req.PriceErrors(); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	m := req.ToModel(userID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.InternalError(c, "Failed to create property", err)
	}
	service.SyncIndex(c.UserContext(), m)
	return helper.JsonCreated(c, dto.NewPropertyResponse(m))
}

// =====================================================
// UPDATE: PATCH /api/properties/:id
// =====================================================

func (ctl *PropertyController) Update(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctl.findProperty(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !canManage(c, p) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.OwnershipError("property"))
	}

	var req dto.UpdatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ownerID := p.OwnerID
	req.Apply(p)
	p.OwnerID = ownerID
	if err := ctl.DB.WithContext(c.UserContext()).Save(p).Error; err != nil {
		return helper.InternalError(c, "Failed to update property", err)
	}
	service.SyncIndex(c.UserContext(), *p)
	return helper.JsonUpdated(c, dto.NewPropertyResponse(*p))
}

// =====================================================
// DELETE: DELETE /api/properties/:id
// =====================================================

func (ctl *PropertyController) Delete(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctl.findProperty(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !canManage(c, p) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.OwnershipError("property"))
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		for _, dep := range []any{
			&imageModel.PropertyImageModel{},
			&shortlistModel.ShortlistModel{},
			&enquiryModel.EnquiryModel{},
			&reportModel.ReportModel{},
		} {
			if err := tx.Where("property_id = ?", p.ID).Delete(dep).Error; err != nil {
				return err
			}
		}
		// Payments outlive the listing as billing history; only their links are cleared.
		if err := tx.Model(&paymentModel.PaymentModel{}).
			Where("property_id = ?", p.ID).
			Updates(map[string]any{"property_id": nil, "boost_id": nil}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", p.ID).Delete(&boostModel.ListingBoostModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PropertyModel{}, "id = ?", p.ID).Error
	})
	if err != nil {
		return helper.InternalError(c, "Failed to delete property", err)
	}
	service.RemoveFromIndex(c.UserContext(), p.ID.String())
	return helper.JsonDeleted(c)
}

// =====================================================
// WIZARD: POST /api/properties/wizard/validate
// =====================================================

func (ctl *PropertyController) ValidateWizard(c *fiber.Ctx) error {
	var req dto.WizardValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	errs := service.ValidateStep(req.Step, req.Data)
	resp := dto.WizardValidateResponse{
		Step:   req.Step,
		Valid:  len(errs) == 0,
		Errors: errs,
	}
	if resp.Valid {
		resp.NextStep = service.NextStep(req.Step)
	}

	if req.Step == dto.StepReview {
		verified := false
		if uid := helper.OptionalUserID(c); uid != nil {
			var u userModel.UserModel
			if err := ctl.DB.WithContext(c.UserContext()).First(&u, "id = ?", *uid).Error; err == nil {
				verified = u.EmailVerifiedAt != nil || u.PhoneVerifiedAt != nil
			}
		}
		resp.Verified = &verified
		if !verified {
			resp.Valid = false
			resp.Errors["verification"] = []string{"verify your email or phone before publishing"}
		}
	}
	return helper.JsonOK(c, resp)
}

/* =====================================================
   ADMIN
===================================================== */

// GET /api/admin/properties?status=all|active|...
func (ctl *PropertyController) AdminList(c *fiber.Ctx) error {
	f, err := dto.FilterFromQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.Status == "" {
		f.Status = dto.StatusAll
	}
	if s := c.Query("ownerId"); s != "" {
		id, perr := uuid.Parse(s)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ownerId")
		}
		f.OwnerID = &id
	}
	return ctl.list(c, f)
}

// PATCH /api/admin/properties/:id/status
func (ctl *PropertyController) AdminSetStatus(c *fiber.Ctx) error {
	p, err := ctl.findProperty(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.AdminStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(p).Updates(map[string]any{
		"status": req.Status,
	}).Error; err != nil {
		return helper.InternalError(c, "Failed to update property status", err)
	}
	p.Status = req.Status
	service.SyncIndex(c.UserContext(), *p)
	return helper.JsonUpdated(c, dto.NewPropertyResponse(*p))
}
