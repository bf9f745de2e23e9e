package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/constants"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	propertyService "estatehub_backend/internals/features/properties/properties/service"
	"estatehub_backend/internals/features/properties/reports/dto"
	"estatehub_backend/internals/features/properties/reports/model"
	helper "estatehub_backend/internals/helpers"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func (ctl *ReportController) rows(c *fiber.Ctx) *gorm.DB {
	return ctl.DB.WithContext(c.UserContext()).
		Table("reports").
		Select(dto.ReportRowSelect).
		Joins("LEFT JOIN properties ON properties.id = reports.property_id").
		Joins("LEFT JOIN users ON users.id = reports.user_id")
}

func (ctl *ReportController) list(c *fiber.Ctx, q *gorm.DB) error {
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("reports.status = ?", st)
	}
	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch reports", err)
	}
	rows := []dto.ReportRow{}
	if err := q.Order("reports.created_at DESC").Limit(p.Limit).Offset(p.Offset).Scan(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch reports", err)
	}
	return helper.JsonList(c, rows, total, &p)
}

// POST /api/reports
func (ctl *ReportController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&propertyModel.PropertyModel{}).
		Where("id = ?", req.PropertyID).Count(&n).Error; err != nil {
		return helper.InternalError(c, "Failed to create report", err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Property not found")
	}

	m := model.ReportModel{
		PropertyID:  req.PropertyID,
		UserID:      userID,
		Reason:      req.Reason,
		Description: strings.TrimSpace(req.Description),
		Status:      model.ReportPending,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.InternalError(c, "Failed to create report", err)
	}
	return helper.JsonCreated(c, m)
}

// GET /api/reports (the caller's own reports)
func (ctl *ReportController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.list(c, ctl.rows(c).Where("reports.user_id = ?", userID))
}

// GET /api/admin/reports
func (ctl *ReportController) AdminList(c *fiber.Ctx) error {
	return ctl.list(c, ctl.rows(c))
}

// PATCH /api/admin/reports/:id
func (ctl *ReportController) Review(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ReviewReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m model.ReportModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Report not found")
		}
		return helper.InternalError(c, "Failed to update report", err)
	}

	now := time.Now()
	m.Status = req.Status
	if req.Resolution != nil {
		m.Resolution = strings.TrimSpace(*req.Resolution)
	}
	m.ReviewedBy = &adminID
	m.ReviewedAt = &now
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.InternalError(c, "Failed to update report", err)
	}

	if req.DeactivateProperty && m.Status == model.ReportResolved {
		var p propertyModel.PropertyModel
		if err := ctl.DB.WithContext(c.UserContext()).First(&p, "id = ?", m.PropertyID).Error; err == nil {
			if err := ctl.DB.WithContext(c.UserContext()).Model(&p).
				Update("status", constants.PropertyInactive).Error; err != nil {
				return helper.InternalError(c, "Failed to deactivate property", err)
			}
			p.Status = constants.PropertyInactive
			propertyService.SyncIndex(c.UserContext(), p)
		}
	}
	return helper.JsonUpdated(c, m)
}
