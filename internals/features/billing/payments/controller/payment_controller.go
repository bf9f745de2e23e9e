package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	boostService "estatehub_backend/internals/features/billing/boosts/service"
	"estatehub_backend/internals/features/billing/payments/dto"
	"estatehub_backend/internals/features/billing/payments/model"
	helper "estatehub_backend/internals/helpers"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

func (ctl *PaymentController) rows(c *fiber.Ctx) *gorm.DB {
	return ctl.DB.WithContext(c.UserContext()).
		Table("payments").
		Joins("LEFT JOIN users ON users.id = payments.user_id").
		Joins("LEFT JOIN properties ON properties.id = payments.property_id").
		Joins("LEFT JOIN listing_boosts ON listing_boosts.id = payments.boost_id")
}

// GET /api/admin/payments?status=&provider=&userId=
func (ctl *PaymentController) List(c *fiber.Ctx) error {
	q := ctl.rows(c)
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("payments.status = ?", st)
	}
	if pr := strings.TrimSpace(c.Query("provider")); pr != "" {
		q = q.Where("payments.provider = ?", pr)
	}
	if uid := strings.TrimSpace(c.Query("userId")); uid != "" {
		q = q.Where("payments.user_id = ?", uid)
	}
	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch payments", err)
	}
	rows := []dto.PaymentRow{}
	if err := q.Select(dto.PaymentRowSelect).
		Order("payments.created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch payments", err)
	}
	return helper.JsonList(c, rows, total, &p)
}

// GET /api/admin/payments/summary
func (ctl *PaymentController) Summary(c *fiber.Ctx) error {
	rows := []dto.PaymentSummary{}
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&model.PaymentModel{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to summarise payments", err)
	}
	return helper.JsonList(c, rows, int64(len(rows)), nil)
}

// GET /api/admin/payments/:id
func (ctl *PaymentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var row dto.PaymentRow
	res := ctl.rows(c).Select(dto.PaymentRowSelect).Where("payments.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return helper.InternalError(c, "Failed to fetch payment", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
	}
	return helper.JsonOK(c, row)
}

// PATCH /api/admin/payments/:id/status
// A manual status change moves the linked boost exactly like a gateway notification.
func (ctl *PaymentController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdatePaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	ctx := c.UserContext()
	var pay model.PaymentModel
	if err := ctl.DB.WithContext(ctx).First(&pay, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
		}
		return helper.InternalError(c, "Failed to update payment", err)
	}
	if n := strings.TrimSpace(req.Notes); n != "" {
		pay.Notes = n
	}
	if _, err := boostService.ApplyPaymentStatus(ctx, ctl.DB, &pay, req.Status, boostService.GatewayStatus{}); err != nil {
		return helper.InternalError(c, "Failed to update payment", err)
	}
	return helper.JsonUpdated(c, pay)
}
