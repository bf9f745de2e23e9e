package controller

import (
	"encoding/csv"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/content/newsletter/dto"
	"estatehub_backend/internals/features/content/newsletter/model"
	"estatehub_backend/internals/features/content/newsletter/service"
	helper "estatehub_backend/internals/helpers"
)

type NewsletterController struct {
	DB *gorm.DB
}

func NewNewsletterController(db *gorm.DB) *NewsletterController {
	return &NewsletterController{DB: db}
}

// POST /api/newsletter/subscribe
func (ctl *NewsletterController) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, outcome, err := service.Subscribe(c.UserContext(), ctl.DB, req)
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonOK(c, dto.SubscribeResponse{Success: true, Message: "Already subscribed", Subscriber: row})
		}
		return helper.InternalError(c, "Failed to subscribe", err)
	}
	switch outcome {
	case service.AlreadySubscribed:
		return helper.JsonOK(c, dto.SubscribeResponse{Success: true, Message: "Already subscribed", Subscriber: row})
	case service.Reactivated:
		return helper.JsonOK(c, dto.SubscribeResponse{Success: true, Message: "Subscription reactivated", Subscriber: row})
	}
	return helper.JsonCreated(c, dto.SubscribeResponse{Success: true, Message: "Subscribed successfully", Subscriber: row})
}

// POST /api/newsletter/unsubscribe
func (ctl *NewsletterController) Unsubscribe(c *fiber.Ctx) error {
	var req dto.UnsubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := service.Unsubscribe(c.UserContext(), ctl.DB, req.Email); err != nil {
		if errors.Is(err, service.ErrNotSubscribed) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.InternalError(c, "Failed to unsubscribe", err)
	}
	return helper.JsonMessage(c, fiber.StatusOK, "Unsubscribed successfully")
}

func (ctl *NewsletterController) adminQuery(c *fiber.Ctx) *gorm.DB {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.NewsletterSubscriberModel{})
	switch c.Query("status") {
	case "active":
		q = q.Where("is_active = ?", true)
	case "inactive", "unsubscribed":
		q = q.Where("is_active = ?", false)
	}
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("(email LIKE ? OR LOWER(name) LIKE ?)", like, like)
	}
	return q
}

// GET /api/admin/newsletter?status=&q=
func (ctl *NewsletterController) AdminList(c *fiber.Ctx) error {
	q := ctl.adminQuery(c)
	p := helper.ResolvePaging(c, 50, 200)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch subscribers", err)
	}
	rows := []model.NewsletterSubscriberModel{}
	if err := q.Order("subscribed_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch subscribers", err)
	}
	return helper.JsonList(c, rows, total, &p)
}

// GET /api/admin/newsletter/export
func (ctl *NewsletterController) AdminExport(c *fiber.Ctx) error {
	rows := []model.NewsletterSubscriberModel{}
	if err := ctl.adminQuery(c).Order("subscribed_at ASC").Find(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to export subscribers", err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="newsletter-subscribers.csv"`)
	w := csv.NewWriter(c.Response().BodyWriter())
	_ = w.Write([]string{"email", "name", "source", "isActive", "subscribedAt"})
	for _, r := range rows {
		_ = w.Write([]string{r.Email, r.Name, r.Source, strconv.FormatBool(r.IsActive), r.SubscribedAt.UTC().Format(time.RFC3339)})
	}
	w.Flush()
	return w.Error()
}

// DELETE /api/admin/newsletter/:id
func (ctl *NewsletterController) AdminDelete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.NewsletterSubscriberModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.InternalError(c, "Failed to delete subscriber", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Subscriber not found")
	}
	return helper.JsonDeleted(c)
}
