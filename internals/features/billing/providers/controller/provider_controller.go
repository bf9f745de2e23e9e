package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/billing/providers/dto"
	"estatehub_backend/internals/features/billing/providers/service"
	helper "estatehub_backend/internals/helpers"
)

type ProviderController struct {
	DB *gorm.DB
}

func NewProviderController(db *gorm.DB) *ProviderController {
	return &ProviderController{DB: db}
}

func (ctl *ProviderController) fail(c *fiber.Ctx, msg string, err error) error {
	if errors.Is(err, service.ErrUnknownProvider) {
		return helper.JsonError(c, fiber.StatusNotFound, "Provider not found")
	}
	return helper.InternalError(c, msg, err)
}

// =====================================================
// PAYMENT: /api/admin/payment-providers
// =====================================================

func (ctl *ProviderController) ListPayment(c *fiber.Ctx) error {
	rows, err := service.PaymentProviders(c.UserContext(), ctl.DB)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch payment providers", err)
	}
	out := make([]dto.PaymentProviderResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromPaymentProvider(r))
	}
	return helper.JsonList(c, out, int64(len(out)), nil)
}

func (ctl *ProviderController) GetPayment(c *fiber.Ctx) error {
	m, err := service.PaymentProvider(c.UserContext(), ctl.DB, c.Params("provider"))
	if err != nil {
		return ctl.fail(c, "Failed to fetch payment provider", err)
	}
	return helper.JsonOK(c, dto.FromPaymentProvider(m))
}

func (ctl *ProviderController) PutPayment(c *fiber.Ctx) error {
	var req dto.UpdatePaymentProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	ctx := c.UserContext()
	m, err := service.PaymentProvider(ctx, ctl.DB, c.Params("provider"))
	if err != nil {
		return ctl.fail(c, "Failed to save payment provider", err)
	}
	req.Merge(&m.Credentials)
	if req.DisplayName != nil {
		m.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.IsEnabled != nil {
		m.IsEnabled = *req.IsEnabled
	}
	if req.Settings != nil {
		m.Settings = *req.Settings
	}
	m.UpdatedBy = helper.OptionalUserID(c)
	if err := service.SavePaymentProvider(ctx, ctl.DB, &m); err != nil {
		return helper.InternalError(c, "Failed to save payment provider", err)
	}
	return helper.JsonUpdated(c, dto.FromPaymentProvider(m))
}

// =====================================================
// NOTIFICATION: /api/admin/notification-providers
// =====================================================

func (ctl *ProviderController) ListNotification(c *fiber.Ctx) error {
	rows, err := service.NotificationProviders(c.UserContext(), ctl.DB)
	if err != nil {
		return helper.InternalError(c, "Failed to fetch notification providers", err)
	}
	out := make([]dto.NotificationProviderResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromNotificationProvider(r))
	}
	return helper.JsonList(c, out, int64(len(out)), nil)
}

func (ctl *ProviderController) GetNotification(c *fiber.Ctx) error {
	m, err := service.NotificationProvider(c.UserContext(), ctl.DB, c.Params("provider"))
	if err != nil {
		return ctl.fail(c, "Failed to fetch notification provider", err)
	}
	return helper.JsonOK(c, dto.FromNotificationProvider(m))
}

func (ctl *ProviderController) PutNotification(c *fiber.Ctx) error {
	var req dto.UpdateNotificationProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	ctx := c.UserContext()
	m, err := service.NotificationProvider(ctx, ctl.DB, c.Params("provider"))
	if err != nil {
		return ctl.fail(c, "Failed to save notification provider", err)
	}
	req.Merge(&m.Credentials)
	if req.Channel != nil {
		m.Channel = *req.Channel
	}
	if req.DisplayName != nil {
		m.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.SenderID != nil {
		m.SenderID = strings.TrimSpace(*req.SenderID)
	}
	if req.IsEnabled != nil {
		m.IsEnabled = *req.IsEnabled
	}
	if req.Settings != nil {
		m.Settings = *req.Settings
	}
	m.UpdatedBy = helper.OptionalUserID(c)
	if err := service.SaveNotificationProvider(ctx, ctl.DB, &m); err != nil {
		return helper.InternalError(c, "Failed to save notification provider", err)
	}
	return helper.JsonUpdated(c, dto.FromNotificationProvider(m))
}
