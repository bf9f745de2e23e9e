package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/billing/boosts/dto"
	"estatehub_backend/internals/features/billing/boosts/model"
	"estatehub_backend/internals/features/billing/boosts/service"
	paymentModel "estatehub_backend/internals/features/billing/payments/model"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/logger"
)

type BoostController struct {
	DB *gorm.DB
}

func NewBoostController(db *gorm.DB) *BoostController {
	return &BoostController{DB: db}
}

// =====================================================
// PLANS: GET /api/boosts/plans
// =====================================================

func (ctl *BoostController) Plans(c *fiber.Ctx) error {
	_, live := service.ResolveGateway(c.UserContext(), ctl.DB)
	return helper.JsonOK(c, fiber.Map{
		"plans":    service.Plans(),
		"demoMode": !live,
	})
}

// =====================================================
// CREATE: POST /api/boosts/create
// =====================================================

func (ctl *BoostController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateBoostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.BoostType = strings.ToLower(strings.TrimSpace(req.BoostType))
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	out, err := service.Create(c.UserContext(), ctl.DB, userID, helper.IsAdmin(c), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, out)
}

// =====================================================
// CALLBACK: POST /api/boosts/payment-callback
// =====================================================

// PaymentCallback is called by the client after checkout. The gateway is asked for the
// transaction status; the client's own claim is never trusted.
func (ctl *BoostController) PaymentCallback(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.PaymentCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	ctx := c.UserContext()
	q := ctl.DB.WithContext(ctx).Where("user_id = ?", userID)
	switch {
	case req.PaymentID != nil:
		q = q.Where("id = ?", *req.PaymentID)
	case strings.TrimSpace(req.OrderID) != "":
		q = q.Where("order_id = ?", strings.TrimSpace(req.OrderID))
	default:
		return helper.JsonValidationError(c, map[string][]string{"paymentId": {"paymentId or orderId is required"}})
	}
	var pay paymentModel.PaymentModel
	if err := q.First(&pay).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
		}
		return helper.InternalError(c, "Failed to verify payment", err)
	}

	if pay.Provider == paymentModel.ProviderDemo {
		boost, err := service.ApplyPaymentStatus(ctx, ctl.DB, &pay, pay.Status, service.GatewayStatus{})
		if err != nil {
			return helper.InternalError(c, "Failed to verify payment", err)
		}
		return helper.JsonOK(c, dto.CallbackResponse{Boost: boost, Payment: pay})
	}

	gw, live := service.ResolveGateway(ctx, ctl.DB)
	if !live {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payment gateway is not configured")
	}
	st, err := gw.Status(ctx, pay.OrderID)
	if err != nil {
		logger.FromCtx(c).Warn("gateway status check failed", zap.String("order_id", pay.OrderID), zap.Error(err))
		return helper.JsonError(c, fiber.StatusBadGateway, "Payment gateway error")
	}
	status := service.MapGatewayStatus(pay.Status, st.TransactionStatus, st.FraudStatus)
	boost, err := service.ApplyPaymentStatus(ctx, ctl.DB, &pay, status, st)
	if err != nil {
		return helper.InternalError(c, "Failed to verify payment", err)
	}
	return helper.JsonOK(c, dto.CallbackResponse{Boost: boost, Payment: pay})
}

// =====================================================
// WEBHOOK: POST /api/boosts/webhook
// =====================================================

// Webhook accepts gateway notifications. Unknown orders answer 200 so the gateway stops retrying.
func (ctl *BoostController) Webhook(c *fiber.Ctx) error {
	var n dto.Notification
	if err := c.BodyParser(&n); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	ctx := c.UserContext()
	gw, live := service.ResolveGateway(ctx, ctl.DB)
	if !live {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payment gateway is not configured")
	}
	if !gw.VerifySignature(n) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid signature")
	}

	var pay paymentModel.PaymentModel
	if err := ctl.DB.WithContext(ctx).Where("order_id = ?", n.OrderID).First(&pay).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.FromCtx(c).Warn("webhook for unknown order", zap.String("order_id", n.OrderID))
			return helper.JsonOK(c, fiber.Map{"status": "ignored", "reason": "payment not found"})
		}
		return helper.InternalError(c, "Failed to process notification", err)
	}
	st := service.GatewayStatus{
		TransactionStatus: n.TransactionStatus,
		FraudStatus:       n.FraudStatus,
		TransactionID:     n.TransactionID,
		PaymentType:       n.PaymentType,
		GrossAmount:       n.GrossAmount,
	}
	status := service.MapGatewayStatus(pay.Status, n.TransactionStatus, n.FraudStatus)
	boost, err := service.ApplyPaymentStatus(ctx, ctl.DB, &pay, status, st)
	if err != nil {
		return helper.InternalError(c, "Failed to process notification", err)
	}
	resp := fiber.Map{"status": "ok", "paymentId": pay.ID, "paymentStatus": pay.Status}
	if boost != nil {
		resp["boostStatus"] = boost.Status
	}
	return helper.JsonOK(c, resp)
}

// =====================================================
// MINE: GET /api/my-boosts
// =====================================================

func (ctl *BoostController) listRows(c *fiber.Ctx, q *gorm.DB) error {
	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch boosts", err)
	}
	rows := []dto.BoostRow{}
	if err := q.Select(dto.BoostRowSelect).
		Order("listing_boosts.created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&rows).Error; err != nil {
		return helper.InternalError(c, "Failed to fetch boosts", err)
	}
	return helper.JsonList(c, rows, total, &p)
}

func (ctl *BoostController) baseQuery(c *fiber.Ctx) *gorm.DB {
	q := ctl.DB.WithContext(c.UserContext()).
		Table("listing_boosts").
		Joins("LEFT JOIN properties ON properties.id = listing_boosts.property_id").
		Joins("LEFT JOIN users ON users.id = listing_boosts.user_id").
		Joins("LEFT JOIN payments ON payments.id = listing_boosts.payment_id")
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("listing_boosts.status = ?", st)
	}
	if t := strings.TrimSpace(c.Query("boostType")); t != "" {
		q = q.Where("listing_boosts.boost_type = ?", t)
	}
	return q
}

func (ctl *BoostController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.listRows(c, ctl.baseQuery(c).Where("listing_boosts.user_id = ?", userID))
}

// =====================================================
// ADMIN: /api/admin/boosts
// =====================================================

func (ctl *BoostController) AdminList(c *fiber.Ctx) error {
	q := ctl.baseQuery(c)
	if pid := strings.TrimSpace(c.Query("propertyId")); pid != "" {
		q = q.Where("listing_boosts.property_id = ?", pid)
	}
	return ctl.listRows(c, q)
}

func (ctl *BoostController) review(c *fiber.Ctx, approve bool) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ReviewBoostRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	var b model.ListingBoostModel
	if approve {
		b, err = service.Approve(c.UserContext(), ctl.DB, id, helper.OptionalUserID(c), req.Notes)
	} else {
		b, err = service.Reject(c.UserContext(), ctl.DB, id, helper.OptionalUserID(c), req.Notes)
	}
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, b)
}

func (ctl *BoostController) Approve(c *fiber.Ctx) error { return ctl.review(c, true) }
func (ctl *BoostController) Reject(c *fiber.Ctx) error  { return ctl.review(c, false) }
