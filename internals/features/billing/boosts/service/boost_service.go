package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"estatehub_backend/internals/configs"
	"estatehub_backend/internals/features/billing/boosts/dto"
	"estatehub_backend/internals/features/billing/boosts/model"
	paymentModel "estatehub_backend/internals/features/billing/payments/model"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	propertyService "estatehub_backend/internals/features/properties/properties/service"
	userModel "estatehub_backend/internals/features/users/user/model"
	"estatehub_backend/internals/logger"
	"estatehub_backend/internals/metrics"
)

// now is swapped in tests.
var now = time.Now

// Plans reads prices from BOOST_PRICE_FEATURED / BOOST_PRICE_PREMIUM.
func Plans() []dto.BoostPlan {
	currency := strings.ToUpper(configs.GetEnv("BOOST_CURRENCY", "INR"))
	days := int(model.BoostDuration / (24 * time.Hour))
	return []dto.BoostPlan{
		{
			Type:         model.BoostFeatured,
			Name:         "Featured listing",
			Description:  "Shown in the featured section and ahead of regular results",
			Price:        configs.GetEnvFloat("BOOST_PRICE_FEATURED", 499),
			Currency:     currency,
			DurationDays: days,
		},
		{
			Type:         model.BoostPremium,
			Name:         "Premium listing",
			Description:  "Premium badge and top placement in search",
			Price:        configs.GetEnvFloat("BOOST_PRICE_PREMIUM", 999),
			Currency:     currency,
			DurationDays: days,
		},
	}
}

func PlanFor(boostType string) (dto.BoostPlan, bool) {
	for _, p := range Plans() {
		if p.Type == boostType {
			return p, true
		}
	}
	return dto.BoostPlan{}, false
}

func newOrderID() string {
	return "BOOST-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:20])
}

// Create opens a boost and its payment for a property the caller owns. With no gateway the
// payment completes at once (demo mode) and the boost waits for approval.
func Create(ctx context.Context, db *gorm.DB, userID uuid.UUID, isAdmin bool, req dto.CreateBoostRequest) (dto.CreateBoostResponse, error) {
	var out dto.CreateBoostResponse
	plan, ok := PlanFor(req.BoostType)
	if !ok {
		return out, fiber.NewError(fiber.StatusBadRequest, "Unknown boost type")
	}

	var prop propertyModel.PropertyModel
	if err := db.WithContext(ctx).First(&prop, "id = ?", req.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return out, err
	}
	if prop.OwnerID != userID && !isAdmin {
		return out, fiber.NewError(fiber.StatusForbidden, "You can only boost your own property")
	}

	var open int64
	if err := db.WithContext(ctx).Model(&model.ListingBoostModel{}).
		Where("property_id = ? AND boost_type = ? AND status IN ?", prop.ID, plan.Type,
			[]string{model.StatusPendingPayment, model.StatusPendingApproval, model.StatusApproved}).
		Count(&open).Error; err != nil {
		return out, err
	}
	if open > 0 {
		return out, fiber.NewError(fiber.StatusBadRequest, "This property already has an open "+plan.Type+" boost")
	}

	gw, live := ResolveGateway(ctx, db)

	boost := model.ListingBoostModel{
		ID:           uuid.New(),
		PropertyID:   prop.ID,
		UserID:       userID,
		BoostType:    plan.Type,
		Status:       model.StatusPendingPayment,
		Amount:       plan.Price,
		Currency:     plan.Currency,
		DurationDays: plan.DurationDays,
	}
	pay := paymentModel.PaymentModel{
		ID:          uuid.New(),
		UserID:      userID,
		PropertyID:  &prop.ID,
		BoostID:     &boost.ID,
		OrderID:     newOrderID(),
		Amount:      plan.Price,
		Currency:    plan.Currency,
		Status:      paymentModel.PaymentPending,
		Provider:    paymentModel.ProviderDemo,
		Description: plan.Name + ": " + prop.Title,
	}
	boost.PaymentID = &pay.ID
	if live {
		pay.Provider = gw.Name()
	} else {
		pay.SetStatus(paymentModel.PaymentCompleted, now())
		pay.PaymentType = "demo"
		boost.Status = model.StatusPendingApproval
	}

	if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pay).Error; err != nil {
			return err
		}
		return tx.Create(&boost).Error
	}); err != nil {
		return out, err
	}

	mode := "demo"
	if live {
		mode = gw.Name()
	}
	metrics.BoostsCreated.WithLabelValues(plan.Type, mode).Inc()

	out = dto.CreateBoostResponse{Boost: boost, Payment: pay, DemoMode: !live}
	if !live {
		out.Message = "Demo mode: payment marked as completed. The boost is awaiting admin approval."
		return out, nil
	}

	var user userModel.UserModel
	if err := db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		logger.L().Warn("boost customer lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
	res, err := gw.CreateCharge(ctx, Charge{
		OrderID:     pay.OrderID,
		Amount:      pay.Amount,
		ItemID:      boost.ID.String(),
		ItemName:    plan.Name,
		Description: prop.Title,
		Customer:    Customer{Name: user.Name, Email: user.EmailValue(), Phone: user.PhoneValue()},
	})
	if err != nil {
		logger.L().Error("boost charge failed", zap.String("order_id", pay.OrderID), zap.Error(err))
		at := now()
		pay.SetStatus(paymentModel.PaymentFailed, at)
		pay.Notes = err.Error()
		boost.Status = model.StatusCancelled
		if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&pay).Error; err != nil {
				return err
			}
			return tx.Save(&boost).Error
		}); err != nil {
			logger.L().Error("boost charge failure not recorded", zap.String("order_id", pay.OrderID), zap.Error(err))
			return out, err
		}
		return out, fiber.NewError(fiber.StatusBadGateway, "Payment gateway error")
	}
	pay.SnapToken = res.Token
	pay.RedirectURL = res.RedirectURL
	if err := db.WithContext(ctx).Model(&pay).Updates(map[string]any{
		"snap_token":   res.Token,
		"redirect_url": res.RedirectURL,
	}).Error; err != nil {
		return out, err
	}
	out.Payment = pay
	out.SnapToken = res.Token
	out.RedirectURL = res.RedirectURL
	out.ClientKey = gw.ClientKey()
	out.Message = "Complete the payment to submit the boost for approval."
	return out, nil
}

// ApplyPaymentStatus records a new payment status and moves the linked boost along:
// completed → pending_approval, failed → cancelled.
func ApplyPaymentStatus(ctx context.Context, db *gorm.DB, pay *paymentModel.PaymentModel, status string, gs GatewayStatus) (*model.ListingBoostModel, error) {
	var boost *model.ListingBoostModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if status != pay.Status {
			pay.SetStatus(status, now())
		}
		if gs.TransactionID != "" {
			pay.GatewayRef = gs.TransactionID
		}
		if gs.PaymentType != "" {
			pay.PaymentType = gs.PaymentType
		}
		if gs.TransactionStatus != "" {
			pay.GatewayPayload = map[string]any{
				"transaction_status": gs.TransactionStatus,
				"fraud_status":       gs.FraudStatus,
				"gross_amount":       gs.GrossAmount,
			}
		}
		if err := tx.Save(pay).Error; err != nil {
			return err
		}
		if pay.BoostID == nil {
			return nil
		}
		var b model.ListingBoostModel
		if err := tx.First(&b, "id = ?", *pay.BoostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		switch {
		case pay.Status == paymentModel.PaymentCompleted && b.Status == model.StatusPendingPayment:
			b.Status = model.StatusPendingApproval
		case (pay.Status == paymentModel.PaymentFailed || pay.Status == paymentModel.PaymentRefunded) &&
			(b.Status == model.StatusPendingPayment || b.Status == model.StatusPendingApproval):
			b.Status = model.StatusCancelled
		default:
			boost = &b
			return nil
		}
		boost = &b
		return tx.Save(&b).Error
	})
	return boost, err
}

func findBoost(ctx context.Context, db *gorm.DB, id uuid.UUID) (model.ListingBoostModel, error) {
	var b model.ListingBoostModel
	if err := db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b, fiber.NewError(fiber.StatusNotFound, "Boost not found")
		}
		return b, err
	}
	return b, nil
}

// Approve starts the boost window and switches the property flag on.
// Only paid boosts (pending_approval) qualify. The two writes are sequential, not one
// transaction; re-approving only re-asserts the flag.
func Approve(ctx context.Context, db *gorm.DB, id uuid.UUID, reviewer *uuid.UUID, notes string) (model.ListingBoostModel, error) {
	b, err := findBoost(ctx, db, id)
	if err != nil {
		return b, err
	}
	switch b.Status {
	case model.StatusPendingApproval, model.StatusApproved:
	case model.StatusPendingPayment:
		return b, fiber.NewError(fiber.StatusBadRequest, "Boost is awaiting payment")
	default:
		return b, fiber.NewError(fiber.StatusBadRequest, "Boost is "+b.Status+" and cannot be approved")
	}

	if b.Status != model.StatusApproved {
		start := now()
		end := start.Add(model.BoostDuration)
		b.Status = model.StatusApproved
		b.IsActive = true
		b.StartDate = &start
		b.EndDate = &end
		b.ReviewedBy = reviewer
		b.ReviewedAt = &start
		if strings.TrimSpace(notes) != "" {
			b.AdminNotes = strings.TrimSpace(notes)
		}
		if err := db.WithContext(ctx).Save(&b).Error; err != nil {
			return b, err
		}
	}

	if err := db.WithContext(ctx).Model(&propertyModel.PropertyModel{}).
		Where("id = ?", b.PropertyID).
		Update(model.PropertyFlagColumn(b.BoostType), true).Error; err != nil {
		return b, err
	}
	syncProperty(ctx, db, b.PropertyID)
	return b, nil
}

// Reject records the decision on the boost only; the property is left untouched.
func Reject(ctx context.Context, db *gorm.DB, id uuid.UUID, reviewer *uuid.UUID, notes string) (model.ListingBoostModel, error) {
	b, err := findBoost(ctx, db, id)
	if err != nil {
		return b, err
	}
	if b.Status != model.StatusPendingApproval && b.Status != model.StatusPendingPayment {
		return b, fiber.NewError(fiber.StatusBadRequest, "Only pending boosts can be rejected")
	}
	at := now()
	b.Status = model.StatusRejected
	b.IsActive = false
	b.ReviewedBy = reviewer
	b.ReviewedAt = &at
	b.AdminNotes = strings.TrimSpace(notes)
	return b, db.WithContext(ctx).Save(&b).Error
}

// ExpireBoosts ends approved boosts past their end date and clears the property flag when no
// other live boost of the same type remains.
func ExpireBoosts(ctx context.Context, db *gorm.DB) (int, error) {
	t := now()
	var due []model.ListingBoostModel
	if err := db.WithContext(ctx).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", model.StatusApproved, t).
		Find(&due).Error; err != nil {
		return 0, err
	}
	for _, b := range due {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&model.ListingBoostModel{}).Where("id = ?", b.ID).
				Updates(map[string]any{"status": model.StatusExpired, "is_active": false}).Error; err != nil {
				return err
			}
			var live int64
			if err := tx.Model(&model.ListingBoostModel{}).
				Where("property_id = ? AND boost_type = ? AND status = ? AND end_date >= ?",
					b.PropertyID, b.BoostType, model.StatusApproved, t).
				Count(&live).Error; err != nil {
				return err
			}
			if live > 0 {
				return nil
			}
			return tx.Model(&propertyModel.PropertyModel{}).Where("id = ?", b.PropertyID).
				Update(model.PropertyFlagColumn(b.BoostType), false).Error
		})
		if err != nil {
			return 0, err
		}
		syncProperty(ctx, db, b.PropertyID)
	}
	return len(due), nil
}

func syncProperty(ctx context.Context, db *gorm.DB, id uuid.UUID) {
	var p propertyModel.PropertyModel
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err == nil {
		propertyService.SyncIndex(ctx, p)
	}
}
