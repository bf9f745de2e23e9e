package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/billing/boosts/dto"
	"estatehub_backend/internals/features/billing/boosts/model"
	paymentModel "estatehub_backend/internals/features/billing/payments/model"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	"estatehub_backend/internals/testutil"
)

type fakeGateway struct {
	chargeErr error
	charges   []Charge
}

func (f *fakeGateway) Name() string      { return paymentModel.ProviderMidtrans }
func (f *fakeGateway) ClientKey() string { return "client-key" }
func (f *fakeGateway) CreateCharge(_ context.Context, ch Charge) (ChargeResult, error) {
	f.charges = append(f.charges, ch)
	if f.chargeErr != nil {
		return ChargeResult{}, f.chargeErr
	}
	return ChargeResult{Token: "snap-token", RedirectURL: "https://pay.example.com/" + ch.OrderID}, nil
}
func (f *fakeGateway) Status(context.Context, string) (GatewayStatus, error) {
	return GatewayStatus{}, nil
}
func (f *fakeGateway) VerifySignature(dto.Notification) bool { return true }

func useGateway(t *testing.T, gw Gateway) {
	t.Helper()
	prev := ResolveGateway
	ResolveGateway = func(context.Context, *gorm.DB) (Gateway, bool) { return gw, gw != nil }
	t.Cleanup(func() { ResolveGateway = prev })
}

func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func seedProperty(t *testing.T, db *gorm.DB, owner uuid.UUID) propertyModel.PropertyModel {
	t.Helper()
	rent := 25000.0
	p := propertyModel.PropertyModel{
		Title:        "2BHK near the lake",
		PropertyType: "apartment",
		ListingType:  "rent",
		Rent:         &rent,
		Address:      "12 Lake Road",
		City:         "Pune",
		State:        "Maharashtra",
		Status:       constants.PropertyActive,
		OwnerID:      owner,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "expected fiber error, got %v", err)
	return fe.Code
}

func TestCreateInDemoMode(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	useGateway(t, nil)
	owner := uuid.New()
	prop := seedProperty(t, db, owner)

	out, err := Create(ctx, db, owner, false, dto.CreateBoostRequest{PropertyID: prop.ID, BoostType: model.BoostFeatured})
	require.NoError(t, err)
	assert.True(t, out.DemoMode)
	assert.Equal(t, model.StatusPendingApproval, out.Boost.Status)
	assert.Equal(t, paymentModel.PaymentCompleted, out.Payment.Status)
	assert.Equal(t, paymentModel.ProviderDemo, out.Payment.Provider)
	assert.NotNil(t, out.Payment.PaidAt)
	assert.Equal(t, 499.0, out.Boost.Amount)

	_, err = Create(ctx, db, owner, false, dto.CreateBoostRequest{PropertyID: prop.ID, BoostType: model.BoostFeatured})
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	_, err = Create(ctx, db, owner, false, dto.CreateBoostRequest{PropertyID: prop.ID, BoostType: model.BoostPremium})
	assert.NoError(t, err, "a different boost type is allowed")

	_, err = Create(ctx, db, uuid.New(), false, dto.CreateBoostRequest{PropertyID: prop.ID, BoostType: model.BoostPremium})
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	_, err = Create(ctx, db, owner, false, dto.CreateBoostRequest{PropertyID: uuid.New(), BoostType: model.BoostPremium})
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestCreateWithGateway(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	owner := uuid.New()
	prop := seedProperty(t, db, owner)

	gw := &fakeGateway{}
	useGateway(t, gw)
	out, err := Create(ctx, db, owner, false, dto.CreateBoostRequest{PropertyID: prop.ID, BoostType: model.BoostPremium})
	require.NoError(t, err)
	assert.False(t, out.DemoMode)
	assert.Equal(t, "snap-token", out.SnapToken)
	assert.Equal(t, "client-key", out.ClientKey)
	assert.Equal(t, model.StatusPendingPayment, out.Boost.Status)
	require.Len(t, gw.charges, 1)
	assert.Equal(t, out.Payment.OrderID, gw.charges[0].OrderID)

	var stored paymentModel.PaymentModel
	require.NoError(t, db.First(&stored, "id = ?", out.Payment.ID).Error)
	assert.Equal(t, "snap-token", stored.SnapToken)

	boost, err := ApplyPaymentStatus(ctx, db, &stored, paymentModel.PaymentCompleted, GatewayStatus{TransactionStatus: "settlement", TransactionID: "tx-1"})
	require.NoError(t, err)
	require.NotNil(t, boost)
	assert.Equal(t, model.StatusPendingApproval, boost.Status)
	assert.Equal(t, "tx-1", stored.GatewayRef)

	useGateway(t, &fakeGateway{chargeErr: errors.New("gateway down")})
	_, err = Create(ctx, db, owner, false, dto.CreateBoostRequest{PropertyID: prop.ID, BoostType: model.BoostFeatured})
	assert.Equal(t, fiber.StatusBadGateway, fiberCode(t, err))
	var failed paymentModel.PaymentModel
	require.NoError(t, db.Where("status = ?", paymentModel.PaymentFailed).First(&failed).Error)
	assert.NotNil(t, failed.FailedAt)
	var cancelled model.ListingBoostModel
	require.NoError(t, db.First(&cancelled, "id = ?", *failed.BoostID).Error)
	assert.Equal(t, model.StatusCancelled, cancelled.Status)

	useGateway(t, &fakeGateway{})
	_, err = Create(ctx, db, owner, false, dto.CreateBoostRequest{PropertyID: prop.ID, BoostType: model.BoostFeatured})
	assert.NoError(t, err, "a failed charge does not block a retry")
}

func TestApproveRequiresPayment(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	owner := uuid.New()
	prop := seedProperty(t, db, owner)
	useGateway(t, &fakeGateway{})

	out, err := Create(ctx, db, owner, false, dto.CreateBoostRequest{PropertyID: prop.ID, BoostType: model.BoostFeatured})
	require.NoError(t, err)
	require.Equal(t, model.StatusPendingPayment, out.Boost.Status)

	_, err = Approve(ctx, db, out.Boost.ID, nil, "")
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	var b model.ListingBoostModel
	require.NoError(t, db.First(&b, "id = ?", out.Boost.ID).Error)
	assert.Equal(t, model.StatusPendingPayment, b.Status)
	assert.False(t, b.IsActive)
	var p propertyModel.PropertyModel
	require.NoError(t, db.First(&p, "id = ?", prop.ID).Error)
	assert.False(t, p.IsFeatured)

	var pay paymentModel.PaymentModel
	require.NoError(t, db.First(&pay, "id = ?", out.Payment.ID).Error)
	_, err = ApplyPaymentStatus(ctx, db, &pay, paymentModel.PaymentCompleted, GatewayStatus{})
	require.NoError(t, err)

	approved, err := Approve(ctx, db, out.Boost.ID, nil, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
	require.NoError(t, db.First(&p, "id = ?", prop.ID).Error)
	assert.True(t, p.IsFeatured)
}

func TestApproveRejectAndExpire(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	useGateway(t, nil)
	owner := uuid.New()
	prop := seedProperty(t, db, owner)
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	freezeNow(t, start)

	featured, err := Create(ctx, db, owner, false, dto.CreateBoostRequest{PropertyID: prop.ID, BoostType: model.BoostFeatured})
	require.NoError(t, err)
	premium, err := Create(ctx, db, owner, false, dto.CreateBoostRequest{PropertyID: prop.ID, BoostType: model.BoostPremium})
	require.NoError(t, err)

	approved, err := Approve(ctx, db, featured.Boost.ID, nil, " looks good ")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
	assert.True(t, approved.IsActive)
	require.NotNil(t, approved.EndDate)
	assert.Equal(t, start.Add(model.BoostDuration), approved.EndDate.UTC())
	assert.Equal(t, "looks good", approved.AdminNotes)

	rejected, err := Reject(ctx, db, premium.Boost.ID, nil, "blurry photos")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.Status)

	var p propertyModel.PropertyModel
	require.NoError(t, db.First(&p, "id = ?", prop.ID).Error)
	assert.True(t, p.IsFeatured)
	assert.False(t, p.IsPremium, "rejecting leaves the property alone")

	_, err = Approve(ctx, db, premium.Boost.ID, nil, "")
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	_, err = Reject(ctx, db, featured.Boost.ID, nil, "")
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	n, err := ExpireBoosts(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, n)

	freezeNow(t, start.Add(model.BoostDuration+time.Hour))
	n, err = ExpireBoosts(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, db.First(&p, "id = ?", prop.ID).Error)
	assert.False(t, p.IsFeatured)
	var b model.ListingBoostModel
	require.NoError(t, db.First(&b, "id = ?", featured.Boost.ID).Error)
	assert.Equal(t, model.StatusExpired, b.Status)
}

func TestMapGatewayStatus(t *testing.T) {
	cases := []struct {
		tx, fraud, want string
	}{
		{"capture", "accept", paymentModel.PaymentCompleted},
		{"capture", "", paymentModel.PaymentCompleted},
		{"capture", "challenge", paymentModel.PaymentPending},
		{"capture", "deny", paymentModel.PaymentFailed},
		{"settlement", "", paymentModel.PaymentCompleted},
		{"pending", "", paymentModel.PaymentPending},
		{"expire", "", paymentModel.PaymentFailed},
		{"cancel", "", paymentModel.PaymentFailed},
		{"refund", "", paymentModel.PaymentRefunded},
		{"authorize", "", "current"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapGatewayStatus("current", tc.tx, tc.fraud), tc.tx+"/"+tc.fraud)
	}
}

func TestMidtransSignature(t *testing.T) {
	m := NewMidtrans("server-key", "client-key", false)
	sum := sha512.Sum512([]byte("BOOST-1" + "200" + "499.00" + "server-key"))
	n := dto.Notification{OrderID: "BOOST-1", StatusCode: "200", GrossAmount: "499.00", SignatureKey: hex.EncodeToString(sum[:])}
	assert.True(t, m.VerifySignature(n))

	n.GrossAmount = "1.00"
	assert.False(t, m.VerifySignature(n))
	n.SignatureKey = ""
	assert.False(t, m.VerifySignature(n))
}
