package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	boostModel "estatehub_backend/internals/features/billing/boosts/model"
	"estatehub_backend/internals/features/billing/payments/dto"
	"estatehub_backend/internals/features/billing/payments/model"
	"estatehub_backend/internals/features/billing/payments/route"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
	"estatehub_backend/internals/testutil"
)

func TestAdminPayments(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.AdminPaymentRoutes(app.Group("/api/admin", authMiddleware.RequireAuth(db), authMiddleware.RequireAdmin("payments")), db)

	admin := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)
	owner := testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)
	prop := testutil.NewProperty(t, db, owner.ID(), "Lake view flat")

	boost := boostModel.ListingBoostModel{
		PropertyID:   prop.ID,
		UserID:       owner.ID(),
		BoostType:    boostModel.BoostFeatured,
		Status:       boostModel.StatusPendingPayment,
		Amount:       499,
		Currency:     "INR",
		DurationDays: 7,
	}
	require.NoError(t, db.Create(&boost).Error)
	pending := model.PaymentModel{
		UserID:     owner.ID(),
		PropertyID: &prop.ID,
		BoostID:    &boost.ID,
		OrderID:    "BOOST-" + uuid.NewString()[:8],
		Amount:     499,
		Currency:   "INR",
		Status:     model.PaymentPending,
		Provider:   model.ProviderMidtrans,
	}
	require.NoError(t, db.Create(&pending).Error)
	failed := model.PaymentModel{
		UserID:   owner.ID(),
		OrderID:  "BOOST-" + uuid.NewString()[:8],
		Amount:   999,
		Currency: "INR",
		Status:   model.PaymentFailed,
		Provider: model.ProviderDemo,
	}
	require.NoError(t, db.Create(&failed).Error)

	status, _ := testutil.Do(t, app, http.MethodGet, "/api/admin/payments", nil, owner.Token)
	assert.Equal(t, http.StatusForbidden, status)

	t.Run("list joins payer and property", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodGet, "/api/admin/payments?provider=midtrans", nil, admin.Token)
		require.Equal(t, http.StatusOK, status, string(body))
		rows := testutil.Decode[[]dto.PaymentRow](t, body)
		require.Len(t, rows, 1)
		assert.Equal(t, "owner@example.com", rows[0].UserName)
		require.NotNil(t, rows[0].PropertyTitle)
		assert.Equal(t, "Lake view flat", *rows[0].PropertyTitle)
		require.NotNil(t, rows[0].BoostStatus)
		assert.Equal(t, boostModel.StatusPendingPayment, *rows[0].BoostStatus)

		status, body = testutil.Do(t, app, http.MethodGet, "/api/admin/payments?status=failed", nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		rows = testutil.Decode[[]dto.PaymentRow](t, body)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].PropertyTitle)
	})

	t.Run("get", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodGet, "/api/admin/payments/"+pending.ID.String(), nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, pending.OrderID, testutil.Decode[dto.PaymentRow](t, body).OrderID)

		status, _ = testutil.Do(t, app, http.MethodGet, "/api/admin/payments/"+uuid.NewString(), nil, admin.Token)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("manual completion advances the boost", func(t *testing.T) {
		path := "/api/admin/payments/" + pending.ID.String() + "/status"
		status, _ := testutil.Do(t, app, http.MethodPatch, path, fiber.Map{"status": "settled"}, admin.Token)
		assert.Equal(t, http.StatusBadRequest, status)

		status, body := testutil.Do(t, app, http.MethodPatch, path, fiber.Map{"status": "completed", "notes": " bank transfer "}, admin.Token)
		require.Equal(t, http.StatusOK, status, string(body))
		got := testutil.Decode[model.PaymentModel](t, body)
		assert.Equal(t, model.PaymentCompleted, got.Status)
		assert.NotNil(t, got.PaidAt)
		assert.Equal(t, "bank transfer", got.Notes)

		var b boostModel.ListingBoostModel
		require.NoError(t, db.First(&b, "id = ?", boost.ID).Error)
		assert.Equal(t, boostModel.StatusPendingApproval, b.Status)
	})

	t.Run("summary groups by status", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodGet, "/api/admin/payments/summary", nil, admin.Token)
		require.Equal(t, http.StatusOK, status, string(body))
		sums := testutil.Decode[[]dto.PaymentSummary](t, body)
		require.Len(t, sums, 2)
		assert.Equal(t, dto.PaymentSummary{Status: "completed", Count: 1, Amount: 499}, sums[0])
		assert.Equal(t, dto.PaymentSummary{Status: "failed", Count: 1, Amount: 999}, sums[1])
	})
}
