package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	"estatehub_backend/internals/features/properties/reports/dto"
	"estatehub_backend/internals/features/properties/reports/model"
	"estatehub_backend/internals/features/properties/reports/route"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
	"estatehub_backend/internals/testutil"
)

func TestReportReview(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	api := app.Group("/api")
	route.ReportRoutes(api, db)
	route.AdminReportRoutes(api.Group("/admin", authMiddleware.RequireAuth(db), authMiddleware.RequireAdmin("reports")), db)

	owner := testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)
	tenant := testutil.NewUser(t, db, "tenant@example.com", constants.RoleTenant)
	admin := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)
	prop := testutil.NewProperty(t, db, owner.ID(), "Too good to be true")

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/reports", fiber.Map{"propertyId": prop.ID, "reason": "scam"}, tenant.Token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := testutil.Do(t, app, http.MethodPost, "/api/reports",
		fiber.Map{"propertyId": prop.ID, "reason": "fraud", "description": " asks for deposit upfront "}, tenant.Token)
	require.Equal(t, http.StatusCreated, status, string(body))
	report := testutil.Decode[model.ReportModel](t, body)
	assert.Equal(t, model.ReportPending, report.Status)
	assert.Equal(t, "asks for deposit upfront", report.Description)

	status, body = testutil.Do(t, app, http.MethodGet, "/api/reports", nil, tenant.Token)
	require.Equal(t, http.StatusOK, status)
	mine := testutil.Decode[[]dto.ReportRow](t, body)
	require.Len(t, mine, 1)
	assert.Equal(t, "Too good to be true", mine[0].PropertyTitle)

	status, _ = testutil.Do(t, app, http.MethodPatch, "/api/admin/reports/"+report.ID.String(), fiber.Map{"status": "resolved"}, tenant.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = testutil.Do(t, app, http.MethodPatch, "/api/admin/reports/"+report.ID.String(),
		fiber.Map{"status": "resolved", "resolution": "Listing removed", "deactivateProperty": true}, admin.Token)
	require.Equal(t, http.StatusOK, status, string(body))
	reviewed := testutil.Decode[model.ReportModel](t, body)
	assert.Equal(t, model.ReportResolved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, admin.ID(), *reviewed.ReviewedBy)

	var p propertyModel.PropertyModel
	require.NoError(t, db.First(&p, "id = ?", prop.ID).Error)
	assert.Equal(t, constants.PropertyInactive, p.Status)
}
