package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/enquiries/dto"
	"estatehub_backend/internals/features/properties/enquiries/model"
	"estatehub_backend/internals/features/properties/enquiries/route"
	"estatehub_backend/internals/testutil"
)

func TestEnquiryFlow(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.EnquiryRoutes(app.Group("/api"), db)

	owner := testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)
	tenant := testutil.NewUser(t, db, "tenant@example.com", constants.RoleTenant)
	stranger := testutil.NewUser(t, db, "stranger@example.com", constants.RoleTenant)
	prop := testutil.NewProperty(t, db, owner.ID(), "Garden flat")

	// Anonymous senders must leave contact details.
	status, body := testutil.Do(t, app, http.MethodPost, "/api/enquiries", fiber.Map{"propertyId": prop.ID}, "")
	require.Equal(t, http.StatusBadRequest, status)
	errs := testutil.Decode[struct {
		Errors map[string][]string `json:"errors"`
	}](t, body)
	assert.Contains(t, errs.Errors, "name")
	assert.Contains(t, errs.Errors, "email")

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/inquiries",
		fiber.Map{"propertyId": prop.ID, "name": "Walk-in", "phone": "9876543210"}, "")
	assert.Equal(t, http.StatusCreated, status)

	// Signed-in senders fall back to their profile.
	status, body = testutil.Do(t, app, http.MethodPost, "/api/enquiries",
		fiber.Map{"propertyId": prop.ID, "message": "Is it pet friendly?"}, tenant.Token)
	require.Equal(t, http.StatusCreated, status, string(body))
	enq := testutil.Decode[model.EnquiryModel](t, body)
	assert.Equal(t, "tenant@example.com", enq.Email)
	assert.Equal(t, model.EnquiryNew, enq.Status)
	id := enq.ID.String()

	status, body = testutil.Do(t, app, http.MethodGet, "/api/enquiries?type=received", nil, owner.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, testutil.Decode[[]dto.EnquiryRow](t, body), 2)

	status, body = testutil.Do(t, app, http.MethodGet, "/api/enquiries", nil, tenant.Token)
	require.Equal(t, http.StatusOK, status)
	sent := testutil.Decode[[]dto.EnquiryRow](t, body)
	require.Len(t, sent, 1)
	assert.Equal(t, "Garden flat", sent[0].PropertyTitle)

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/enquiries/"+id, nil, stranger.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = testutil.Do(t, app, http.MethodPatch, "/api/enquiries/"+id, fiber.Map{"status": "contacted"}, tenant.Token)
	assert.Equal(t, http.StatusForbidden, status, "the sender cannot change status")

	status, _ = testutil.Do(t, app, http.MethodPatch, "/api/enquiries/"+id, fiber.Map{"status": "archived"}, owner.Token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = testutil.Do(t, app, http.MethodPatch, "/api/enquiries/"+id, fiber.Map{"status": "contacted"}, owner.Token)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = testutil.Do(t, app, http.MethodGet, "/api/enquiries?type=received&status=contacted", nil, owner.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, testutil.Decode[[]dto.EnquiryRow](t, body), 1)
}
