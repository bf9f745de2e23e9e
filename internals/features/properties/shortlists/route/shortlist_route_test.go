package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/shortlists/dto"
	"estatehub_backend/internals/features/properties/shortlists/route"
	"estatehub_backend/internals/testutil"
)

func TestShortlist(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.ShortlistRoutes(app.Group("/api"), db)

	owner := testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)
	tenant := testutil.NewUser(t, db, "tenant@example.com", constants.RoleTenant)
	prop := testutil.NewProperty(t, db, owner.ID(), "Sea facing 3BHK")
	path := "/api/shortlists/check/" + prop.ID.String()

	status, _ := testutil.Do(t, app, http.MethodGet, "/api/shortlists", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := testutil.Do(t, app, http.MethodGet, path, nil, tenant.Token)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, testutil.Decode[dto.ShortlistCheckResponse](t, body).Shortlisted)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/shortlists", fiber.Map{"propertyId": prop.ID, "notes": "call Sunday"}, tenant.Token)
	require.Equal(t, http.StatusCreated, status)
	status, _ = testutil.Do(t, app, http.MethodPost, "/api/shortlists", fiber.Map{"propertyId": prop.ID}, tenant.Token)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = testutil.Do(t, app, http.MethodPost, "/api/shortlists", fiber.Map{"propertyId": uuid.New()}, tenant.Token)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = testutil.Do(t, app, http.MethodGet, path, nil, tenant.Token)
	require.Equal(t, http.StatusOK, status)
	check := testutil.Decode[dto.ShortlistCheckResponse](t, body)
	assert.True(t, check.Shortlisted)
	require.NotNil(t, check.ID)

	status, body = testutil.Do(t, app, http.MethodGet, "/api/shortlists", nil, tenant.Token)
	require.Equal(t, http.StatusOK, status)
	items := testutil.Decode[[]dto.ShortlistResponse](t, body)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Property)
	assert.Equal(t, "Sea facing 3BHK", items[0].Property.Title)

	// Another user's entry is invisible.
	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/shortlists/"+check.ID.String(), nil, owner.Token)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/shortlists/property/"+prop.ID.String(), nil, tenant.Token)
	assert.Equal(t, http.StatusOK, status)
	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/shortlists/property/"+prop.ID.String(), nil, tenant.Token)
	assert.Equal(t, http.StatusNotFound, status)
}
