package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/categories/model"
	"estatehub_backend/internals/features/properties/categories/route"
	"estatehub_backend/internals/testutil"
)

func TestCategoryAdminWritesAndListing(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.CategoryRoutes(app.Group("/api"), db)

	admin := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)
	tenant := testutil.NewUser(t, db, "tenant@example.com", constants.RoleTenant)

	payload := fiber.Map{"name": "Residential", "segment": "rent", "supportsRent": true}

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/categories", payload, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = testutil.Do(t, app, http.MethodPost, "/api/categories", payload, tenant.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := testutil.Do(t, app, http.MethodPost, "/api/categories", payload, admin.Token)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := testutil.Decode[model.PropertyCategoryModel](t, body)
	assert.Equal(t, "residential", created.Slug)

	status, body = testutil.Do(t, app, http.MethodPost, "/api/categories", fiber.Map{"name": "RESIDENTIAL", "segment": "rent"}, admin.Token)
	assert.Equal(t, http.StatusBadRequest, status, string(body))

	status, body = testutil.Do(t, app, http.MethodPatch, "/api/categories/"+created.ID.String(),
		fiber.Map{"isActive": false}, admin.Token)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.False(t, testutil.Decode[model.PropertyCategoryModel](t, body).IsActive)

	// Inactive categories are still listed.
	status, body = testutil.Do(t, app, http.MethodGet, "/api/categories", nil, "")
	require.Equal(t, http.StatusOK, status)
	rows := testutil.Decode[[]model.PropertyCategoryModel](t, body)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsActive)

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/categories/residential", nil, "")
	assert.Equal(t, http.StatusOK, status)
}
