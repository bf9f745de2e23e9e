package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/content/pages/dto"
	"estatehub_backend/internals/features/content/pages/route"
	"estatehub_backend/internals/testutil"
)

func TestPagePublishingAndRollback(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.PageRoutes(app.Group("/api"), db)

	admin := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)
	tenant := testutil.NewUser(t, db, "tenant@example.com", constants.RoleTenant)

	status, _ := testutil.Do(t, app, http.MethodPut, "/api/pages/about", fiber.Map{"title": "About"}, tenant.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := testutil.Do(t, app, http.MethodPut, "/api/pages/about", fiber.Map{"title": "About", "isPublished": false}, admin.Token)
	require.Equal(t, http.StatusCreated, status, string(body))

	// Drafts are hidden from everyone but admins.
	status, _ = testutil.Do(t, app, http.MethodGet, "/api/pages/about", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = testutil.Do(t, app, http.MethodGet, "/api/pages/about", nil, admin.Token)
	assert.Equal(t, http.StatusOK, status)

	status, body = testutil.Do(t, app, http.MethodPut, "/api/pages/about",
		fiber.Map{"title": "About us", "isPublished": true}, admin.Token)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, 1, testutil.Decode[dto.PageResponse](t, body).CurrentVersion)

	status, body = testutil.Do(t, app, http.MethodGet, "/api/pages/about", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "About us", testutil.Decode[dto.PageResponse](t, body).Title)

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/pages/about/versions", nil, tenant.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = testutil.Do(t, app, http.MethodPost, "/api/pages/about/rollback/1", nil, admin.Token)
	require.Equal(t, http.StatusOK, status, string(body))
	rb := testutil.Decode[dto.RollbackResponse](t, body)
	assert.Equal(t, 1, rb.RestoredVersion)
	assert.Equal(t, 2, rb.SnapshotVersion)
	assert.Equal(t, "About", rb.Page.Title)
	assert.False(t, rb.Page.IsPublished)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/pages/about/rollback/9", nil, admin.Token)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/pages", fiber.Map{"pageKey": "about", "title": "Dup"}, admin.Token)
	assert.Equal(t, http.StatusBadRequest, status)
}
