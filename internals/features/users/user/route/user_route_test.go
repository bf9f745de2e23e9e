package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	roleModel "estatehub_backend/internals/features/users/roles/model"
	"estatehub_backend/internals/features/users/user/dto"
	"estatehub_backend/internals/features/users/user/model"
	"estatehub_backend/internals/features/users/user/route"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
	"estatehub_backend/internals/testutil"
)

func TestAdminUserManagement(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.AdminUserRoutes(app.Group("/api/admin", authMiddleware.RequireAuth(db), authMiddleware.RequireAdmin("users")), db)

	admin := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)
	tenant := testutil.NewUser(t, db, "tenant@example.com", constants.RoleTenant)
	testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)

	status, _ := testutil.Do(t, app, http.MethodGet, "/api/admin/users", nil, tenant.Token)
	assert.Equal(t, http.StatusForbidden, status)

	t.Run("list filters", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodGet, "/api/admin/users", nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, testutil.Decode[[]dto.UserResponse](t, body), 3)

		status, body = testutil.Do(t, app, http.MethodGet, "/api/admin/users?role=owner", nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		owners := testutil.Decode[[]dto.UserResponse](t, body)
		require.Len(t, owners, 1)
		assert.Equal(t, "owner", owners[0].RoleCategory)

		status, body = testutil.Do(t, app, http.MethodGet, "/api/admin/users?q=TENANT", nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		found := testutil.Decode[[]dto.UserResponse](t, body)
		require.Len(t, found, 1)
		assert.True(t, found[0].HasPassword)
	})

	t.Run("cannot deactivate self", func(t *testing.T) {
		status, _ := testutil.Do(t, app, http.MethodPatch, "/api/admin/users/"+admin.ID().String(), fiber.Map{"isActive": false}, admin.Token)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("deactivate another user", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodPatch, "/api/admin/users/"+tenant.ID().String(), fiber.Map{"isActive": false}, admin.Token)
		require.Equal(t, http.StatusOK, status, string(body))
		var u model.UserModel
		require.NoError(t, db.First(&u, "id = ?", tenant.ID()).Error)
		assert.False(t, u.IsActive)

		status, body = testutil.Do(t, app, http.MethodGet, "/api/admin/users?isActive=false", nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, testutil.Decode[[]dto.UserResponse](t, body), 1)
	})

	t.Run("assign and revoke roles", func(t *testing.T) {
		path := "/api/admin/users/" + tenant.ID().String() + "/roles"
		status, _ := testutil.Do(t, app, http.MethodPost, path, fiber.Map{}, admin.Token)
		assert.Equal(t, http.StatusBadRequest, status)
		status, _ = testutil.Do(t, app, http.MethodPost, path, fiber.Map{"roleName": "astronaut"}, admin.Token)
		assert.Equal(t, http.StatusNotFound, status)

		status, body := testutil.Do(t, app, http.MethodPost, path, fiber.Map{"roleName": " Owner "}, admin.Token)
		require.Equal(t, http.StatusOK, status, string(body))
		assert.Len(t, testutil.Decode[dto.UserResponse](t, body).Roles, 2)

		var tenantRole roleModel.RoleModel
		require.NoError(t, db.First(&tenantRole, "name = ?", constants.RoleTenant).Error)

		// Revoking the active role falls back to the remaining grant.
		status, body = testutil.Do(t, app, http.MethodDelete, path+"/"+tenantRole.ID.String(), nil, admin.Token)
		require.Equal(t, http.StatusOK, status, string(body))
		got := testutil.Decode[dto.UserResponse](t, body)
		require.Len(t, got.Roles, 1)
		assert.Equal(t, constants.RoleOwner, got.ActiveRole)

		status, _ = testutil.Do(t, app, http.MethodDelete, path+"/"+tenantRole.ID.String(), nil, admin.Token)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("last admin keeps the role", func(t *testing.T) {
		var adminRole roleModel.RoleModel
		require.NoError(t, db.First(&adminRole, "name = ?", constants.RoleAdmin).Error)
		status, _ := testutil.Do(t, app, http.MethodDelete,
			"/api/admin/users/"+admin.ID().String()+"/roles/"+adminRole.ID.String(), nil, admin.Token)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
