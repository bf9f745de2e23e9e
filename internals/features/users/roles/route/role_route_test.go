package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/users/roles/dto"
	"estatehub_backend/internals/features/users/roles/model"
	"estatehub_backend/internals/features/users/roles/route"
	userModel "estatehub_backend/internals/features/users/user/model"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
	"estatehub_backend/internals/testutil"
)

func TestRolesAndPermissions(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.AdminRoleRoutes(app.Group("/api/admin", authMiddleware.RequireAuth(db), authMiddleware.RequireAdmin("roles")), db)

	admin := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)
	agent := testutil.NewUser(t, db, "agent@example.com", constants.RoleOwner)

	status, body := testutil.Do(t, app, http.MethodPost, "/api/admin/permissions", fiber.Map{"name": "properties.approve", "category": "properties"}, admin.Token)
	require.Equal(t, http.StatusCreated, status, string(body))
	approve := testutil.Decode[model.PermissionModel](t, body)
	status, body = testutil.Do(t, app, http.MethodPost, "/api/admin/permissions", fiber.Map{"name": "blog.write", "category": "content"}, admin.Token)
	require.Equal(t, http.StatusCreated, status)
	blogWrite := testutil.Decode[model.PermissionModel](t, body)
	status, _ = testutil.Do(t, app, http.MethodPost, "/api/admin/permissions", fiber.Map{"name": "blog.write"}, admin.Token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = testutil.Do(t, app, http.MethodPost, "/api/admin/roles", fiber.Map{"name": " Moderator "}, admin.Token)
	require.Equal(t, http.StatusCreated, status, string(body))
	mod := testutil.Decode[dto.RoleResponse](t, body)
	assert.Equal(t, "moderator", mod.Name)
	assert.Empty(t, mod.Permissions)

	t.Run("set permissions replaces the set", func(t *testing.T) {
		path := "/api/admin/roles/" + mod.ID.String() + "/permissions"
		status, _ := testutil.Do(t, app, http.MethodPut, path, fiber.Map{"permissionIds": []uuid.UUID{approve.ID, uuid.New()}}, admin.Token)
		assert.Equal(t, http.StatusBadRequest, status)

		status, body := testutil.Do(t, app, http.MethodPut, path, fiber.Map{"permissionIds": []uuid.UUID{approve.ID, blogWrite.ID, approve.ID}}, admin.Token)
		require.Equal(t, http.StatusOK, status, string(body))
		got := testutil.Decode[dto.RoleResponse](t, body)
		require.Len(t, got.Permissions, 2)
		assert.Equal(t, "blog.write", got.Permissions[0].Name, "ordered by category")

		status, body = testutil.Do(t, app, http.MethodPut, path, fiber.Map{"permissionIds": []uuid.UUID{blogWrite.ID}}, admin.Token)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, testutil.Decode[dto.RoleResponse](t, body).Permissions, 1)
	})

	t.Run("list embeds permissions", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodGet, "/api/admin/roles", nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		roles := testutil.Decode[[]dto.RoleResponse](t, body)
		require.Len(t, roles, 3)
		for _, r := range roles {
			assert.NotNil(t, r.Permissions, r.Name)
			if r.Name == "moderator" {
				assert.Len(t, r.Permissions, 1)
			}
		}

		status, body = testutil.Do(t, app, http.MethodGet, "/api/admin/permissions?category=content", nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, testutil.Decode[[]model.PermissionModel](t, body), 1)
	})

	t.Run("admin role is protected", func(t *testing.T) {
		var adminRole model.RoleModel
		require.NoError(t, db.First(&adminRole, "name = ?", constants.RoleAdmin).Error)
		status, _ := testutil.Do(t, app, http.MethodPatch, "/api/admin/roles/"+adminRole.ID.String(), fiber.Map{"name": "superuser"}, admin.Token)
		assert.Equal(t, http.StatusBadRequest, status)
		status, _ = testutil.Do(t, app, http.MethodPatch, "/api/admin/roles/"+adminRole.ID.String(), fiber.Map{"description": "Full access"}, admin.Token)
		assert.Equal(t, http.StatusOK, status)
		status, _ = testutil.Do(t, app, http.MethodDelete, "/api/admin/roles/"+adminRole.ID.String(), nil, admin.Token)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("deleting a role clears grants", func(t *testing.T) {
		var ownerRole model.RoleModel
		require.NoError(t, db.First(&ownerRole, "name = ?", constants.RoleOwner).Error)
		status, _ := testutil.Do(t, app, http.MethodDelete, "/api/admin/roles/"+ownerRole.ID.String(), nil, admin.Token)
		require.Equal(t, http.StatusOK, status)

		var u userModel.UserModel
		require.NoError(t, db.First(&u, "id = ?", agent.ID()).Error)
		assert.Nil(t, u.ActiveRoleID)
		var n int64
		require.NoError(t, db.Model(&userModel.UserRoleModel{}).Where("role_id = ?", ownerRole.ID).Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("deleting a permission unlinks it", func(t *testing.T) {
		status, _ := testutil.Do(t, app, http.MethodDelete, "/api/admin/permissions/"+blogWrite.ID.String(), nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		var n int64
		require.NoError(t, db.Model(&model.RolePermissionModel{}).Where("permission_id = ?", blogWrite.ID).Count(&n).Error)
		assert.Zero(t, n)
		status, _ = testutil.Do(t, app, http.MethodDelete, "/api/admin/permissions/"+blogWrite.ID.String(), nil, admin.Token)
		assert.Equal(t, http.StatusNotFound, status)
	})
}
