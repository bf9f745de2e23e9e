package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	authModel "estatehub_backend/internals/features/users/auth/model"
	userModel "estatehub_backend/internals/features/users/user/model"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/middlewares/auth"
	"estatehub_backend/internals/testutil"
)

func TestRequireAuth(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	app.Get("/private", auth.RequireAuth(db), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": auth.UserIDOf(c)})
	})
	app.Post("/api/boosts/webhook", auth.RequireAuth(db), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	tenant := testutil.NewUser(t, db, "tenant@example.com", constants.RoleTenant)

	status, _ := testutil.Do(t, app, http.MethodGet, "/private", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = testutil.Do(t, app, http.MethodGet, "/private", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := testutil.Do(t, app, http.MethodGet, "/private", nil, tenant.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), tenant.ID().String())

	// Webhooks are reachable without a token.
	status, _ = testutil.Do(t, app, http.MethodPost, "/api/boosts/webhook", nil, "")
	assert.Equal(t, http.StatusNoContent, status)

	t.Run("revoked token", func(t *testing.T) {
		row := authModel.TokenBlacklist{TokenHash: authModel.HashToken(tenant.Token), ExpiredAt: time.Now().Add(time.Hour)}
		require.NoError(t, db.Create(&row).Error)
		t.Cleanup(func() { db.Delete(&row) })
		status, _ := testutil.Do(t, app, http.MethodGet, "/private", nil, tenant.Token)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("deactivated account", func(t *testing.T) {
		require.NoError(t, db.Model(&userModel.UserModel{}).Where("id = ?", tenant.ID()).Update("is_active", false).Error)
		status, _ := testutil.Do(t, app, http.MethodGet, "/private", nil, tenant.Token)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("deleted account", func(t *testing.T) {
		require.NoError(t, db.Delete(&userModel.UserModel{}, "id = ?", tenant.ID()).Error)
		status, _ := testutil.Do(t, app, http.MethodGet, "/private", nil, tenant.Token)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestOptionalAuthAndRequireAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	whoami := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"signedIn": auth.CurrentUser(c) != nil, "admin": helper.IsAdmin(c)})
	}
	app.Get("/maybe", auth.OptionalAuth(db), whoami)
	app.Get("/admin", auth.RequireAuth(db), auth.RequireAdmin("reports"), whoami)
	app.Get("/admin-unguarded", auth.RequireAdmin("reports"), whoami)

	admin := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)
	tenant := testutil.NewUser(t, db, "tenant@example.com", constants.RoleTenant)

	type who struct {
		SignedIn bool `json:"signedIn"`
		Admin    bool `json:"admin"`
	}

	status, body := testutil.Do(t, app, http.MethodGet, "/maybe", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, who{}, testutil.Decode[who](t, body))

	// A bad token on an optional route is ignored rather than rejected.
	status, body = testutil.Do(t, app, http.MethodGet, "/maybe", nil, "garbage")
	require.Equal(t, http.StatusOK, status)
	assert.False(t, testutil.Decode[who](t, body).SignedIn)

	status, body = testutil.Do(t, app, http.MethodGet, "/maybe", nil, admin.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, who{SignedIn: true, Admin: true}, testutil.Decode[who](t, body))

	status, _ = testutil.Do(t, app, http.MethodGet, "/admin", nil, tenant.Token)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = testutil.Do(t, app, http.MethodGet, "/admin", nil, admin.Token)
	assert.Equal(t, http.StatusOK, status)
	status, _ = testutil.Do(t, app, http.MethodGet, "/admin-unguarded", nil, admin.Token)
	assert.Equal(t, http.StatusUnauthorized, status)
}
