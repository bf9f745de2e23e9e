package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/content/settings/dto"
	"estatehub_backend/internals/features/content/settings/model"
	"estatehub_backend/internals/features/content/settings/route"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
	"estatehub_backend/internals/testutil"
)

func TestSiteSettings(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	api := app.Group("/api")
	route.SettingsRoutes(api, db)
	route.AdminSettingsRoutes(api.Group("/admin", authMiddleware.RequireAuth(db), authMiddleware.RequireAdmin("settings")), db)

	admin := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)

	t.Run("defaults before anything is saved", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodGet, "/api/footer-settings", nil, "")
		require.Equal(t, http.StatusOK, status)
		f := testutil.Decode[dto.FooterSettings](t, body)
		assert.True(t, f.ShowNewsletter)
		assert.NotNil(t, f.Columns)

		status, body = testutil.Do(t, app, http.MethodGet, "/api/admin/organization", nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, dto.DefaultOrganization(), testutil.Decode[dto.Organization](t, body))
	})

	t.Run("organization", func(t *testing.T) {
		status, _ := testutil.Do(t, app, http.MethodPut, "/api/admin/organization", fiber.Map{"name": "Acme", "website": "not a url"}, admin.Token)
		assert.Equal(t, http.StatusBadRequest, status)

		org := fiber.Map{"name": "Acme Realty", "email": "hello@acme.test", "currency": "INR",
			"social": fiber.Map{"instagram": "https://instagram.com/acme"}}
		status, body := testutil.Do(t, app, http.MethodPut, "/api/admin/organization", org, admin.Token)
		require.Equal(t, http.StatusOK, status, string(body))

		status, body = testutil.Do(t, app, http.MethodGet, "/api/admin/organization", nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		got := testutil.Decode[dto.Organization](t, body)
		assert.Equal(t, "Acme Realty", got.Name)
		assert.Equal(t, "https://instagram.com/acme", got.Social.Instagram)

		var row model.SiteSettingModel
		require.NoError(t, db.First(&row, "key = ?", model.KeyOrganization).Error)
		require.NotNil(t, row.UpdatedBy)
		assert.Equal(t, admin.ID().String(), *row.UpdatedBy)
	})

	t.Run("footer saves twice", func(t *testing.T) {
		footer := fiber.Map{
			"about":   "Homes across India",
			"columns": []fiber.Map{{"title": "Company", "links": []fiber.Map{{"label": "About", "url": "/about"}}}},
		}
		status, body := testutil.Do(t, app, http.MethodPut, "/api/admin/footer-settings", footer, admin.Token)
		require.Equal(t, http.StatusOK, status, string(body))

		footer["about"] = "Homes everywhere"
		status, _ = testutil.Do(t, app, http.MethodPut, "/api/admin/footer-settings", footer, admin.Token)
		require.Equal(t, http.StatusOK, status)

		status, body = testutil.Do(t, app, http.MethodGet, "/api/footer-settings", nil, "")
		require.Equal(t, http.StatusOK, status)
		f := testutil.Decode[dto.FooterSettings](t, body)
		assert.Equal(t, "Homes everywhere", f.About)
		require.Len(t, f.Columns, 1)
		assert.Equal(t, "/about", f.Columns[0].Links[0].URL)

		var n int64
		require.NoError(t, db.Model(&model.SiteSettingModel{}).Where("key = ?", model.KeyFooter).Count(&n).Error)
		assert.EqualValues(t, 1, n)

		status, _ = testutil.Do(t, app, http.MethodPut, "/api/admin/footer-settings",
			fiber.Map{"columns": []fiber.Map{{"title": ""}}}, admin.Token)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
