package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/content/feature_flags/model"
	"estatehub_backend/internals/features/content/feature_flags/route"
	"estatehub_backend/internals/testutil"
)

func TestFeatureFlags(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.FeatureFlagRoutes(app.Group("/api"), db)

	admin := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)
	buyer := testutil.NewUser(t, db, "buyer@example.com", constants.RoleBuyer)

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/feature-flags", fiber.Map{"name": "Boost Payments"}, buyer.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := testutil.Do(t, app, http.MethodPost, "/api/feature-flags", fiber.Map{"name": "  Boost   Payments ", "isEnabled": true}, admin.Token)
	require.Equal(t, http.StatusCreated, status, string(body))
	flag := testutil.Decode[model.FeatureFlagModel](t, body)
	assert.Equal(t, "boost_payments", flag.Name)
	assert.True(t, flag.IsEnabled)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/feature-flags", fiber.Map{"name": "boost payments"}, admin.Token)
	assert.Equal(t, http.StatusBadRequest, status)

	// Lookups by name normalise the same way.
	status, body = testutil.Do(t, app, http.MethodGet, "/api/feature-flags/BOOST_PAYMENTS", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, flag.ID, testutil.Decode[model.FeatureFlagModel](t, body).ID)

	status, body = testutil.Do(t, app, http.MethodPatch, "/api/feature-flags/"+flag.ID.String(), fiber.Map{"isEnabled": false}, admin.Token)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.False(t, testutil.Decode[model.FeatureFlagModel](t, body).IsEnabled)

	status, body = testutil.Do(t, app, http.MethodGet, "/api/feature-flags", nil, "")
	require.Equal(t, http.StatusOK, status)
	flags := testutil.Decode[[]model.FeatureFlagModel](t, body)
	require.Len(t, flags, 1)
	assert.False(t, flags[0].IsEnabled)

	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/feature-flags/"+flag.ID.String(), nil, admin.Token)
	assert.Equal(t, http.StatusOK, status)
	status, _ = testutil.Do(t, app, http.MethodGet, "/api/feature-flags/boost_payments", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}
