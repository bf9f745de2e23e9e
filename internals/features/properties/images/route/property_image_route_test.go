package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/images/model"
	"estatehub_backend/internals/features/properties/images/route"
	"estatehub_backend/internals/testutil"
)

func TestImageModeration(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.PropertyImageRoutes(app.Group("/api"), db)

	owner := testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)
	other := testutil.NewUser(t, db, "other@example.com", constants.RoleOwner)
	admin := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)
	prop := testutil.NewProperty(t, db, owner.ID(), "Hillside villa")
	base := "/api/properties/" + prop.ID.String() + "/images"

	status, _ := testutil.Do(t, app, http.MethodPost, base, fiber.Map{"url": "/api/upload/public/a.webp"}, other.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := testutil.Do(t, app, http.MethodPost, base, fiber.Map{"url": "/api/upload/public/a.webp"}, owner.Token)
	require.Equal(t, http.StatusCreated, status, string(body))
	first := testutil.Decode[model.PropertyImageModel](t, body)
	assert.True(t, first.IsPrimary, "the first image becomes primary")
	assert.False(t, first.IsApproved)
	assert.Zero(t, first.DisplayOrder)

	status, body = testutil.Do(t, app, http.MethodPost, base, fiber.Map{"url": "/api/upload/public/b.webp"}, admin.Token)
	require.Equal(t, http.StatusCreated, status)
	second := testutil.Decode[model.PropertyImageModel](t, body)
	assert.True(t, second.IsApproved, "admin uploads skip moderation")
	assert.Equal(t, 1, second.DisplayOrder)
	assert.False(t, second.IsPrimary)

	// The public gallery only shows approved images; the owner sees everything.
	status, body = testutil.Do(t, app, http.MethodGet, base, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, testutil.Decode[[]model.PropertyImageModel](t, body), 1)
	status, body = testutil.Do(t, app, http.MethodGet, base, nil, owner.Token)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, testutil.Decode[[]model.PropertyImageModel](t, body), 2)

	status, _ = testutil.Do(t, app, http.MethodPatch, "/api/property-images/"+first.ID.String()+"/approve", nil, owner.Token)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = testutil.Do(t, app, http.MethodPatch, "/api/property-images/"+first.ID.String()+"/approve", nil, admin.Token)
	require.Equal(t, http.StatusOK, status)

	status, _ = testutil.Do(t, app, http.MethodPatch, "/api/property-images/"+second.ID.String(), fiber.Map{"isPrimary": true}, owner.Token)
	require.Equal(t, http.StatusOK, status)
	var primaries []model.PropertyImageModel
	require.NoError(t, db.Where("property_id = ? AND is_primary = ?", prop.ID, true).Find(&primaries).Error)
	require.Len(t, primaries, 1)
	assert.Equal(t, second.ID, primaries[0].ID)

	status, _ = testutil.Do(t, app, http.MethodPut, base+"/reorder", fiber.Map{"imageIds": []uuid.UUID{second.ID, uuid.New()}}, owner.Token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = testutil.Do(t, app, http.MethodPut, base+"/reorder", fiber.Map{"imageIds": []uuid.UUID{second.ID, first.ID}}, owner.Token)
	require.Equal(t, http.StatusOK, status, string(body))
	ordered := testutil.Decode[[]model.PropertyImageModel](t, body)
	require.Len(t, ordered, 2)
	assert.Equal(t, second.ID, ordered[0].ID)

	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/property-images/"+first.ID.String(), nil, other.Token)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/property-images/"+first.ID.String(), nil, owner.Token)
	assert.Equal(t, http.StatusOK, status)
}
