package route_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/imports/dto"
	"estatehub_backend/internals/features/properties/imports/route"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
	"estatehub_backend/internals/testutil"
)

func TestImportCSV(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	admin := app.Group("/api/admin", authMiddleware.RequireAuth(db), authMiddleware.RequireAdmin("imports"))
	route.AdminImportRoutes(admin, db)

	adminUser := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)
	owner := testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)

	status, body := testutil.Do(t, app, http.MethodGet, "/api/admin/properties/sample-csv", nil, adminUser.Token)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(string(body), "title,description,propertyType"))

	csvBody := "title,propertyType,listingType,rent,address,city,state,ownerEmail\n" +
		"Studio by the park,studio,rent,18000,3 Hill Road,Mumbai,Maharashtra,Owner@Example.com\n" +
		"Admin flat,apartment,rent,22000,9 Sea View,Mumbai,Maharashtra,\n" +
		"No price,apartment,rent,,1 Main St,Mumbai,Maharashtra,\n" +
		"Ghost owner,house,rent,9000,2 Side St,Mumbai,Maharashtra,ghost@example.com\n" +
		"x,castle,rent,100,somewhere,Mumbai,Maharashtra,\n"

	req := httptest.NewRequest(http.MethodPost, "/api/admin/properties/import-csv", strings.NewReader(csvBody))
	req.Header.Set(fiber.HeaderContentType, "text/csv")
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminUser.Token)
	status, body = testutil.Send(t, app, req)
	require.Equal(t, http.StatusCreated, status, string(body))

	res := testutil.Decode[dto.ImportResult](t, body)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 3, res.Failed)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, 4, res.Errors[0].Line)
	assert.Contains(t, res.Errors[0].Errors, "price")
	assert.Contains(t, res.Errors[1].Errors, "ownerEmail")
	assert.Contains(t, res.Errors[2].Errors, "propertyType")

	var props []propertyModel.PropertyModel
	require.NoError(t, db.Order("title ASC").Find(&props).Error)
	require.Len(t, props, 2)
	assert.Equal(t, adminUser.ID(), props[0].OwnerID)
	assert.Equal(t, owner.ID(), props[1].OwnerID)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/properties/import-csv", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminUser.Token)
	status, _ = testutil.Send(t, app, req)
	assert.Equal(t, http.StatusBadRequest, status)
}
