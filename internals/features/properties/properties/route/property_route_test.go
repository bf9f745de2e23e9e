package route_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	boostModel "estatehub_backend/internals/features/billing/boosts/model"
	paymentModel "estatehub_backend/internals/features/billing/payments/model"
	imageModel "estatehub_backend/internals/features/properties/images/model"
	"estatehub_backend/internals/features/properties/properties/dto"
	"estatehub_backend/internals/features/properties/properties/model"
	"estatehub_backend/internals/features/properties/properties/route"
	"estatehub_backend/internals/testutil"
)

func listing() fiber.Map {
	return fiber.Map{
		"title":        "2BHK near metro",
		"propertyType": "apartment",
		"listingType":  "rent",
		"rent":         "25000",
		"address":      "12 Link Road",
		"city":         "Mumbai",
		"state":        "Maharashtra",
		"bedrooms":     "2",
		"amenities":    []string{"Lift", "lift", " Parking "},
	}
}

func TestPropertyLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.PropertyRoutes(app.Group("/api"), db)

	owner := testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)
	other := testutil.NewUser(t, db, "other@example.com", constants.RoleTenant)
	admin := testutil.NewUser(t, db, "admin@example.com", constants.RoleAdmin)

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/properties", listing(), "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := testutil.Do(t, app, http.MethodPost, "/api/properties", listing(), owner.Token)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := testutil.Decode[dto.PropertyResponse](t, body)
	assert.Equal(t, owner.ID(), created.OwnerID)
	assert.Equal(t, constants.PropertyActive, created.Status)
	require.NotNil(t, created.Price)
	assert.Equal(t, 25000.0, *created.Price)
	assert.Equal(t, []string{"Lift", "Parking"}, []string(created.Amenities))

	path := "/api/properties/" + created.ID.String()

	status, _ = testutil.Do(t, app, http.MethodPatch, path, fiber.Map{"title": "Hijacked"}, other.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = testutil.Do(t, app, http.MethodPatch, path, fiber.Map{
		"title": "2BHK near metro station", "ownerId": other.ID().String(),
	}, owner.Token)
	require.Equal(t, http.StatusOK, status, string(body))
	updated := testutil.Decode[dto.PropertyResponse](t, body)
	assert.Equal(t, "2BHK near metro station", updated.Title)
	assert.Equal(t, owner.ID(), updated.OwnerID)

	status, body = testutil.Do(t, app, http.MethodGet, "/api/properties?city=mumbai&bhk=2", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, testutil.Decode[[]dto.PropertyResponse](t, body), 1)

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/properties?minPrice=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = testutil.Do(t, app, http.MethodDelete, path, nil, other.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = testutil.Do(t, app, http.MethodDelete, path, nil, admin.Token)
	assert.Equal(t, http.StatusOK, status)

	status, _ = testutil.Do(t, app, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeletePropertyReleasesBoostsAndPayments(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.PropertyRoutes(app.Group("/api"), db)

	owner := testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)
	prop := testutil.NewProperty(t, db, owner.ID(), "Sea view flat")
	keep := testutil.NewProperty(t, db, owner.ID(), "Garden flat")

	boost := boostModel.ListingBoostModel{
		PropertyID: prop.ID,
		UserID:     owner.ID(),
		BoostType:  boostModel.BoostFeatured,
		Status:     boostModel.StatusPendingApproval,
		Amount:     499,
		Currency:   "INR",
	}
	require.NoError(t, db.Create(&boost).Error)
	pay := paymentModel.PaymentModel{
		UserID:     owner.ID(),
		PropertyID: &prop.ID,
		BoostID:    &boost.ID,
		OrderID:    "BOOST-DELETE-1",
		Amount:     499,
		Currency:   "INR",
		Status:     paymentModel.PaymentCompleted,
		Provider:   paymentModel.ProviderDemo,
	}
	require.NoError(t, db.Create(&pay).Error)
	other := boostModel.ListingBoostModel{
		PropertyID: keep.ID,
		UserID:     owner.ID(),
		BoostType:  boostModel.BoostPremium,
		Status:     boostModel.StatusApproved,
		Amount:     999,
		Currency:   "INR",
	}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&imageModel.PropertyImageModel{PropertyID: prop.ID, URL: "/api/upload/public/a.jpg"}).Error)

	status, body := testutil.Do(t, app, http.MethodDelete, "/api/properties/"+prop.ID.String(), nil, owner.Token)
	require.Equal(t, http.StatusOK, status, string(body))

	var n int64
	require.NoError(t, db.Model(&boostModel.ListingBoostModel{}).Where("property_id = ?", prop.ID).Count(&n).Error)
	assert.Zero(t, n, "boosts go with the property")
	require.NoError(t, db.Model(&paymentModel.PaymentModel{}).Where("property_id = ?", prop.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&imageModel.PropertyImageModel{}).Where("property_id = ?", prop.ID).Count(&n).Error)
	assert.Zero(t, n)

	var kept paymentModel.PaymentModel
	require.NoError(t, db.First(&kept, "id = ?", pay.ID).Error)
	assert.Nil(t, kept.PropertyID)
	assert.Nil(t, kept.BoostID)
	assert.Equal(t, paymentModel.PaymentCompleted, kept.Status)

	require.NoError(t, db.Model(&boostModel.ListingBoostModel{}).Where("property_id = ?", keep.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n, "other listings are untouched")
}

func TestPropertyChildrenDeclareForeignKeys(t *testing.T) {
	db := testutil.NewDB(t)
	m := db.Migrator()
	assert.True(t, m.HasConstraint(&boostModel.ListingBoostModel{}, "Property"))
	assert.True(t, m.HasConstraint(&paymentModel.PaymentModel{}, "Property"))
	assert.True(t, m.HasConstraint(&paymentModel.PaymentModel{}, "Boost"))
	assert.True(t, m.HasConstraint(&imageModel.PropertyImageModel{}, "Property"))
	assert.True(t, m.HasConstraint(&model.PropertyModel{}, "Owner"))
}

func TestCreatePropertyNeedsPrice(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.PropertyRoutes(app.Group("/api"), db)
	owner := testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)

	body := listing()
	delete(body, "rent")
	status, raw := testutil.Do(t, app, http.MethodPost, "/api/properties", body, owner.Token)
	require.Equal(t, http.StatusBadRequest, status)
	errs := testutil.Decode[struct {
		Errors map[string][]string `json:"errors"`
	}](t, raw)
	assert.Contains(t, errs.Errors, "price")
}

func TestWizardValidate(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	route.PropertyRoutes(app.Group("/api"), db)

	status, body := testutil.Do(t, app, http.MethodPost, "/api/properties/wizard/validate", fiber.Map{
		"step": "type",
		"data": fiber.Map{"segment": "commercial", "propertyType": "villa", "listingType": "rent"},
	}, "")
	require.Equal(t, http.StatusOK, status)
	res := testutil.Decode[dto.WizardValidateResponse](t, body)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "propertyType")
	assert.Nil(t, res.NextStep)

	status, body = testutil.Do(t, app, http.MethodPost, "/api/properties/wizard/validate", fiber.Map{
		"step": "pricing",
		"data": fiber.Map{"listingType": "sale", "salePrice": "7500000"},
	}, "")
	require.Equal(t, http.StatusOK, status)
	res = testutil.Decode[dto.WizardValidateResponse](t, body)
	assert.True(t, res.Valid)
	require.NotNil(t, res.NextStep)
	assert.Equal(t, dto.StepAvailability, *res.NextStep)

	complete := fiber.Map{
		"propertyType": "apartment", "listingType": "rent", "address": "1 Main", "city": "Pune",
		"state": "MH", "title": "Sunny flat", "bedrooms": 2, "rent": 18000,
		"availableFrom": time.Now().Add(48 * time.Hour).Format("2006-01-02"),
		"images":        []string{"/api/upload/public/a.jpg"},
	}
	status, body = testutil.Do(t, app, http.MethodPost, "/api/properties/wizard/validate", fiber.Map{
		"step": "review", "data": complete,
	}, "")
	require.Equal(t, http.StatusOK, status)
	res = testutil.Decode[dto.WizardValidateResponse](t, body)
	assert.False(t, res.Valid)
	require.NotNil(t, res.Verified)
	assert.False(t, *res.Verified)
	assert.Contains(t, res.Errors, "verification")

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/properties/wizard/validate", fiber.Map{
		"step": "nope",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
}
