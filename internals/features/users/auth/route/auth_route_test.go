package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estatehub_backend/internals/configs"
	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/users/auth/dto"
	"estatehub_backend/internals/features/users/auth/route"
	"estatehub_backend/internals/testutil"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db := testutil.NewDB(t)
	configs.DisableRateLimit = true
	configs.OtpExposeCode = true
	app := testutil.NewApp()
	route.AuthRoutes(app.Group("/api"), db)
	return app, db
}

func TestRegisterLoginMeLogout(t *testing.T) {
	app, _ := newAuthApp(t)

	status, body := testutil.Do(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"email": "Tenant@Example.com", "password": "secret123", "name": "Tia",
	}, "")
	require.Equal(t, http.StatusCreated, status, string(body))
	reg := testutil.Decode[dto.AuthResponse](t, body)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "tenant@example.com", *reg.User.Email)
	assert.Equal(t, constants.RoleTenant, reg.User.ActiveRole)
	assert.Equal(t, "tenant", reg.User.RoleCategory)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"email": "tenant@example.com", "password": "secret123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "tenant@example.com", "password": "wrong-pass",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = testutil.Do(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "tenant@example.com", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, status, string(body))
	login := testutil.Decode[dto.AuthResponse](t, body)
	assert.NotNil(t, login.User.LastLoginAt)

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/auth/me", nil, login.Token)
	assert.Equal(t, http.StatusOK, status)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/auth/logout", nil, login.Token)
	assert.Equal(t, http.StatusOK, status)

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/auth/me", nil, login.Token)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	app, _ := newAuthApp(t)
	status, _ := testutil.Do(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"email": "sneaky@example.com", "password": "secret123", "role": "admin",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newAuthApp(t)
	status, body := testutil.Do(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"email": "not-an-email", "password": "1",
	}, "")
	require.Equal(t, http.StatusBadRequest, status)
	errs := testutil.Decode[struct {
		Errors map[string][]string `json:"errors"`
	}](t, body)
	assert.Contains(t, errs.Errors, "email")
	assert.Contains(t, errs.Errors, "password")
}

func TestOTPCreateAccountGrantsOwnerRole(t *testing.T) {
	app, _ := newAuthApp(t)

	status, body := testutil.Do(t, app, http.MethodPost, "/api/auth/otp/send", fiber.Map{
		"phone": "9876543210", "purpose": "listing",
	}, "")
	require.Equal(t, http.StatusOK, status, string(body))
	sent := testutil.Decode[dto.SendOtpResponse](t, body)
	require.Len(t, sent.Code, 6)

	status, body = testutil.Do(t, app, http.MethodPost, "/api/auth/otp/verify", fiber.Map{
		"phone": "9876543210", "code": sent.Code, "createAccount": true, "segment": "commercial",
	}, "")
	require.Equal(t, http.StatusOK, status, string(body))
	verified := testutil.Decode[dto.VerifyOtpResponse](t, body)
	assert.True(t, verified.Verified)
	require.NotNil(t, verified.User)
	assert.NotEmpty(t, verified.Token)
	assert.Equal(t, constants.RoleCommercialOwner, verified.User.ActiveRole)
	assert.True(t, verified.User.PhoneVerified)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/auth/otp/verify", fiber.Map{
		"phone": "9876543210", "code": sent.Code,
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSwitchRoleOnlyAmongHeldRoles(t *testing.T) {
	app, db := newAuthApp(t)
	u := testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/auth/switch-role", fiber.Map{
		"roleId": uuid.NewString(),
	}, u.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := testutil.Do(t, app, http.MethodPost, "/api/auth/switch-role", fiber.Map{
		"roleId": u.Model.ActiveRoleID.String(),
	}, u.Token)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, constants.RoleOwner, testutil.Decode[dto.AuthResponse](t, body).User.ActiveRole)
}
