// Package testutil builds an in-memory database and a fiber app for handler tests.
package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"estatehub_backend/internals/configs"
	"estatehub_backend/internals/constants"
	database "estatehub_backend/internals/databases"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	roleService "estatehub_backend/internals/features/users/roles/service"
	userModel "estatehub_backend/internals/features/users/user/model"
	helper "estatehub_backend/internals/helpers"
	helpersAuth "estatehub_backend/internals/helpers/auth"
)

const JWTSecret = "test-secret"

// NewDB opens a private in-memory sqlite database with every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	configs.JWTSecret = JWTSecret

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewApp returns an app with the production JSON codec and error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: helper.ErrorHandler,
	})
}

// User is a persisted account plus a signed token for it.
type User struct {
	Model userModel.UserModel
	Token string
}

func (u User) ID() uuid.UUID { return u.Model.ID }

// NewUser creates an active, email-verified user holding roleName as the active role.
func NewUser(t *testing.T, db *gorm.DB, email, roleName string) User {
	t.Helper()
	ctx := context.Background()

	role, err := roleService.EnsureRole(ctx, db, roleName, "")
	require.NoError(t, err)

	hash, err := helpersAuth.HashPassword("password123")
	require.NoError(t, err)
	u := userModel.UserModel{
		Email:        userModel.NormalizeEmail(email),
		Name:         email,
		PasswordHash: &hash,
		ActiveRoleID: &role.ID,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, roleService.GrantRole(ctx, db, u.ID, role.ID))

	token, err := helpersAuth.IssueToken(helpersAuth.TokenSubject{
		ID:           u.ID,
		Email:        u.EmailValue(),
		ActiveRoleID: u.ActiveRoleID,
	})
	require.NoError(t, err)
	return User{Model: u, Token: token}
}

// NewProperty stores an active rent listing owned by owner.
func NewProperty(t *testing.T, db *gorm.DB, owner uuid.UUID, title string) propertyModel.PropertyModel {
	t.Helper()
	rent := 20000.0
	p := propertyModel.PropertyModel{
		Title:        title,
		PropertyType: "apartment",
		ListingType:  constants.ListingRent,
		Rent:         &rent,
		Address:      "7 Residency Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Status:       constants.PropertyActive,
		OwnerID:      owner,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// Do sends a JSON request and returns the status with the raw body.
// A nil body sends no payload; an empty token sends no Authorization header.
func Do(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return Send(t, app, req)
}

// Send runs req through app without a timeout.
func Send(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// Decode unmarshals a response body into T.
func Decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, sonic.Unmarshal(raw, &v), string(raw))
	return v
}
