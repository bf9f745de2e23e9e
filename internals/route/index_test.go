package routes

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/features/uploads/storage"
	"estatehub_backend/internals/testutil"
)

func TestSetupRoutes(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	store := storage.New(t.TempDir(), "/api/upload")
	require.NoError(t, store.Init())
	SetupRoutes(app, db, store)

	status, body := testutil.Do(t, app, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"database":"connected"`)

	status, body = testutil.Do(t, app, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(string(body), "go_goroutines"))

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/properties", nil, "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = testutil.Do(t, app, http.MethodGet, "/api/admin/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = testutil.Do(t, app, http.MethodGet, "/api/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}
