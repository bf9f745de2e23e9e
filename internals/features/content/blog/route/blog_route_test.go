package route_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/content/blog/model"
	"estatehub_backend/internals/features/content/blog/route"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
	"estatehub_backend/internals/testutil"
)

func TestBlogPublishing(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	api := app.Group("/api")
	route.BlogRoutes(api, db)
	route.AdminBlogRoutes(api.Group("/admin", authMiddleware.RequireAuth(db), authMiddleware.RequireAdmin("blog")), db)

	admin := testutil.NewUser(t, db, "editor@example.com", constants.RoleAdmin)
	owner := testutil.NewUser(t, db, "owner@example.com", constants.RoleOwner)

	post := fiber.Map{
		"title":    "Renting in Pune",
		"content":  "Start with the locality.",
		"category": "Guides",
		"tags":     []string{" Rent ", "rent", "Pune"},
	}
	status, _ := testutil.Do(t, app, http.MethodPost, "/api/admin/blog", post, owner.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := testutil.Do(t, app, http.MethodPost, "/api/admin/blog", post, admin.Token)
	require.Equal(t, http.StatusCreated, status, string(body))
	draft := testutil.Decode[model.BlogPostModel](t, body)
	assert.Equal(t, "renting-in-pune", draft.Slug)
	assert.Equal(t, model.BlogDraft, draft.Status)
	assert.Nil(t, draft.PublishedAt)
	assert.Equal(t, []string{"rent", "pune"}, []string(draft.Tags))
	require.NotNil(t, draft.AuthorID)
	assert.Equal(t, admin.ID(), *draft.AuthorID)
	assert.Equal(t, "editor@example.com", draft.AuthorName)

	status, body = testutil.Do(t, app, http.MethodPost, "/api/admin/blog", post, admin.Token)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "renting-in-pune-2", testutil.Decode[model.BlogPostModel](t, body).Slug)

	status, body = testutil.Do(t, app, http.MethodPost, "/api/admin/blog", fiber.Map{"title": "x"}, admin.Token)
	assert.Equal(t, http.StatusBadRequest, status, string(body))

	// Drafts stay off the public reader.
	status, body = testutil.Do(t, app, http.MethodGet, "/api/blog", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, testutil.Decode[[]model.BlogPostModel](t, body))
	status, _ = testutil.Do(t, app, http.MethodGet, "/api/blog/renting-in-pune", nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = testutil.Do(t, app, http.MethodPatch, "/api/admin/blog/"+draft.ID.String(), fiber.Map{"status": "published"}, admin.Token)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.NotNil(t, testutil.Decode[model.BlogPostModel](t, body).PublishedAt)

	t.Run("public reader", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodGet, "/api/public/blog?tag=pune&category=guides", nil, "")
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, testutil.Decode[[]model.BlogPostModel](t, body), 1)

		status, body = testutil.Do(t, app, http.MethodGet, "/api/blog/renting-in-pune", nil, "")
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 1, testutil.Decode[model.BlogPostModel](t, body).ViewCount)
		status, body = testutil.Do(t, app, http.MethodGet, "/api/blog/renting-in-pune", nil, "")
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 2, testutil.Decode[model.BlogPostModel](t, body).ViewCount)
	})

	t.Run("admin list filters by status", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodGet, "/api/admin/blog?status=draft", nil, admin.Token)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, testutil.Decode[[]model.BlogPostModel](t, body), 1)
	})

	t.Run("explicit slug must be free", func(t *testing.T) {
		status, body := testutil.Do(t, app, http.MethodPatch, "/api/admin/blog/"+draft.ID.String(), fiber.Map{"slug": "Renting in Pune 2"}, admin.Token)
		assert.Equal(t, http.StatusBadRequest, status, string(body))

		status, body = testutil.Do(t, app, http.MethodPatch, "/api/admin/blog/"+draft.ID.String(), fiber.Map{"slug": "Renting in Pune"}, admin.Token)
		require.Equal(t, http.StatusOK, status, string(body))
		assert.Equal(t, "renting-in-pune", testutil.Decode[model.BlogPostModel](t, body).Slug)

		status, body = testutil.Do(t, app, http.MethodPost, "/api/admin/blog", fiber.Map{
			"title": "Another guide", "content": "Body", "slug": "RENTING-IN-PUNE",
		}, admin.Token)
		assert.Equal(t, http.StatusBadRequest, status, string(body))

		status, body = testutil.Do(t, app, http.MethodPost, "/api/admin/blog", fiber.Map{
			"title": "Another guide", "content": "Body", "slug": "pune-guide",
		}, admin.Token)
		require.Equal(t, http.StatusCreated, status, string(body))
		assert.Equal(t, "pune-guide", testutil.Decode[model.BlogPostModel](t, body).Slug)
	})

	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/admin/blog/"+draft.ID.String(), nil, admin.Token)
	assert.Equal(t, http.StatusOK, status)
	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/admin/blog/"+draft.ID.String(), nil, admin.Token)
	assert.Equal(t, http.StatusNotFound, status)
}
