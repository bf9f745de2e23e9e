package helper

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Bandra West", "bandra-west"},
		{"  Café  Résidence ", "cafe-residence"},
		{"3 BHK -- Sea View!!", "3-bhk-sea-view"},
		{"---", "item"},
		{"", "item"},
		{"Café Crème", "cafe-creme"},
		{"!!!", "item"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in, 100), tc.in)
	}
	assert.Equal(t, "abc", Slugify("abc-def", 4))
	assert.Equal(t, "bandra-west", Slugify("  Bandra West ", 0))
}

func TestCategorySlug(t *testing.T) {
	assert.Equal(t, "office", CategorySlug("Office", "commercial", false))
	assert.Equal(t, "office-commercial", CategorySlug("Office", "commercial", true))
	assert.Equal(t, "office", CategorySlug("Office", "", true))
}

func TestEnsureUniqueSlugCI(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:slugs?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	type row struct {
		ID   uint
		Slug string
	}
	require.NoError(t, db.Table("posts").AutoMigrate(&row{}))
	ctx := context.Background()

	slug, err := EnsureUniqueSlugCI(ctx, db, "posts", "slug", "pune", nil, 10)
	require.NoError(t, err)
	assert.Equal(t, "pune", slug)

	require.NoError(t, db.Table("posts").Create(&row{Slug: "Pune"}).Error)
	require.NoError(t, db.Table("posts").Create(&row{Slug: "pune-2"}).Error)
	slug, err = EnsureUniqueSlugCI(ctx, db, "posts", "slug", "pune", nil, 10)
	require.NoError(t, err)
	assert.Equal(t, "pune-3", slug)

	// The row being renamed does not collide with itself.
	slug, err = EnsureUniqueSlugCI(ctx, db, "posts", "slug", "pune", func(q *gorm.DB) *gorm.DB {
		return q.Where("id <> ?", 1)
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, "pune", slug)

	slug, err = EnsureUniqueSlugCI(ctx, db, "posts", "slug", "pune", nil, 5)
	require.NoError(t, err)
	assert.Equal(t, "pun-2", slug)

	taken, err := SlugTakenCI(ctx, db, "posts", "slug", "PUNE", nil)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = SlugTakenCI(ctx, db, "posts", "slug", "pune", func(q *gorm.DB) *gorm.DB {
		return q.Where("id <> ?", 1)
	})
	require.NoError(t, err)
	assert.False(t, taken)
}
