package seeds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/constants"
	flagModel "estatehub_backend/internals/features/content/feature_flags/model"
	categoryModel "estatehub_backend/internals/features/properties/categories/model"
	locationModel "estatehub_backend/internals/features/properties/locations/model"
	roleModel "estatehub_backend/internals/features/users/roles/model"
	roleService "estatehub_backend/internals/features/users/roles/service"
	userModel "estatehub_backend/internals/features/users/user/model"
	helpersAuth "estatehub_backend/internals/helpers/auth"
	"estatehub_backend/internals/testutil"
)

func TestEmbeddedDataIsConsistent(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, d.Roles)

	perms := map[string]bool{}
	for _, p := range d.Permissions {
		perms[p.Name] = true
	}
	names := map[string]bool{}
	for _, r := range d.Roles {
		names[r.Name] = true
		for _, p := range r.Permissions {
			assert.True(t, p == "*" || perms[p], "role %s references unknown permission %s", r.Name, p)
		}
	}
	for _, want := range []string{constants.RoleAdmin, constants.RoleOwner, constants.RoleTenant, constants.RoleBuyer} {
		assert.True(t, names[want], want)
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("roles: [unterminated"))
	assert.Error(t, err)
}

func TestRunAllIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	t.Setenv("ADMIN_EMAIL", "Root@Example.com")
	t.Setenv("ADMIN_PASSWORD", "s3cret-pass")
	t.Setenv("TEST_USER_EMAIL", "")

	require.NoError(t, RunAll(ctx, db))

	counts := func() map[string]int64 {
		out := map[string]int64{}
		for name, m := range map[string]any{
			"roles":       &roleModel.RoleModel{},
			"permissions": &roleModel.PermissionModel{},
			"links":       &roleModel.RolePermissionModel{},
			"categories":  &categoryModel.PropertyCategoryModel{},
			"cities":      &locationModel.CityModel{},
			"localities":  &locationModel.LocalityModel{},
			"flags":       &flagModel.FeatureFlagModel{},
			"users":       &userModel.UserModel{},
		} {
			var n int64
			require.NoError(t, db.Model(m).Count(&n).Error)
			out[name] = n
		}
		return out
	}
	first := counts()
	for name, n := range first {
		assert.Positive(t, n, name)
	}
	assert.EqualValues(t, 1, first["users"])

	// Flags keep whatever an admin set.
	require.NoError(t, db.Model(&flagModel.FeatureFlagModel{}).Where("1 = 1").Update("is_enabled", true).Error)

	require.NoError(t, RunAll(ctx, db))
	assert.Equal(t, first, counts())

	var disabled int64
	require.NoError(t, db.Model(&flagModel.FeatureFlagModel{}).Where("is_enabled = ?", false).Count(&disabled).Error)
	assert.Zero(t, disabled)

	var admin userModel.UserModel
	require.NoError(t, db.Where("email = ?", "root@example.com").First(&admin).Error)
	assert.True(t, helpersAuth.CheckPassword(*admin.PasswordHash, "s3cret-pass"))
	ok, err := roleService.HasRole(ctx, db, admin.ID, constants.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, ok)

	d, err := Load()
	require.NoError(t, err)
	var adminRole roleModel.RoleModel
	require.NoError(t, db.Where("name = ?", constants.RoleAdmin).First(&adminRole).Error)
	var adminLinks int64
	require.NoError(t, db.Model(&roleModel.RolePermissionModel{}).Where("role_id = ?", adminRole.ID).Count(&adminLinks).Error)
	assert.EqualValues(t, len(d.Permissions), adminLinks)

	var child categoryModel.PropertyCategoryModel
	require.NoError(t, db.Where("parent_id IS NOT NULL").First(&child).Error)
	assert.NotEmpty(t, child.Segment)
}
