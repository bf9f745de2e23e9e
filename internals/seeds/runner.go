package seeds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"estatehub_backend/internals/configs"
	"estatehub_backend/internals/constants"
	flagModel "estatehub_backend/internals/features/content/feature_flags/model"
	categoryModel "estatehub_backend/internals/features/properties/categories/model"
	locationModel "estatehub_backend/internals/features/properties/locations/model"
	roleModel "estatehub_backend/internals/features/users/roles/model"
	roleService "estatehub_backend/internals/features/users/roles/service"
	userModel "estatehub_backend/internals/features/users/user/model"
	helper "estatehub_backend/internals/helpers"
	helpersAuth "estatehub_backend/internals/helpers/auth"
	"estatehub_backend/internals/logger"
)

// RunAll seeds reference data and the bootstrap accounts named in the environment.
func RunAll(ctx context.Context, db *gorm.DB) error {
	d, err := Load()
	if err != nil {
		return err
	}
	steps := []struct {
		name string
		run  func() error
	}{
		{"roles", func() error { return SeedRoles(ctx, db, d) }},
		{"categories", func() error { return SeedCategories(ctx, db, d.Categories) }},
		{"cities", func() error { return SeedCities(ctx, db, d.Cities) }},
		{"feature_flags", func() error { return SeedFlags(ctx, db, d.FeatureFlags) }},
		{"users", func() error { return SeedUsers(ctx, db) }},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			return fmt.Errorf("seed %s: %w", s.name, err)
		}
		logger.L().Info("seeded", zap.String("step", s.name))
	}
	return nil
}

// SeedRoles creates missing permissions and roles and links them. "*" grants every permission.
// Existing role links are only ever added to.
func SeedRoles(ctx context.Context, db *gorm.DB, d Data) error {
	permIDs := make(map[string]uuid.UUID, len(d.Permissions))
	for _, p := range d.Permissions {
		m := roleModel.PermissionModel{Name: p.Name, Category: p.Category, Description: p.Description}
		if err := db.WithContext(ctx).Where(roleModel.PermissionModel{Name: p.Name}).
			FirstOrCreate(&m).Error; err != nil {
			return err
		}
		permIDs[p.Name] = m.ID
	}

	for _, r := range d.Roles {
		role, err := roleService.EnsureRole(ctx, db, r.Name, r.Description)
		if err != nil {
			return err
		}
		var ids []uuid.UUID
		for _, name := range r.Permissions {
			if name == "*" {
				ids = ids[:0]
				for _, id := range permIDs {
					ids = append(ids, id)
				}
				break
			}
			id, ok := permIDs[name]
			if !ok {
				return fmt.Errorf("role %s: unknown permission %q", r.Name, name)
			}
			ids = append(ids, id)
		}
		for _, pid := range ids {
			if err := db.WithContext(ctx).
				Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "role_id"}, {Name: "permission_id"}}, DoNothing: true}).
				Create(&roleModel.RolePermissionModel{RoleID: role.ID, PermissionID: pid}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func SeedCategories(ctx context.Context, db *gorm.DB, cats []CategorySeed) error {
	for i, c := range cats {
		parent, err := upsertCategory(ctx, db, c, nil, c, i)
		if err != nil {
			return err
		}
		for j, child := range c.Children {
			if _, err := upsertCategory(ctx, db, child, &parent.ID, c, j); err != nil {
				return err
			}
		}
	}
	return nil
}

// upsertCategory inserts by slug. Children inherit segment and rent/sale support from the parent.
func upsertCategory(ctx context.Context, db *gorm.DB, c CategorySeed, parentID *uuid.UUID, parent CategorySeed, order int) (categoryModel.PropertyCategoryModel, error) {
	segment := c.Segment
	if segment == "" {
		segment = parent.Segment
	}
	m := categoryModel.PropertyCategoryModel{
		Name:         c.Name,
		Slug:         c.Slug,
		Icon:         c.Icon,
		ParentID:     parentID,
		Segment:      segment,
		SupportsRent: orDefault(c.SupportsRent, orDefault(parent.SupportsRent, false)),
		SupportsSale: orDefault(c.SupportsSale, orDefault(parent.SupportsSale, false)),
		IsCommercial: c.IsCommercial || parent.IsCommercial,
		DisplayOrder: order,
		IsActive:     true,
	}
	err := db.WithContext(ctx).
		Where(categoryModel.PropertyCategoryModel{Slug: c.Slug}).
		Attrs(m).
		FirstOrCreate(&m).Error
	return m, err
}

func SeedCities(ctx context.Context, db *gorm.DB, cities []CitySeed) error {
	for _, c := range cities {
		city := locationModel.CityModel{
			Name:      c.Name,
			Slug:      helper.Slugify(c.Name, 140),
			State:     c.State,
			IsActive:  true,
			IsPopular: c.Popular,
		}
		if err := db.WithContext(ctx).
			Where(locationModel.CityModel{Slug: city.Slug}).
			Attrs(city).
			FirstOrCreate(&city).Error; err != nil {
			return err
		}
		for _, l := range c.Localities {
			loc := locationModel.LocalityModel{
				CityID:   city.ID,
				Name:     l.Name,
				Slug:     helper.Slugify(l.Name, 140),
				Pincode:  l.Pincode,
				IsActive: true,
			}
			if err := db.WithContext(ctx).
				Where(locationModel.LocalityModel{CityID: city.ID, Slug: loc.Slug}).
				Attrs(loc).
				FirstOrCreate(&loc).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedFlags creates missing flags; the enabled state of existing flags is left alone.
func SeedFlags(ctx context.Context, db *gorm.DB, flags []FlagSeed) error {
	for _, f := range flags {
		m := flagModel.FeatureFlagModel{Name: f.Name, Description: f.Description, IsEnabled: f.Enabled}
		if err := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
			Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers creates the admin (ADMIN_EMAIL/ADMIN_PASSWORD) and test (TEST_USER_EMAIL/TEST_USER_PASSWORD)
// accounts when configured. Existing accounts only gain the missing role.
func SeedUsers(ctx context.Context, db *gorm.DB) error {
	accounts := []struct {
		email, password, name, role string
	}{
		{configs.GetEnv("ADMIN_EMAIL"), configs.GetEnv("ADMIN_PASSWORD"), "Administrator", constants.RoleAdmin},
		{configs.GetEnv("TEST_USER_EMAIL"), configs.GetEnv("TEST_USER_PASSWORD"), "Test User", constants.RoleTenant},
	}
	for _, a := range accounts {
		if a.email == "" || a.password == "" {
			continue
		}
		if err := EnsureUser(ctx, db, a.email, a.password, a.name, a.role); err != nil {
			return err
		}
	}
	return nil
}

// EnsureUser finds or creates a verified account and grants roleName.
func EnsureUser(ctx context.Context, db *gorm.DB, email, password, name, roleName string) error {
	role, err := roleService.EnsureRole(ctx, db, roleName, "")
	if err != nil {
		return err
	}
	normalized := userModel.NormalizeEmail(email)
	if normalized == nil {
		return errors.New("empty email")
	}

	var u userModel.UserModel
	err = db.WithContext(ctx).Where("email = ?", *normalized).First(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := helpersAuth.HashPassword(password)
		if err != nil {
			return err
		}
		verified := time.Now()
		u = userModel.UserModel{
			Email:           normalized,
			Name:            name,
			PasswordHash:    &hash,
			EmailVerifiedAt: &verified,
			ActiveRoleID:    &role.ID,
			IsActive:        true,
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			return err
		}
		logger.L().Info("seeded user", zap.String("email", *normalized), zap.String("role", roleName))
	case err != nil:
		return err
	}

	if err := roleService.GrantRole(ctx, db, u.ID, role.ID); err != nil {
		return err
	}
	if u.ActiveRoleID == nil {
		return db.WithContext(ctx).Model(&u).Update("active_role_id", role.ID).Error
	}
	return nil
}
