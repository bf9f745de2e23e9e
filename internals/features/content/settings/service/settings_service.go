package service

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"estatehub_backend/internals/caches"
	"estatehub_backend/internals/features/content/settings/dto"
	"estatehub_backend/internals/features/content/settings/model"
)

const cacheTTL = 10 * time.Minute

// load decodes the stored document for key over def. A missing row yields def.
func load[T any](ctx context.Context, db *gorm.DB, key string, def T) (T, error) {
	var row model.SiteSettingModel
	err := db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	out := def
	if err := sonic.Unmarshal(row.Value, &out); err != nil {
		return def, err
	}
	return out, nil
}

func save(ctx context.Context, db *gorm.DB, key string, value any, by *string) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	row := model.SiteSettingModel{Key: key, Value: raw, UpdatedBy: by}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(&row).Error
}

func Organization(ctx context.Context, db *gorm.DB) (dto.Organization, error) {
	return cache.Remember(ctx, cache.KeyOrganization, cacheTTL, func() (dto.Organization, error) {
		return load(ctx, db, model.KeyOrganization, dto.DefaultOrganization())
	})
}

func SaveOrganization(ctx context.Context, db *gorm.DB, org dto.Organization, by *string) error {
	if err := save(ctx, db, model.KeyOrganization, org, by); err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.KeyOrganization)
	return nil
}

func Footer(ctx context.Context, db *gorm.DB) (dto.FooterSettings, error) {
	return cache.Remember(ctx, cache.KeyFooterSettings, cacheTTL, func() (dto.FooterSettings, error) {
		f, err := load(ctx, db, model.KeyFooter, dto.DefaultFooter())
		if f.Columns == nil {
			f.Columns = []dto.FooterColumn{}
		}
		return f, err
	})
}

func SaveFooter(ctx context.Context, db *gorm.DB, f dto.FooterSettings, by *string) error {
	if f.Columns == nil {
		f.Columns = []dto.FooterColumn{}
	}
	if err := save(ctx, db, model.KeyFooter, f, by); err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.KeyFooterSettings)
	return nil
}
