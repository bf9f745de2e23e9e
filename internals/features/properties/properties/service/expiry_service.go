package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/properties/model"
)

// ExpireListings moves active listings whose expires_at has passed to expired
// and drops them from the search index.
func ExpireListings(ctx context.Context, db *gorm.DB, at time.Time) (int, error) {
	var ids []string
	if err := db.WithContext(ctx).Model(&model.PropertyModel{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", constants.PropertyActive, at).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := db.WithContext(ctx).Model(&model.PropertyModel{}).
		Where("id IN ?", ids).
		Update("status", constants.PropertyExpired).Error; err != nil {
		return 0, err
	}
	for _, id := range ids {
		RemoveFromIndex(ctx, id)
	}
	return len(ids), nil
}
