package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	authModel "estatehub_backend/internals/features/users/auth/model"
)

// PurgeBlacklist drops revoked tokens that expired before cutoff; they can no longer verify anyway.
func PurgeBlacklist(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expired_at < ?", cutoff).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
