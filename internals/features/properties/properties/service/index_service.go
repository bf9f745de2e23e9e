package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/properties/model"
	"estatehub_backend/internals/logger"
	"estatehub_backend/internals/search"
)

func ToDocument(p model.PropertyModel) search.Document {
	doc := search.Document{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		ListingType:  p.ListingType,
		IsCommercial: p.IsCommercial,
		Address:      p.Address,
		Locality:     p.Locality,
		City:         p.City,
		State:        p.State,
		Status:       p.Status,
		IsFeatured:   p.IsFeatured,
		CreatedAt:    p.CreatedAt.Unix(),
	}
	if v := p.EffectivePrice(); v != nil {
		doc.Price = *v
	}
	if p.Bedrooms != nil {
		doc.Bedrooms = *p.Bedrooms
	}
	return doc
}

// SyncIndex pushes active properties to the search index and removes the rest.
// Failures are logged; the database stays the source of truth.
func SyncIndex(ctx context.Context, p model.PropertyModel) {
	var err error
	if p.Status == constants.PropertyActive {
		err = search.Default().Upsert(ctx, ToDocument(p))
	} else {
		err = search.Default().Remove(ctx, p.ID.String())
	}
	if err != nil {
		logger.L().Warn("search index sync failed", zap.String("property_id", p.ID.String()), zap.Error(err))
	}
}

// RemoveFromIndex drops a deleted property.
func RemoveFromIndex(ctx context.Context, id string) {
	if err := search.Default().Remove(ctx, id); err != nil {
		logger.L().Warn("search index remove failed", zap.String("property_id", id), zap.Error(err))
	}
}

// Reindex pushes every active property in batches of 500.
func Reindex(ctx context.Context, db *gorm.DB) (int, error) {
	var batch []model.PropertyModel
	n := 0
	err := db.WithContext(ctx).
		Where("status = ?", constants.PropertyActive).
		FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
			docs := make([]search.Document, 0, len(batch))
			for _, p := range batch {
				docs = append(docs, ToDocument(p))
			}
			n += len(docs)
			return search.Default().Upsert(ctx, docs...)
		}).Error
	return n, err
}
