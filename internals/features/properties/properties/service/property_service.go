package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"estatehub_backend/internals/constants"
	imageModel "estatehub_backend/internals/features/properties/images/model"
	"estatehub_backend/internals/features/properties/properties/dto"
	"estatehub_backend/internals/features/properties/properties/model"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/logger"
	"estatehub_backend/internals/search"
)

// ApplyFilter narrows q (a properties query) by f. Status defaults to active.
func ApplyFilter(q *gorm.DB, f dto.PropertyFilter) *gorm.DB {
	switch f.Status {
	case "":
		q = q.Where("properties.status = ?", constants.PropertyActive)
	case dto.StatusAll:
	default:
		q = q.Where("properties.status = ?", f.Status)
	}

	if f.ListingType != "" {
		q = q.Where("properties.listing_type = ?", f.ListingType)
	}
	if len(f.PropertyType) > 0 {
		q = q.Where("properties.property_type IN ?", f.PropertyType)
	}
	if f.City != "" {
		q = q.Where("LOWER(properties.city) = ?", strings.ToLower(f.City))
	}
	if f.Locality != "" {
		q = q.Where("LOWER(properties.locality) LIKE ?", "%"+strings.ToLower(f.Locality)+"%")
	}
	if f.MinPrice != nil {
		q = q.Where(model.EffectivePriceSQL+" >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where(model.EffectivePriceSQL+" <= ?", *f.MaxPrice)
	}
	if f.MinBedrooms != nil {
		q = q.Where("properties.bedrooms >= ?", *f.MinBedrooms)
	}
	if f.MinBathrooms != nil {
		q = q.Where("properties.bathrooms >= ?", *f.MinBathrooms)
	}
	if cond, args := bhkCondition(f.BHK); cond != "" {
		q = q.Where(cond, args...)
	}
	if len(f.Furnishing) > 0 {
		q = q.Where("properties.furnishing IN ?", f.Furnishing)
	}
	if f.IsCommercial != nil {
		q = q.Where("properties.is_commercial = ?", *f.IsCommercial)
	}
	if f.IsFeatured != nil {
		q = q.Where("properties.is_featured = ?", *f.IsFeatured)
	}
	if f.OwnerID != nil {
		q = q.Where("properties.owner_id = ?", *f.OwnerID)
	}
	if f.CategoryID != nil {
		q = q.Where("properties.category_id = ?", *f.CategoryID)
	}
	if f.Query != "" {
		q = likeSearch(q, f.Query)
	}
	return q
}

// bhkCondition turns ["1","2","4+"] into (bedrooms IN (1,2) OR bedrooms >= 4).
func bhkCondition(values []string) (string, []any) {
	var exact []int
	var atLeast *int
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "bhk")))
		if strings.HasSuffix(v, "+") {
			n, err := strconv.Atoi(strings.TrimSuffix(v, "+"))
			if err == nil && (atLeast == nil || n < *atLeast) {
				atLeast = &n
			}
			continue
		}
		if n, err := strconv.Atoi(v); err == nil {
			exact = append(exact, n)
		}
	}
	var parts []string
	var args []any
	if len(exact) > 0 {
		parts = append(parts, "properties.bedrooms IN ?")
		args = append(args, exact)
	}
	if atLeast != nil {
		parts = append(parts, "properties.bedrooms >= ?")
		args = append(args, *atLeast)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func likeSearch(q *gorm.DB, text string) *gorm.DB {
	like := "%" + strings.ToLower(text) + "%"
	return q.Where(
		"(LOWER(properties.title) LIKE ? OR LOWER(properties.city) LIKE ? OR LOWER(properties.locality) LIKE ? OR LOWER(properties.address) LIKE ? OR LOWER(properties.description) LIKE ?)",
		like, like, like, like, like,
	)
}

// OrderFor maps a sort key to an ORDER BY clause; unknown keys sort newest first.
func OrderFor(key string) string {
	switch key {
	case dto.SortPriceAsc:
		return model.EffectivePriceSQL + " ASC, properties.created_at DESC"
	case dto.SortPriceDesc:
		return model.EffectivePriceSQL + " DESC, properties.created_at DESC"
	case dto.SortBedroomsDesc:
		return "properties.bedrooms DESC, properties.created_at DESC"
	case dto.SortFeatured:
		return "properties.is_featured DESC, properties.created_at DESC"
	default:
		return "properties.created_at DESC"
	}
}

// List returns one page of filtered properties and the total match count.
func List(ctx context.Context, db *gorm.DB, f dto.PropertyFilter, p helper.Paging) ([]model.PropertyModel, int64, error) {
	base := ApplyFilter(db.WithContext(ctx).Model(&model.PropertyModel{}), f)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := []model.PropertyModel{}
	err := base.Session(&gorm.Session{}).
		Order(OrderFor(f.Sort)).
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error
	return rows, total, err
}

// Featured returns active featured properties, premium first.
func Featured(ctx context.Context, db *gorm.DB, limit int) ([]model.PropertyModel, error) {
	rows := []model.PropertyModel{}
	err := db.WithContext(ctx).
		Where("status = ? AND is_featured = ?", constants.PropertyActive, true).
		Order("is_premium DESC, created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// Similar returns active properties in the same city, excluding the given one.
func Similar(ctx context.Context, db *gorm.DB, p model.PropertyModel, limit int) ([]model.PropertyModel, error) {
	rows := []model.PropertyModel{}
	err := db.WithContext(ctx).
		Where("status = ? AND LOWER(city) = ? AND id <> ?", constants.PropertyActive, strings.ToLower(p.City), p.ID).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN listing_type = ? THEN 0 ELSE 1 END, created_at DESC",
			Vars:               []interface{}{p.ListingType},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// Search asks the search index first and falls back to SQL LIKE matching when it is
// disabled or failing.
func Search(ctx context.Context, db *gorm.DB, f dto.PropertyFilter, p helper.Paging) ([]model.PropertyModel, int64, error) {
	ids, total, err := search.Default().SearchIDs(ctx, search.Query{
		Text:        f.Query,
		City:        f.City,
		ListingType: f.ListingType,
		Limit:       int64(p.Limit),
		Offset:      int64(p.Offset),
	})
	if err == nil {
		rows, err := byIDsInOrder(ctx, db, ids)
		return rows, total, err
	}
	if !errors.Is(err, search.ErrDisabled) {
		logger.L().Warn("search index query failed, using database", zap.Error(err))
	}
	return List(ctx, db, f, p)
}

func byIDsInOrder(ctx context.Context, db *gorm.DB, ids []string) ([]model.PropertyModel, error) {
	rows := []model.PropertyModel{}
	if len(ids) == 0 {
		return rows, nil
	}
	if err := db.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, constants.PropertyActive).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return pos[rows[i].ID.String()] < pos[rows[j].ID.String()]
	})
	return rows, nil
}

// IncrementViews bumps view_count without touching updated_at.
func IncrementViews(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Model(&model.PropertyModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// WithPrimaryImages wraps rows with their effective price, primary approved image and image count.
func WithPrimaryImages(ctx context.Context, db *gorm.DB, rows []model.PropertyModel) ([]dto.PropertyResponse, error) {
	out := make([]dto.PropertyResponse, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	var imgs []imageModel.PropertyImageModel
	if err := db.WithContext(ctx).
		Where("property_id IN ? AND is_approved = ?", ids, true).
		Order("is_primary DESC, display_order ASC, created_at ASC").
		Find(&imgs).Error; err != nil {
		return nil, err
	}
	first := make(map[uuid.UUID]string, len(rows))
	count := make(map[uuid.UUID]int, len(rows))
	for _, im := range imgs {
		if _, ok := first[im.PropertyID]; !ok && !im.IsVideo {
			first[im.PropertyID] = im.URL
		}
		count[im.PropertyID]++
	}
	for _, r := range rows {
		resp := dto.NewPropertyResponse(r)
		if u, ok := first[r.ID]; ok {
			u := u
			resp.PrimaryImage = &u
		}
		resp.ImageCount = count[r.ID]
		out = append(out, resp)
	}
	return out, nil
}

// Gallery returns a property's images in display order; approvedOnly hides unmoderated ones.
func Gallery(ctx context.Context, db *gorm.DB, propertyID uuid.UUID, approvedOnly bool) ([]dto.PropertyImageBrief, error) {
	q := db.WithContext(ctx).Where("property_id = ?", propertyID)
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}
	var imgs []imageModel.PropertyImageModel
	if err := q.Order("display_order ASC, created_at ASC").Find(&imgs).Error; err != nil {
		return nil, err
	}
	out := make([]dto.PropertyImageBrief, 0, len(imgs))
	for _, im := range imgs {
		out = append(out, dto.PropertyImageBrief{
			ID:           im.ID,
			URL:          im.URL,
			Caption:      im.Caption,
			DisplayOrder: im.DisplayOrder,
			IsPrimary:    im.IsPrimary,
			IsApproved:   im.IsApproved,
			IsVideo:      im.IsVideo,
		})
	}
	return out, nil
}
