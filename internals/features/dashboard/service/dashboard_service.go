package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub_backend/internals/caches"
	boostModel "estatehub_backend/internals/features/billing/boosts/model"
	paymentModel "estatehub_backend/internals/features/billing/payments/model"
	newsletterModel "estatehub_backend/internals/features/content/newsletter/model"
	"estatehub_backend/internals/features/dashboard/dto"
	enquiryModel "estatehub_backend/internals/features/properties/enquiries/model"
	imageModel "estatehub_backend/internals/features/properties/images/model"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	reportModel "estatehub_backend/internals/features/properties/reports/model"
	shortlistModel "estatehub_backend/internals/features/properties/shortlists/model"
	userModel "estatehub_backend/internals/features/users/user/model"
	"estatehub_backend/internals/helpers/dbtime"
)

const (
	ViewOwner  = "owner"
	ViewTenant = "tenant"
	recent     = 5
)

const AdminStatsTTL = 2 * time.Minute

// counter runs Count queries until the first error, then turns into a no-op.
type counter struct {
	db  *gorm.DB
	err error
}

func (c *counter) count(dst *int64, q func(*gorm.DB) *gorm.DB) {
	if c.err != nil {
		return
	}
	c.err = q(c.db.Session(&gorm.Session{NewDB: true})).Count(dst).Error
}

func (c *counter) sum(dst any, q func(*gorm.DB) *gorm.DB) {
	if c.err != nil {
		return
	}
	c.err = q(c.db.Session(&gorm.Session{NewDB: true})).Scan(dst).Error
}

func OwnerDashboard(ctx context.Context, db *gorm.DB, userID uuid.UUID) (dto.DashboardResponse, error) {
	db = db.WithContext(ctx)
	owned := db.Model(&propertyModel.PropertyModel{}).Select("id").Where("owner_id = ?", userID)

	var s dto.OwnerStats
	c := &counter{db: db}
	props := func(q *gorm.DB) *gorm.DB {
		return q.Model(&propertyModel.PropertyModel{}).Where("owner_id = ?", userID)
	}
	c.count(&s.TotalProperties, props)
	c.count(&s.ActiveProperties, func(q *gorm.DB) *gorm.DB { return props(q).Where("status = ?", "active") })
	c.count(&s.PendingProperties, func(q *gorm.DB) *gorm.DB { return props(q).Where("status = ?", "pending") })
	c.sum(&s.TotalViews, func(q *gorm.DB) *gorm.DB {
		return props(q).Select("COALESCE(SUM(view_count), 0)")
	})
	c.count(&s.EnquiriesReceived, func(q *gorm.DB) *gorm.DB {
		return q.Model(&enquiryModel.EnquiryModel{}).Where("property_id IN (?)", owned)
	})
	c.count(&s.NewEnquiries, func(q *gorm.DB) *gorm.DB {
		return q.Model(&enquiryModel.EnquiryModel{}).Where("property_id IN (?) AND status = ?", owned, enquiryModel.EnquiryNew)
	})
	c.count(&s.ShortlistedBy, func(q *gorm.DB) *gorm.DB {
		return q.Model(&shortlistModel.ShortlistModel{}).Where("property_id IN (?)", owned)
	})
	c.count(&s.ActiveBoosts, func(q *gorm.DB) *gorm.DB {
		return q.Model(&boostModel.ListingBoostModel{}).Where("user_id = ? AND is_active = ?", userID, true)
	})
	if c.err != nil {
		return dto.DashboardResponse{}, c.err
	}

	top := []dto.PropertyBrief{}
	if err := db.Model(&propertyModel.PropertyModel{}).
		Select("id, title, city, status, view_count, is_featured, is_premium, created_at").
		Where("owner_id = ?", userID).
		Order("view_count DESC, created_at DESC").
		Limit(recent).Scan(&top).Error; err != nil {
		return dto.DashboardResponse{}, err
	}

	enq := []dto.EnquiryBrief{}
	if err := db.Table("enquiries").
		Select("enquiries.id, enquiries.property_id, properties.title AS property_title, enquiries.name, enquiries.status, enquiries.created_at").
		Joins("JOIN properties ON properties.id = enquiries.property_id").
		Where("properties.owner_id = ?", userID).
		Order("enquiries.created_at DESC").
		Limit(recent).Scan(&enq).Error; err != nil {
		return dto.DashboardResponse{}, err
	}

	return dto.DashboardResponse{
		View:            ViewOwner,
		OwnerStats:      &s,
		TopProperties:   top,
		RecentEnquiries: enq,
	}, nil
}

func TenantDashboard(ctx context.Context, db *gorm.DB, userID uuid.UUID) (dto.DashboardResponse, error) {
	db = db.WithContext(ctx)
	var s dto.TenantStats
	c := &counter{db: db}
	c.count(&s.Shortlisted, func(q *gorm.DB) *gorm.DB {
		return q.Model(&shortlistModel.ShortlistModel{}).Where("user_id = ?", userID)
	})
	c.count(&s.EnquiriesSent, func(q *gorm.DB) *gorm.DB {
		return q.Model(&enquiryModel.EnquiryModel{}).Where("user_id = ?", userID)
	})
	c.count(&s.ReportsFiled, func(q *gorm.DB) *gorm.DB {
		return q.Model(&reportModel.ReportModel{}).Where("user_id = ?", userID)
	})
	if c.err != nil {
		return dto.DashboardResponse{}, c.err
	}

	saved := []dto.ShortlistBrief{}
	if err := db.Table("shortlists").
		Select("shortlists.id, shortlists.property_id, properties.title AS property_title, properties.city, shortlists.created_at").
		Joins("JOIN properties ON properties.id = shortlists.property_id").
		Where("shortlists.user_id = ?", userID).
		Order("shortlists.created_at DESC").
		Limit(recent).Scan(&saved).Error; err != nil {
		return dto.DashboardResponse{}, err
	}

	enq := []dto.EnquiryBrief{}
	if err := db.Table("enquiries").
		Select("enquiries.id, enquiries.property_id, properties.title AS property_title, enquiries.name, enquiries.status, enquiries.created_at").
		Joins("JOIN properties ON properties.id = enquiries.property_id").
		Where("enquiries.user_id = ?", userID).
		Order("enquiries.created_at DESC").
		Limit(recent).Scan(&enq).Error; err != nil {
		return dto.DashboardResponse{}, err
	}

	return dto.DashboardResponse{
		View:            ViewTenant,
		TenantStats:     &s,
		RecentEnquiries: enq,
		RecentShortlist: saved,
	}, nil
}

func statusCounts(db *gorm.DB, model any) ([]dto.StatusCount, error) {
	rows := []dto.StatusCount{}
	err := db.Model(model).Select("status, COUNT(*) AS count").Group("status").Order("status ASC").Scan(&rows).Error
	return rows, err
}

// AdminStats aggregates site-wide counters. Results are cached briefly.
func AdminStats(ctx context.Context, db *gorm.DB) (dto.AdminStats, error) {
	return cache.Remember(ctx, cache.KeyAdminStats, AdminStatsTTL, func() (dto.AdminStats, error) {
		return computeAdminStats(ctx, db)
	})
}

func computeAdminStats(ctx context.Context, db *gorm.DB) (dto.AdminStats, error) {
	db = db.WithContext(ctx)
	now := time.Now().In(dbtime.Location())
	monthStart := dbtime.StartOfMonth(now)

	var s dto.AdminStats
	c := &counter{db: db}
	c.count(&s.Users, func(q *gorm.DB) *gorm.DB { return q.Model(&userModel.UserModel{}) })
	c.count(&s.NewUsersThisMonth, func(q *gorm.DB) *gorm.DB {
		return q.Model(&userModel.UserModel{}).Where("created_at >= ?", monthStart)
	})
	c.count(&s.Properties, func(q *gorm.DB) *gorm.DB { return q.Model(&propertyModel.PropertyModel{}) })
	c.count(&s.Enquiries, func(q *gorm.DB) *gorm.DB { return q.Model(&enquiryModel.EnquiryModel{}) })
	c.count(&s.PendingReports, func(q *gorm.DB) *gorm.DB {
		return q.Model(&reportModel.ReportModel{}).Where("status = ?", reportModel.ReportPending)
	})
	c.count(&s.PendingImages, func(q *gorm.DB) *gorm.DB {
		return q.Model(&imageModel.PropertyImageModel{}).Where("is_approved = ?", false)
	})
	c.count(&s.PendingBoosts, func(q *gorm.DB) *gorm.DB {
		return q.Model(&boostModel.ListingBoostModel{}).Where("status = ?", boostModel.StatusPendingApproval)
	})
	c.count(&s.ActiveBoosts, func(q *gorm.DB) *gorm.DB {
		return q.Model(&boostModel.ListingBoostModel{}).Where("is_active = ?", true)
	})
	c.sum(&s.Revenue, func(q *gorm.DB) *gorm.DB {
		return q.Model(&paymentModel.PaymentModel{}).Select("COALESCE(SUM(amount), 0)").
			Where("status = ?", paymentModel.PaymentCompleted)
	})
	c.sum(&s.RevenueThisMonth, func(q *gorm.DB) *gorm.DB {
		return q.Model(&paymentModel.PaymentModel{}).Select("COALESCE(SUM(amount), 0)").
			Where("status = ? AND paid_at >= ?", paymentModel.PaymentCompleted, monthStart)
	})
	c.count(&s.Subscribers, func(q *gorm.DB) *gorm.DB {
		return q.Model(&newsletterModel.NewsletterSubscriberModel{}).Where("is_active = ?", true)
	})
	if c.err != nil {
		return s, c.err
	}

	var err error
	if s.PropertiesByStatus, err = statusCounts(db, &propertyModel.PropertyModel{}); err != nil {
		return s, err
	}
	if s.EnquiriesByStatus, err = statusCounts(db, &enquiryModel.EnquiryModel{}); err != nil {
		return s, err
	}
	s.GeneratedAt = time.Now().UTC()
	return s, nil
}
