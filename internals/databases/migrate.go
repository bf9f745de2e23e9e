package database

import (
	"fmt"

	"gorm.io/gorm"

	boostModel "estatehub_backend/internals/features/billing/boosts/model"
	paymentModel "estatehub_backend/internals/features/billing/payments/model"
	providerModel "estatehub_backend/internals/features/billing/providers/model"
	blogModel "estatehub_backend/internals/features/content/blog/model"
	flagModel "estatehub_backend/internals/features/content/feature_flags/model"
	newsletterModel "estatehub_backend/internals/features/content/newsletter/model"
	pageModel "estatehub_backend/internals/features/content/pages/model"
	settingsModel "estatehub_backend/internals/features/content/settings/model"
	categoryModel "estatehub_backend/internals/features/properties/categories/model"
	enquiryModel "estatehub_backend/internals/features/properties/enquiries/model"
	imageModel "estatehub_backend/internals/features/properties/images/model"
	locationModel "estatehub_backend/internals/features/properties/locations/model"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
	reportModel "estatehub_backend/internals/features/properties/reports/model"
	shortlistModel "estatehub_backend/internals/features/properties/shortlists/model"
	authModel "estatehub_backend/internals/features/users/auth/model"
	roleModel "estatehub_backend/internals/features/users/roles/model"
	userModel "estatehub_backend/internals/features/users/user/model"
)

// Models lists every table in creation order.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&roleModel.RoleModel{},
		&roleModel.PermissionModel{},
		&roleModel.RolePermissionModel{},
		&userModel.UserRoleModel{},
		&authModel.OtpRequestModel{},
		&authModel.TokenBlacklist{},

		&locationModel.CityModel{},
		&locationModel.LocalityModel{},
		&categoryModel.PropertyCategoryModel{},
		&propertyModel.PropertyModel{},
		&imageModel.PropertyImageModel{},
		&enquiryModel.EnquiryModel{},
		&shortlistModel.ShortlistModel{},
		&reportModel.ReportModel{},

		&blogModel.BlogPostModel{},
		&pageModel.PageContentModel{},
		&pageModel.PageVersionModel{},
		&newsletterModel.NewsletterSubscriberModel{},
		&settingsModel.SiteSettingModel{},
		&flagModel.FeatureFlagModel{},

		&providerModel.PaymentProviderModel{},
		&providerModel.NotificationProviderModel{},
		&boostModel.ListingBoostModel{},
		&paymentModel.PaymentModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
