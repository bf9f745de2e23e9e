package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	boostRoute "estatehub_backend/internals/features/billing/boosts/route"
	paymentRoute "estatehub_backend/internals/features/billing/payments/route"
	providerRoute "estatehub_backend/internals/features/billing/providers/route"
	blogRoute "estatehub_backend/internals/features/content/blog/route"
	flagRoute "estatehub_backend/internals/features/content/feature_flags/route"
	newsletterRoute "estatehub_backend/internals/features/content/newsletter/route"
	pageRoute "estatehub_backend/internals/features/content/pages/route"
	settingsRoute "estatehub_backend/internals/features/content/settings/route"
	dashboardRoute "estatehub_backend/internals/features/dashboard/route"
	categoryRoute "estatehub_backend/internals/features/properties/categories/route"
	enquiryRoute "estatehub_backend/internals/features/properties/enquiries/route"
	imageRoute "estatehub_backend/internals/features/properties/images/route"
	importRoute "estatehub_backend/internals/features/properties/imports/route"
	locationRoute "estatehub_backend/internals/features/properties/locations/route"
	propertyRoute "estatehub_backend/internals/features/properties/properties/route"
	reportRoute "estatehub_backend/internals/features/properties/reports/route"
	shortlistRoute "estatehub_backend/internals/features/properties/shortlists/route"
	uploadRoute "estatehub_backend/internals/features/uploads/route"
	"estatehub_backend/internals/features/uploads/storage"
	authRoute "estatehub_backend/internals/features/users/auth/route"
	roleRoute "estatehub_backend/internals/features/users/roles/route"
	userRoute "estatehub_backend/internals/features/users/user/route"
	"estatehub_backend/internals/logger"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

// SetupRoutes mounts every feature under /api. Admin endpoints share one guarded group.
func SetupRoutes(app *fiber.App, db *gorm.DB, store *storage.Storage) {
	BaseRoutes(app, db)

	api := app.Group("/api")

	logger.L().Info("mounting public routes")
	authRoute.AuthRoutes(api, db)
	propertyRoute.PropertyRoutes(api, db)
	imageRoute.PropertyImageRoutes(api, db)
	categoryRoute.CategoryRoutes(api, db)
	locationRoute.LocationRoutes(api, db)
	enquiryRoute.EnquiryRoutes(api, db)
	shortlistRoute.ShortlistRoutes(api, db)
	reportRoute.ReportRoutes(api, db)
	blogRoute.BlogRoutes(api, db)
	pageRoute.PageRoutes(api, db)
	newsletterRoute.NewsletterRoutes(api, db)
	flagRoute.FeatureFlagRoutes(api, db)
	settingsRoute.SettingsRoutes(api, db)
	boostRoute.BoostRoutes(api, db)
	dashboardRoute.DashboardRoutes(api, db)
	uploadRoute.UploadRoutes(api, db, store)

	logger.L().Info("mounting admin routes")
	admin := api.Group("/admin",
		authMiddleware.RequireAuth(db),
		authMiddleware.RequireAdmin("the admin console"),
	)
	propertyRoute.AdminPropertyRoutes(admin, db)
	importRoute.AdminImportRoutes(admin, db)
	enquiryRoute.AdminEnquiryRoutes(admin, db)
	reportRoute.AdminReportRoutes(admin, db)
	blogRoute.AdminBlogRoutes(admin, db)
	newsletterRoute.AdminNewsletterRoutes(admin, db)
	settingsRoute.AdminSettingsRoutes(admin, db)
	providerRoute.AdminProviderRoutes(admin, db)
	paymentRoute.AdminPaymentRoutes(admin, db)
	boostRoute.AdminBoostRoutes(admin, db)
	dashboardRoute.AdminDashboardRoutes(admin, db)
	userRoute.AdminUserRoutes(admin, db)
	roleRoute.AdminRoleRoutes(admin, db)

	logger.L().Info("routes ready", zap.Int("handlers", int(app.HandlersCount())))
}
