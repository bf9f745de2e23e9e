package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/content/feature_flags/controller"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

func FeatureFlagRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewFeatureFlagController(db)
	requireAuth := authMiddleware.RequireAuth(db)
	adminOnly := authMiddleware.RequireAdmin("feature_flags")

	g := router.Group("/feature-flags")
	g.Get("/", ctl.List)
	g.Get("/:name", ctl.Get)
	g.Post("/", requireAuth, adminOnly, ctl.Create)
	g.Patch("/:id", requireAuth, adminOnly, ctl.Update)
	g.Delete("/:id", requireAuth, adminOnly, ctl.Delete)
}
