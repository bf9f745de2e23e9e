package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/properties/images/controller"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

// PropertyImageRoutes mounts /api/properties/:id/images and /api/property-images.
func PropertyImageRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewPropertyImageController(db)
	requireAuth := authMiddleware.RequireAuth(db)

	router.Get("/properties/:id/images", authMiddleware.OptionalAuth(db), ctl.List)
	router.Post("/properties/:id/images", requireAuth, ctl.Create)
	router.Put("/properties/:id/images/reorder", requireAuth, ctl.Reorder)

	images := router.Group("/property-images")
	images.Patch("/:id/approve", requireAuth, authMiddleware.RequireAdmin("image moderation"), ctl.Approve)
	images.Patch("/:id", requireAuth, ctl.Update)
	images.Delete("/:id", requireAuth, ctl.Delete)
}
