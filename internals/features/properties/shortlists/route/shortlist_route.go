package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/properties/shortlists/controller"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

// ShortlistRoutes mounts /api/shortlists; every route needs a signed-in user.
func ShortlistRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewShortlistController(db)
	requireAuth := authMiddleware.RequireAuth(db)

	g := router.Group("/shortlists")
	g.Get("/", requireAuth, ctl.List)
	g.Post("/", requireAuth, ctl.Create)
	g.Get("/check/:propertyId", requireAuth, ctl.Check)
	g.Delete("/property/:propertyId", requireAuth, ctl.DeleteByProperty)
	g.Delete("/:id", requireAuth, ctl.Delete)
}
