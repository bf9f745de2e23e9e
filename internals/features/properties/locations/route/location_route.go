package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/properties/locations/controller"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

// LocationRoutes mounts /api/cities and /api/localities.
func LocationRoutes(router fiber.Router, db *gorm.DB) {
	cityCtl := controller.NewCityController(db)
	localityCtl := controller.NewLocalityController(db)
	requireAuth := authMiddleware.RequireAuth(db)
	adminOnly := authMiddleware.RequireAdmin("locations")

	cities := router.Group("/cities")
	cities.Get("/", cityCtl.List)
	cities.Get("/:id", cityCtl.Get)
	cities.Get("/:id/localities", cityCtl.Localities)
	cities.Post("/", requireAuth, adminOnly, cityCtl.Create)
	cities.Patch("/:id", requireAuth, adminOnly, cityCtl.Update)
	cities.Delete("/:id", requireAuth, adminOnly, cityCtl.Delete)

	localities := router.Group("/localities")
	localities.Get("/", localityCtl.List)
	localities.Get("/:id", localityCtl.Get)
	localities.Post("/", requireAuth, adminOnly, localityCtl.Create)
	localities.Patch("/:id", requireAuth, adminOnly, localityCtl.Update)
	localities.Delete("/:id", requireAuth, adminOnly, localityCtl.Delete)
}
