package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/properties/properties/controller"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

// PropertyRoutes mounts /api/properties.
func PropertyRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewPropertyController(db)
	requireAuth := authMiddleware.RequireAuth(db)
	optionalAuth := authMiddleware.OptionalAuth(db)

	props := router.Group("/properties")
	props.Get("/", ctl.List)
	props.Get("/featured", ctl.Featured)
	props.Get("/search", ctl.Search)
	props.Get("/mine", requireAuth, ctl.Mine)
	props.Post("/wizard/validate", optionalAuth, ctl.ValidateWizard)
	props.Post("/", requireAuth, ctl.Create)
	props.Get("/:id", optionalAuth, ctl.Get)
	props.Get("/:id/similar", ctl.Similar)
	props.Patch("/:id", requireAuth, ctl.Update)
	props.Delete("/:id", requireAuth, ctl.Delete)
}

// AdminPropertyRoutes mounts /api/admin/properties on an admin-guarded group.
func AdminPropertyRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewPropertyController(db)

	props := admin.Group("/properties")
	props.Get("/", ctl.AdminList)
	props.Patch("/:id/status", ctl.AdminSetStatus)
}
