package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/properties/enquiries/controller"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

// EnquiryRoutes mounts the same handlers under /api/enquiries and the legacy /api/inquiries.
func EnquiryRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewEnquiryController(db)
	requireAuth := authMiddleware.RequireAuth(db)
	optionalAuth := authMiddleware.OptionalAuth(db)

	for _, prefix := range []string{"/enquiries", "/inquiries"} {
		g := router.Group(prefix)
		g.Post("/", optionalAuth, ctl.Create)
		g.Get("/", requireAuth, ctl.ListMine)
		g.Get("/:id", requireAuth, ctl.Get)
		g.Patch("/:id", requireAuth, ctl.Update)
		g.Delete("/:id", requireAuth, ctl.Delete)
	}
}

// AdminEnquiryRoutes mounts /api/admin/enquiries on an admin-guarded group.
func AdminEnquiryRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewEnquiryController(db)

	g := admin.Group("/enquiries")
	g.Get("/", ctl.AdminList)
	g.Get("/:id", ctl.AdminGet)
	g.Patch("/:id", ctl.AdminUpdate)
	g.Delete("/:id", ctl.AdminDelete)
}
