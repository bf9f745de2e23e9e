package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/properties/reports/controller"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

// ReportRoutes mounts /api/reports.
func ReportRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewReportController(db)
	requireAuth := authMiddleware.RequireAuth(db)

	g := router.Group("/reports")
	g.Get("/", requireAuth, ctl.ListMine)
	g.Post("/", requireAuth, ctl.Create)
}

// AdminReportRoutes mounts /api/admin/reports on an admin-guarded group.
func AdminReportRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewReportController(db)

	g := admin.Group("/reports")
	g.Get("/", ctl.AdminList)
	g.Patch("/:id", ctl.Review)
}
