package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/dashboard/controller"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

func DashboardRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewDashboardController(db)
	router.Get("/dashboard", authMiddleware.RequireAuth(db), ctl.Get)
}

func AdminDashboardRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewDashboardController(db)
	admin.Get("/stats", ctl.AdminStats)
}
