package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/properties/categories/controller"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

// CategoryRoutes mounts /api/categories; writes are admin only.
func CategoryRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewCategoryController(db)
	requireAuth := authMiddleware.RequireAuth(db)
	adminOnly := authMiddleware.RequireAdmin("categories")

	cats := router.Group("/categories")
	cats.Get("/", ctl.List)
	cats.Get("/:id", ctl.Get)
	cats.Post("/", requireAuth, adminOnly, ctl.Create)
	cats.Patch("/:id", requireAuth, adminOnly, ctl.Update)
	cats.Delete("/:id", requireAuth, adminOnly, ctl.Delete)
}
