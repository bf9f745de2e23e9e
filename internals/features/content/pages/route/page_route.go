package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/content/pages/controller"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

// PageRoutes mounts /api/pages. Reads are public; history and writes need an admin.
func PageRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewPageController(db)
	optionalAuth := authMiddleware.OptionalAuth(db)
	requireAuth := authMiddleware.RequireAuth(db)
	adminOnly := authMiddleware.RequireAdmin("pages")

	g := router.Group("/pages")
	g.Get("/", optionalAuth, ctl.List)
	g.Get("/:pageKey", optionalAuth, ctl.Get)
	g.Get("/:pageKey/versions", requireAuth, adminOnly, ctl.Versions)
	g.Get("/:pageKey/versions/:version", requireAuth, adminOnly, ctl.Version)

	g.Post("/", requireAuth, adminOnly, ctl.Create)
	g.Put("/:pageKey", requireAuth, adminOnly, ctl.Upsert)
	g.Post("/:pageKey/rollback/:version", requireAuth, adminOnly, ctl.Rollback)
	g.Delete("/:pageKey", requireAuth, adminOnly, ctl.Delete)
}
