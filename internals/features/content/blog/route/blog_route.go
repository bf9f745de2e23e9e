package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/content/blog/controller"
)

// BlogRoutes mounts the public reader under /api/blog and its alias /api/public/blog.
func BlogRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewBlogController(db)

	for _, prefix := range []string{"/blog", "/public/blog"} {
		g := router.Group(prefix)
		g.Get("/", ctl.ListPublished)
		g.Get("/:slug", ctl.GetPublished)
	}
}

// AdminBlogRoutes mounts /api/admin/blog on an admin-guarded group.
func AdminBlogRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewBlogController(db)

	g := admin.Group("/blog")
	g.Get("/", ctl.AdminList)
	g.Get("/:id", ctl.AdminGet)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
