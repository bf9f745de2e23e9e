package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/content/newsletter/controller"
)

func NewsletterRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewNewsletterController(db)

	g := router.Group("/newsletter")
	g.Post("/subscribe", ctl.Subscribe)
	g.Post("/unsubscribe", ctl.Unsubscribe)
}

func AdminNewsletterRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewNewsletterController(db)

	g := admin.Group("/newsletter")
	g.Get("/", ctl.AdminList)
	g.Get("/export", ctl.AdminExport)
	g.Delete("/:id", ctl.AdminDelete)
}
