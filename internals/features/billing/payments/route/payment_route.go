package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/billing/payments/controller"
)

func AdminPaymentRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewPaymentController(db)

	g := admin.Group("/payments")
	g.Get("/", ctl.List)
	g.Get("/summary", ctl.Summary)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id/status", ctl.UpdateStatus)
}
