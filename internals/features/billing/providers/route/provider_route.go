package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/billing/providers/controller"
)

func AdminProviderRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewProviderController(db)

	pay := admin.Group("/payment-providers")
	pay.Get("/", ctl.ListPayment)
	pay.Get("/:provider", ctl.GetPayment)
	pay.Put("/:provider", ctl.PutPayment)
	pay.Patch("/:provider", ctl.PutPayment)

	notif := admin.Group("/notification-providers")
	notif.Get("/", ctl.ListNotification)
	notif.Get("/:provider", ctl.GetNotification)
	notif.Put("/:provider", ctl.PutNotification)
	notif.Patch("/:provider", ctl.PutNotification)
}
