package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/billing/boosts/controller"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

func BoostRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewBoostController(db)
	requireAuth := authMiddleware.RequireAuth(db)

	g := router.Group("/boosts")
	g.Get("/plans", ctl.Plans)
	g.Post("/create", requireAuth, ctl.Create)
	g.Post("/payment-callback", requireAuth, ctl.PaymentCallback)
	g.Post("/webhook", ctl.Webhook)

	router.Get("/my-boosts", requireAuth, ctl.Mine)
}

func AdminBoostRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewBoostController(db)

	g := admin.Group("/boosts")
	g.Get("/", ctl.AdminList)
	g.Post("/:id/approve", ctl.Approve)
	g.Post("/:id/reject", ctl.Reject)
	g.Patch("/:id/approve", ctl.Approve)
	g.Patch("/:id/reject", ctl.Reject)
}
