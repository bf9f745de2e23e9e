package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/content/settings/controller"
)

// SettingsRoutes exposes the public footer read.
func SettingsRoutes(router fiber.Router, db *gorm.DB) {
	ctl := controller.NewSettingsController(db)
	router.Get("/footer-settings", ctl.GetFooter)
}

func AdminSettingsRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewSettingsController(db)

	admin.Get("/organization", ctl.GetOrganization)
	admin.Put("/organization", ctl.PutOrganization)
	admin.Get("/footer-settings", ctl.GetFooter)
	admin.Put("/footer-settings", ctl.PutFooter)
}
