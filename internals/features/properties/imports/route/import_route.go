package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/properties/imports/controller"
)

// AdminImportRoutes mounts the CSV endpoints under /api/admin/properties.
func AdminImportRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewImportController(db)

	admin.Get("/properties/sample-csv", ctl.SampleCSV)
	admin.Post("/properties/import-csv", ctl.ImportCSV)
}
