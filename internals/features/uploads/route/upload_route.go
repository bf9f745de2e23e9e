package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/uploads/controller"
	"estatehub_backend/internals/features/uploads/storage"
	authMiddleware "estatehub_backend/internals/middlewares/auth"
)

func UploadRoutes(router fiber.Router, db *gorm.DB, store *storage.Storage) {
	ctl := controller.NewUploadController(store)
	requireAuth := authMiddleware.RequireAuth(db)

	up := router.Group("/upload")
	up.Post("/", requireAuth, ctl.Upload)
	up.Put("/direct", requireAuth, ctl.Direct)
	up.Get("/public/:filename", ctl.ServePublic)
	up.Get("/private/:filename", requireAuth, ctl.ServePrivate)
	up.Delete("/:visibility/:filename", requireAuth, ctl.Delete)

	router.Post("/uploads/request-url", requireAuth, ctl.RequestURL)
	router.Post("/object-storage/presigned-url", requireAuth, ctl.RequestURL)
}
