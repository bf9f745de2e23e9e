package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/users/user/controller"
)

// AdminUserRoutes mounts /api/admin/users on the admin group.
func AdminUserRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserAdminController(db)

	g := admin.Group("/users")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id", ctl.Update)
	g.Post("/:id/roles", ctl.AssignRole)
	g.Delete("/:id/roles/:roleId", ctl.RevokeRole)
}
