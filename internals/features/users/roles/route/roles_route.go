package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/users/roles/controller"
)

// AdminRoleRoutes mounts /api/admin/roles and /api/admin/permissions on the admin group.
func AdminRoleRoutes(admin fiber.Router, db *gorm.DB) {
	roles := controller.NewRoleController(db)
	perms := controller.NewPermissionController(db)

	r := admin.Group("/roles")
	r.Get("/", roles.List)
	r.Get("/:id", roles.Get)
	r.Post("/", roles.Create)
	r.Patch("/:id", roles.Update)
	r.Delete("/:id", roles.Delete)
	r.Put("/:id/permissions", roles.SetPermissions)

	p := admin.Group("/permissions")
	p.Get("/", perms.List)
	p.Post("/", perms.Create)
	p.Patch("/:id", perms.Update)
	p.Delete("/:id", perms.Delete)
}
