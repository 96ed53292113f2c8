package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	tenantController "kostku_backend/internals/features/tenancy/tenants/controller"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

func TenantRoutes(api fiber.Router, db *gorm.DB) {
	ctl := tenantController.NewTenantController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("penyewa"), constants.RoleAdmin)

	g := api.Group("/tenants")
	g.Get("/", ctl.List)
	g.Get("/user/:userId", ctl.GetByUserID)
	g.Get("/:id/detail", ctl.Detail)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}
