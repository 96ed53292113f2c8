package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	stController "kostku_backend/internals/features/catalog/service_types/controller"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

func ServiceTypeRoutes(api fiber.Router, db *gorm.DB) {
	ctl := stController.NewServiceTypeController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("jenis layanan"), constants.RoleAdmin)

	g := api.Group("/service-types")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}
