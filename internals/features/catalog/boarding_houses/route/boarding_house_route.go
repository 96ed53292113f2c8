package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	bhController "kostku_backend/internals/features/catalog/boarding_houses/controller"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

func BoardingHouseRoutes(api fiber.Router, db *gorm.DB) {
	ctl := bhController.NewBoardingHouseController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("kos"), constants.RoleAdmin)

	g := api.Group("/boarding-houses")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}
