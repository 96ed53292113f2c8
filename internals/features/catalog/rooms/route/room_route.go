package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	roomController "kostku_backend/internals/features/catalog/rooms/controller"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

func RoomRoutes(api fiber.Router, db *gorm.DB) {
	ctl := roomController.NewRoomController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("kamar"), constants.RoleAdmin)

	g := api.Group("/rooms")
	g.Get("/", ctl.List)
	g.Get("/:id/services", ctl.Services)
	g.Get("/:id/detail", ctl.Detail)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}
