package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	rsController "kostku_backend/internals/features/catalog/room_services/controller"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

func RoomServiceRoutes(api fiber.Router, db *gorm.DB) {
	ctl := rsController.NewRoomServiceController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("layanan kamar"), constants.RoleAdmin)

	g := api.Group("/room-services")
	g.Get("/room/:roomId", ctl.ListByRoom)
	g.Post("/room/:roomId", adminOnly, ctl.Create)
	g.Get("/:id", ctl.GetByID)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}
