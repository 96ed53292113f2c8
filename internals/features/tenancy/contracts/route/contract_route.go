package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	contractController "kostku_backend/internals/features/tenancy/contracts/controller"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

func ContractRoutes(api fiber.Router, db *gorm.DB) {
	ctl := contractController.NewContractController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("kontrak"), constants.RoleAdmin)

	g := api.Group("/contracts")

	g.Get("/", ctl.List)
	g.Get("/:id/detail", ctl.Detail)
	g.Get("/:id", ctl.GetByID)

	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Post("/:id/terminate", adminOnly, ctl.Terminate)
	g.Delete("/:id", adminOnly, ctl.Delete)
}
