package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	userController "kostku_backend/internals/features/users/user/controller"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen user"), constants.RoleAdmin)

	g := api.Group("/users")

	// ✅ Profil diri (JWT)
	g.Get("/profile", ctl.GetProfile)
	g.Put("/profile", ctl.UpdateProfile)
	g.Post("/change-password", ctl.ChangePassword)

	// 🔐 Admin
	g.Get("/", adminOnly, ctl.List)
	g.Put("/:id/status", adminOnly, ctl.UpdateStatus)
}
