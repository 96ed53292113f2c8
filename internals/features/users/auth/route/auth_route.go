// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kostku_backend/internals/features/users/auth/controller"
	rateLimiter "kostku_backend/internals/middlewares"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

// AuthRoutes: /auth/login & /auth/register publik, logout butuh token
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	g := api.Group("/auth")

	// 🔓 Public
	g.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	g.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)

	// 🔐 Protected
	g.Post("/logout", authMiddleware.AuthMiddleware(db), authController.Logout)
}
