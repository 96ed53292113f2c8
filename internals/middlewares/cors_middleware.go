// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"kostku_backend/internals/configs"
)

var defaultAllowOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://127.0.0.1:5500",
}

// CorsMiddleware membuat middleware CORS; origin bisa dioverride via CORS_ALLOW_ORIGINS (pisah koma)
func CorsMiddleware() fiber.Handler {
	origins := strings.Join(defaultAllowOrigins, ", ")
	if v := strings.TrimSpace(configs.GetEnv("CORS_ALLOW_ORIGINS")); v != "" {
		origins = v
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowCredentials: origins != "*",
	})
}
