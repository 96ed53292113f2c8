package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"kostku_backend/internals/middlewares/logger"
)

// SetupMiddlewares: recover → cors → access log → global limiter
func SetupMiddlewares(app *fiber.App) {
	log.Println("[INFO] Setting up middlewares...")
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
