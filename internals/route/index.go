// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "kostku_backend/internals/middlewares/auth"
	routeDetails "kostku_backend/internals/route/details"
)

var startTime = time.Now()

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	api := app.Group("/api")

	// ===================== AUTH (public) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(api, db)

	// ===================== PRIVATE (JWT) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := api.Group("", authMiddleware.AuthMiddleware(db))

	routeDetails.UserRoutes(private, db)
	routeDetails.CatalogRoutes(private, db)
	routeDetails.TenancyRoutes(private, db)
	routeDetails.BillingRoutes(private, db)
	routeDetails.ReportRoutes(private, db)

	log.Println("[INFO] ✅ Routes ready")
}
