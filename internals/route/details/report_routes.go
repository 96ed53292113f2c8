package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportRoute "kostku_backend/internals/features/reports/route"
)

func ReportRoutes(private fiber.Router, db *gorm.DB) {
	reportRoute.ReportRoutes(private, db)
}
