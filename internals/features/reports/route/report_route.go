package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	reportController "kostku_backend/internals/features/reports/controller"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

// ReportRoutes: dashboard + laporan, admin saja
func ReportRoutes(api fiber.Router, db *gorm.DB) {
	ctl := reportController.NewReportController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("laporan"), constants.RoleAdmin)

	api.Get("/dashboard", adminOnly, ctl.Dashboard)

	g := api.Group("/reports", adminOnly)
	g.Get("/revenue-by-month", ctl.RevenueByMonth)
	g.Get("/revenue-by-boarding-house", ctl.RevenueByBoardingHouse)
	g.Get("/tenants-currently-renting", ctl.TenantsCurrentlyRenting)
	g.Get("/outstanding-debts", ctl.OutstandingDebts)
}
