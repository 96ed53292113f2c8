package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	invoiceController "kostku_backend/internals/features/billing/invoices/controller"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

// InvoiceRoutes: dipasang di group /api yang sudah lewat AuthMiddleware.
func InvoiceRoutes(api fiber.Router, db *gorm.DB) {
	ctl := invoiceController.NewInvoiceController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("invoice"), constants.RoleAdmin)

	g := api.Group("/invoices")

	// 🔓 read (semua user login)
	g.Get("/", ctl.List)
	g.Get("/contract/:contractId", ctl.ListByContract)
	g.Get("/:id/detail", ctl.GetDetail)
	g.Get("/:id", ctl.GetByID)

	// 🔐 admin
	g.Post("/generate", adminOnly, ctl.Generate)
	g.Post("/generate-with-readings", adminOnly, ctl.GenerateWithReadings)
	g.Post("/:id/recompute-status", adminOnly, ctl.RecomputeStatus)
}
