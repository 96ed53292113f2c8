package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	paymentController "kostku_backend/internals/features/billing/payments/controller"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

func PaymentRoutes(api fiber.Router, db *gorm.DB) {
	ctl := paymentController.NewPaymentController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("payment"), constants.RoleAdmin)

	g := api.Group("/payments")

	g.Get("/", ctl.List)
	g.Get("/invoice/:invoiceId", ctl.ListByInvoice)
	g.Get("/:id", ctl.GetByID)

	g.Post("/", adminOnly, ctl.Create)
	g.Delete("/:id", adminOnly, ctl.Delete)
}
