package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	invoiceRoute "kostku_backend/internals/features/billing/invoices/route"
	paymentRoute "kostku_backend/internals/features/billing/payments/route"
)

// 💰 invoice & pembayaran
func BillingRoutes(private fiber.Router, db *gorm.DB) {
	invoiceRoute.InvoiceRoutes(private, db)
	paymentRoute.PaymentRoutes(private, db)
}
