package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	contractRoute "kostku_backend/internals/features/tenancy/contracts/route"
	tenantRoute "kostku_backend/internals/features/tenancy/tenants/route"
)

func TenancyRoutes(private fiber.Router, db *gorm.DB) {
	tenantRoute.TenantRoutes(private, db)
	contractRoute.ContractRoutes(private, db)
}
