package database

import (
	"log"

	"gorm.io/gorm"

	invoiceModel "kostku_backend/internals/features/billing/invoices/model"
	paymentModel "kostku_backend/internals/features/billing/payments/model"
	boardingHouseModel "kostku_backend/internals/features/catalog/boarding_houses/model"
	roomServiceModel "kostku_backend/internals/features/catalog/room_services/model"
	roomModel "kostku_backend/internals/features/catalog/rooms/model"
	serviceTypeModel "kostku_backend/internals/features/catalog/service_types/model"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	tenantModel "kostku_backend/internals/features/tenancy/tenants/model"
	authModel "kostku_backend/internals/features/users/auth/model"
	userModel "kostku_backend/internals/features/users/user/model"
)

// Models: urutan parent → child
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&boardingHouseModel.BoardingHouseModel{},
		&roomModel.RoomModel{},
		&serviceTypeModel.ServiceTypeModel{},
		&roomServiceModel.RoomServiceModel{},
		&tenantModel.TenantModel{},
		&contractModel.ContractModel{},
		&contractModel.ContractTenantModel{},
		&invoiceModel.InvoiceModel{},
		&invoiceModel.InvoiceItemModel{},
		&paymentModel.PaymentModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	log.Println("🛠  Running AutoMigrate...")
	if err := db.AutoMigrate(Models()...); err != nil {
		log.Printf("❌ AutoMigrate failed: %v", err)
		return err
	}
	log.Println("✅ AutoMigrate done.")
	return nil
}
