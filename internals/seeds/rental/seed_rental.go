package rental

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	boardingHouseModel "kostku_backend/internals/features/catalog/boarding_houses/model"
	roomServiceModel "kostku_backend/internals/features/catalog/room_services/model"
	roomModel "kostku_backend/internals/features/catalog/rooms/model"
	serviceTypeModel "kostku_backend/internals/features/catalog/service_types/model"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	tenantModel "kostku_backend/internals/features/tenancy/tenants/model"
	"kostku_backend/internals/helpers/dbtime"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SeedRental: satu kos dengan tiga kamar, tiga jenis layanan,
// satu penyewa (terhubung ke tenantUserID) dan satu kontrak aktif di R101.
func SeedRental(tx *gorm.DB, tenantUserID uuid.UUID, now time.Time) error {
	house := boardingHouseModel.BoardingHouseModel{
		BoardingHouseName:           "Sunshine Boarding House",
		BoardingHouseAddress:        "123 Main Street, District 1, Ho Chi Minh City",
		BoardingHouseDescription:    lo.ToPtr("A modern boarding house with full amenities"),
		BoardingHouseNumberOfFloors: lo.ToPtr(3),
		BoardingHouseNotes:          lo.ToPtr("Near university and shopping center"),
	}
	if err := tx.Create(&house).Error; err != nil {
		return err
	}

	rooms := []roomModel.RoomModel{
		{RoomCode: "R101", RoomFloor: lo.ToPtr(1), RoomArea: lo.ToPtr(dec("25.5")), RoomMaxOccupants: lo.ToPtr(2), RoomBaseRent: dec("3000000")},
		{RoomCode: "R102", RoomFloor: lo.ToPtr(1), RoomArea: lo.ToPtr(dec("30.0")), RoomMaxOccupants: lo.ToPtr(2), RoomBaseRent: dec("3500000")},
		{RoomCode: "R201", RoomFloor: lo.ToPtr(2), RoomArea: lo.ToPtr(dec("28.0")), RoomMaxOccupants: lo.ToPtr(2), RoomBaseRent: dec("3200000")},
	}
	for i := range rooms {
		rooms[i].RoomBoardingHouseID = house.BoardingHouseID
		rooms[i].RoomStatus = roomModel.RoomStatusAvailable
	}
	if err := tx.Create(&rooms).Error; err != nil {
		return err
	}
	r101 := rooms[0]

	tenant := tenantModel.TenantModel{
		TenantUserID:           &tenantUserID,
		TenantFullName:         "Nguyen Van A",
		TenantPhone:            lo.ToPtr("0987654321"),
		TenantEmail:            lo.ToPtr("tenant@example.com"),
		TenantIdentityNumber:   lo.ToPtr("001234567890"),
		TenantDateOfBirth:      lo.ToPtr(dbtime.NewDate(1995, time.May, 15)),
		TenantPermanentAddress: lo.ToPtr("456 Other Street, District 2"),
		TenantStatus:           tenantModel.TenantStatusActive,
	}
	if err := tx.Create(&tenant).Error; err != nil {
		return err
	}

	types := []serviceTypeModel.ServiceTypeModel{
		{ServiceTypeName: "Electricity", ServiceTypeCategory: serviceTypeModel.ServiceCategoryElectricity, ServiceTypeUnit: lo.ToPtr("kWh"), ServiceTypePricePerUnit: dec("3000"), ServiceTypeIsActive: true},
		{ServiceTypeName: "Water", ServiceTypeCategory: serviceTypeModel.ServiceCategoryWater, ServiceTypeUnit: lo.ToPtr("m³"), ServiceTypePricePerUnit: dec("15000"), ServiceTypeIsActive: true},
		{ServiceTypeName: "Internet", ServiceTypeCategory: serviceTypeModel.ServiceCategoryFixed, ServiceTypeUnit: lo.ToPtr("month"), ServiceTypePricePerUnit: dec("100000"), ServiceTypeIsActive: true},
	}
	if err := tx.Create(&types).Error; err != nil {
		return err
	}

	// layanan R101: listrik & air pakai harga per unit, internet harga tetap
	links := []roomServiceModel.RoomServiceModel{
		{RoomServiceServiceTypeID: types[0].ServiceTypeID, RoomServicePricePerUnit: lo.ToPtr(dec("3000"))},
		{RoomServiceServiceTypeID: types[1].ServiceTypeID, RoomServicePricePerUnit: lo.ToPtr(dec("15000"))},
		{RoomServiceServiceTypeID: types[2].ServiceTypeID, RoomServiceFixedPrice: lo.ToPtr(dec("200000"))},
	}
	for i := range links {
		links[i].RoomServiceRoomID = r101.RoomID
	}
	if err := tx.Create(&links).Error; err != nil {
		return err
	}

	today := dbtime.DateOf(now)
	contract := contractModel.ContractModel{
		ContractCode:         "CT-2024-001",
		ContractRoomID:       r101.RoomID,
		ContractMainTenantID: tenant.TenantID,
		ContractStartDate:    dbtime.DateOf(today.AddDate(0, -2, 0)),
		ContractEndDate:      dbtime.DateOf(today.AddDate(0, 10, 0)),
		ContractDeposit:      dec("6000000"),
		ContractMonthlyRent:  dec("3000000"),
		ContractStatus:       contractModel.ContractStatusActive,
		ContractBillingCycle: contractModel.BillingCycleMonthly,
	}
	if err := tx.Create(&contract).Error; err != nil {
		return err
	}

	if err := tx.Model(&roomModel.RoomModel{}).
		Where("room_id = ?", r101.RoomID).
		Update("room_status", roomModel.RoomStatusOccupied).Error; err != nil {
		return err
	}

	log.Printf("✅ Kos '%s' + %d kamar + kontrak %s dibuat", house.BoardingHouseName, len(rooms), contract.ContractCode)
	return nil
}
