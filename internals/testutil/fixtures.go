package testutil

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	boardingHouseModel "kostku_backend/internals/features/catalog/boarding_houses/model"
	roomServiceModel "kostku_backend/internals/features/catalog/room_services/model"
	roomModel "kostku_backend/internals/features/catalog/rooms/model"
	serviceTypeModel "kostku_backend/internals/features/catalog/service_types/model"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	tenantModel "kostku_backend/internals/features/tenancy/tenants/model"
	"kostku_backend/internals/helpers/dbtime"
)

// Dec: decimal dari literal, panic kalau salah ketik
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DecPtr: pointer decimal untuk kolom nullable
func DecPtr(s string) *decimal.Decimal {
	d := Dec(s)
	return &d
}

// FixedClock: jam palsu untuk field Now di service
func FixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 10, 0, 0, 0, time.UTC)
	}
}

// AssertFiberError memastikan err adalah *fiber.Error dengan code & message tertentu.
func AssertFiberError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "expected *fiber.Error, got %v", err)
	assert.Equal(t, code, fe.Code)
	if msg != "" {
		assert.Equal(t, msg, fe.Message)
	}
}

func CreateBoardingHouse(t *testing.T, db *gorm.DB, name string) boardingHouseModel.BoardingHouseModel {
	t.Helper()
	bh := boardingHouseModel.BoardingHouseModel{
		BoardingHouseName:    name,
		BoardingHouseAddress: "Jl. Melati No. 1",
	}
	require.NoError(t, db.Create(&bh).Error)
	return bh
}

func CreateRoom(t *testing.T, db *gorm.DB, boardingHouseID uuid.UUID, code string, baseRent string) roomModel.RoomModel {
	t.Helper()
	r := roomModel.RoomModel{
		RoomCode:            code,
		RoomBoardingHouseID: boardingHouseID,
		RoomBaseRent:        Dec(baseRent),
		RoomStatus:          roomModel.RoomStatusAvailable,
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func CreateServiceType(t *testing.T, db *gorm.DB, name string, cat serviceTypeModel.ServiceCategory, price string) serviceTypeModel.ServiceTypeModel {
	t.Helper()
	st := serviceTypeModel.ServiceTypeModel{
		ServiceTypeName:         name,
		ServiceTypeCategory:     cat,
		ServiceTypePricePerUnit: Dec(price),
		ServiceTypeIsActive:     true,
	}
	require.NoError(t, db.Create(&st).Error)
	return st
}

func AttachService(t *testing.T, db *gorm.DB, roomID, serviceTypeID uuid.UUID, pricePerUnit, fixedPrice *decimal.Decimal) roomServiceModel.RoomServiceModel {
	t.Helper()
	rs := roomServiceModel.RoomServiceModel{
		RoomServiceRoomID:        roomID,
		RoomServiceServiceTypeID: serviceTypeID,
		RoomServicePricePerUnit:  pricePerUnit,
		RoomServiceFixedPrice:    fixedPrice,
	}
	require.NoError(t, db.Create(&rs).Error)
	return rs
}

func CreateTenant(t *testing.T, db *gorm.DB, fullName string) tenantModel.TenantModel {
	t.Helper()
	tn := tenantModel.TenantModel{
		TenantFullName: fullName,
		TenantStatus:   tenantModel.TenantStatusActive,
	}
	require.NoError(t, db.Create(&tn).Error)
	return tn
}

func CreateContract(
	t *testing.T,
	db *gorm.DB,
	code string,
	roomID, mainTenantID uuid.UUID,
	monthlyRent string,
	status contractModel.ContractStatus,
) contractModel.ContractModel {
	t.Helper()
	ct := contractModel.ContractModel{
		ContractCode:         code,
		ContractRoomID:       roomID,
		ContractMainTenantID: mainTenantID,
		ContractStartDate:    dbtime.NewDate(2024, time.January, 1),
		ContractEndDate:      dbtime.NewDate(2024, time.December, 31),
		ContractDeposit:      Dec("0"),
		ContractMonthlyRent:  Dec(monthlyRent),
		ContractStatus:       status,
		ContractBillingCycle: contractModel.BillingCycleMonthly,
	}
	require.NoError(t, db.Create(&ct).Error)
	return ct
}

// RentalFixture: satu kos, satu kamar dengan internet (FIXED) + listrik (metered),
// satu penyewa, satu kontrak.
type RentalFixture struct {
	BoardingHouse boardingHouseModel.BoardingHouseModel
	Room          roomModel.RoomModel
	Internet      serviceTypeModel.ServiceTypeModel
	Electricity   serviceTypeModel.ServiceTypeModel
	Tenant        tenantModel.TenantModel
	Contract      contractModel.ContractModel
}

// SeedRental: sewa 3.000.000, internet override 200.000, listrik 3.000/kWh.
func SeedRental(t *testing.T, db *gorm.DB, status contractModel.ContractStatus) RentalFixture {
	t.Helper()
	var f RentalFixture
	f.BoardingHouse = CreateBoardingHouse(t, db, "Sunshine Boarding House")
	f.Room = CreateRoom(t, db, f.BoardingHouse.BoardingHouseID, "R101", "3000000")
	f.Internet = CreateServiceType(t, db, "Internet", serviceTypeModel.ServiceCategoryFixed, "100000")
	f.Electricity = CreateServiceType(t, db, "Electricity", serviceTypeModel.ServiceCategoryElectricity, "3000")
	AttachService(t, db, f.Room.RoomID, f.Internet.ServiceTypeID, nil, DecPtr("200000"))
	AttachService(t, db, f.Room.RoomID, f.Electricity.ServiceTypeID, nil, nil)
	f.Tenant = CreateTenant(t, db, "Nguyen Van A")
	f.Contract = CreateContract(t, db, "CT-001", f.Room.RoomID, f.Tenant.TenantID, "3000000", status)
	return f
}
