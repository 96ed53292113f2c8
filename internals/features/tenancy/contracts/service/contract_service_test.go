package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	invoiceService "kostku_backend/internals/features/billing/invoices/service"
	roomModel "kostku_backend/internals/features/catalog/rooms/model"
	"kostku_backend/internals/features/tenancy/contracts/dto"
	"kostku_backend/internals/features/tenancy/contracts/model"
	helper "kostku_backend/internals/helpers"
	"kostku_backend/internals/helpers/dbtime"
	"kostku_backend/internals/testutil"
)

func newTestService(db *gorm.DB) *ContractService {
	svc := NewContractService(db)
	svc.Now = testutil.FixedClock(2024, time.June, 15)
	return svc
}

func roomStatus(t *testing.T, db *gorm.DB, roomID uuid.UUID) roomModel.RoomStatus {
	t.Helper()
	var r roomModel.RoomModel
	require.NoError(t, db.Where("room_id = ?", roomID).First(&r).Error)
	return r.RoomStatus
}

func createReq(code string, roomID, tenantID uuid.UUID, status *model.ContractStatus) dto.CreateContractRequest {
	return dto.CreateContractRequest{
		Code:         code,
		RoomID:       roomID,
		MainTenantID: tenantID,
		StartDate:    dbtime.NewDate(2024, time.January, 1),
		EndDate:      dbtime.NewDate(2024, time.December, 31),
		Deposit:      testutil.Dec("3000000"),
		MonthlyRent:  testutil.Dec("3000000"),
		Status:       status,
	}
}

func TestCreate_ActiveOccupiesRoomAndDefaults(t *testing.T) {
	db := testutil.NewTestDB(t)
	bh := testutil.CreateBoardingHouse(t, db, "Sunshine Boarding House")
	room := testutil.CreateRoom(t, db, bh.BoardingHouseID, "R101", "3000000")
	main := testutil.CreateTenant(t, db, "Nguyen Van A")
	co := testutil.CreateTenant(t, db, "Tran Thi B")
	svc := newTestService(db)

	req := createReq("  CT-001 ", room.RoomID, main.TenantID, lo.ToPtr(model.ContractStatusActive))
	// main tenant & duplikat dibuang dari co-tenant
	req.TenantIDs = []uuid.UUID{co.TenantID, co.TenantID, main.TenantID}

	out, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "CT-001", out.ContractCode)
	assert.Equal(t, "R101", out.RoomCode)
	assert.Equal(t, "Nguyen Van A", out.MainTenantName)
	assert.Equal(t, model.BillingCycleMonthly, out.ContractBillingCycle)
	assert.Equal(t, []uuid.UUID{co.TenantID}, out.ContractTenantIDs)
	assert.Equal(t, roomModel.RoomStatusOccupied, roomStatus(t, db, room.RoomID))

	draft, err := svc.Create(context.Background(), createReq("CT-002", room.RoomID, main.TenantID, nil))
	require.NoError(t, err)
	assert.Equal(t, model.ContractStatusDraft, draft.ContractStatus)
}

func TestCreate_DraftLeavesRoomUntouched(t *testing.T) {
	db := testutil.NewTestDB(t)
	bh := testutil.CreateBoardingHouse(t, db, "Sunshine Boarding House")
	room := testutil.CreateRoom(t, db, bh.BoardingHouseID, "R101", "3000000")
	main := testutil.CreateTenant(t, db, "Nguyen Van A")

	_, err := newTestService(db).Create(context.Background(), createReq("CT-001", room.RoomID, main.TenantID, nil))
	require.NoError(t, err)
	assert.Equal(t, roomModel.RoomStatusAvailable, roomStatus(t, db, room.RoomID))
}

func TestCreate_Errors(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedRental(t, db, model.ContractStatusActive)
	svc := newTestService(db)
	ctx := context.Background()

	t.Run("duplicate code", func(t *testing.T) {
		_, err := svc.Create(ctx, createReq("CT-001", f.Room.RoomID, f.Tenant.TenantID, nil))
		testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Contract code already exists: CT-001")
	})

	t.Run("room not found", func(t *testing.T) {
		_, err := svc.Create(ctx, createReq("CT-X", uuid.New(), f.Tenant.TenantID, nil))
		testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Room not found")
	})

	t.Run("main tenant not found", func(t *testing.T) {
		_, err := svc.Create(ctx, createReq("CT-X", f.Room.RoomID, uuid.New(), nil))
		testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Main tenant not found")
	})

	t.Run("co-tenant not found", func(t *testing.T) {
		ghost := uuid.New()
		req := createReq("CT-X", f.Room.RoomID, f.Tenant.TenantID, nil)
		req.TenantIDs = []uuid.UUID{ghost}
		_, err := svc.Create(ctx, req)
		testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Tenant not found with id: "+ghost.String())
	})

	t.Run("end before start", func(t *testing.T) {
		req := createReq("CT-X", f.Room.RoomID, f.Tenant.TenantID, nil)
		req.EndDate = dbtime.NewDate(2023, time.December, 31)
		_, err := svc.Create(ctx, req)
		testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "End date must not be before start date")
	})

	t.Run("second active contract on same room", func(t *testing.T) {
		_, err := svc.Create(ctx, createReq("CT-X", f.Room.RoomID, f.Tenant.TenantID, lo.ToPtr(model.ContractStatusActive)))
		testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Room already has an active contract")
	})

	var n int64
	require.NoError(t, db.Model(&model.ContractModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestUpdate_StatusDrivesRoom(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedRental(t, db, model.ContractStatusDraft)
	svc := newTestService(db)
	ctx := context.Background()

	out, err := svc.Update(ctx, f.Contract.ContractID, dto.UpdateContractRequest{
		Status:      lo.ToPtr(model.ContractStatusActive),
		MonthlyRent: lo.ToPtr(testutil.Dec("3200000")),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ContractStatusActive, out.ContractStatus)
	assert.True(t, out.ContractMonthlyRent.Equal(testutil.Dec("3200000")))
	assert.Equal(t, "CT-001", out.ContractCode)
	assert.Equal(t, roomModel.RoomStatusOccupied, roomStatus(t, db, f.Room.RoomID))

	out, err = svc.Update(ctx, f.Contract.ContractID, dto.UpdateContractRequest{
		Status: lo.ToPtr(model.ContractStatusExpired),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ContractStatusExpired, out.ContractStatus)
	assert.Equal(t, roomModel.RoomStatusAvailable, roomStatus(t, db, f.Room.RoomID))
}

func TestUpdate_CodeUniquenessOnlyWhenChanged(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedRental(t, db, model.ContractStatusActive)
	other := testutil.CreateRoom(t, db, f.BoardingHouse.BoardingHouseID, "R102", "3500000")
	testutil.CreateContract(t, db, "CT-002", other.RoomID, f.Tenant.TenantID, "3500000", model.ContractStatusDraft)
	svc := newTestService(db)
	ctx := context.Background()

	// kode sama dengan milik sendiri → boleh
	_, err := svc.Update(ctx, f.Contract.ContractID, dto.UpdateContractRequest{Code: lo.ToPtr("CT-001")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, f.Contract.ContractID, dto.UpdateContractRequest{Code: lo.ToPtr("CT-002")})
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Contract code already exists: CT-002")

	missing := uuid.New()
	_, err = svc.Update(ctx, missing, dto.UpdateContractRequest{})
	testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Contract not found with id: "+missing.String())
}

func TestUpdate_ReplacesCoTenants(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedRental(t, db, model.ContractStatusActive)
	b := testutil.CreateTenant(t, db, "Tran Thi B")
	c := testutil.CreateTenant(t, db, "Le Van C")
	svc := newTestService(db)
	ctx := context.Background()

	out, err := svc.Update(ctx, f.Contract.ContractID, dto.UpdateContractRequest{TenantIDs: &[]uuid.UUID{b.TenantID, c.TenantID}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{b.TenantID, c.TenantID}, out.ContractTenantIDs)

	// nil → tidak diubah
	out, err = svc.Update(ctx, f.Contract.ContractID, dto.UpdateContractRequest{Deposit: lo.ToPtr(testutil.Dec("0"))})
	require.NoError(t, err)
	assert.Len(t, out.ContractTenantIDs, 2)

	out, err = svc.Update(ctx, f.Contract.ContractID, dto.UpdateContractRequest{TenantIDs: &[]uuid.UUID{}})
	require.NoError(t, err)
	assert.Empty(t, out.ContractTenantIDs)
}

func TestTerminate_AnyStatusFreesRoom(t *testing.T) {
	for _, st := range []model.ContractStatus{
		model.ContractStatusActive,
		model.ContractStatusDraft,
		model.ContractStatusExpired,
	} {
		t.Run(string(st), func(t *testing.T) {
			db := testutil.NewTestDB(t)
			f := testutil.SeedRental(t, db, st)
			require.NoError(t, db.Model(&roomModel.RoomModel{}).
				Where("room_id = ?", f.Room.RoomID).
				Update("room_status", roomModel.RoomStatusOccupied).Error)

			when := dbtime.NewDate(2024, time.July, 1)
			out, err := newTestService(db).Terminate(context.Background(), f.Contract.ContractID, "tenant moved out", &when)
			require.NoError(t, err)

			assert.Equal(t, model.ContractStatusTerminated, out.ContractStatus)
			require.NotNil(t, out.ContractTerminationReason)
			assert.Equal(t, "tenant moved out", *out.ContractTerminationReason)
			require.NotNil(t, out.ContractTerminationDate)
			assert.True(t, out.ContractTerminationDate.Equal(when))
			assert.Equal(t, roomModel.RoomStatusAvailable, roomStatus(t, db, f.Room.RoomID))
		})
	}
}

func TestTerminate_DefaultsToToday(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedRental(t, db, model.ContractStatusActive)

	out, err := newTestService(db).Terminate(context.Background(), f.Contract.ContractID, "early exit", nil)
	require.NoError(t, err)
	require.NotNil(t, out.ContractTerminationDate)
	assert.Equal(t, "2024-06-15", out.ContractTerminationDate.String())

	missing := uuid.New()
	_, err = newTestService(db).Terminate(context.Background(), missing, "x", nil)
	testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Contract not found with id: "+missing.String())
}

func TestDelete(t *testing.T) {
	t.Run("refused when invoices exist", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		f := testutil.SeedRental(t, db, model.ContractStatusActive)
		inv := invoiceService.NewInvoiceService(db)
		inv.Now = testutil.FixedClock(2024, time.June, 15)
		_, err := inv.Generate(context.Background(), f.Contract.ContractID, 6, 2024)
		require.NoError(t, err)

		err = newTestService(db).Delete(context.Background(), f.Contract.ContractID)
		testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Cannot delete contract with invoices")
	})

	t.Run("active contract frees room and links", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		f := testutil.SeedRental(t, db, model.ContractStatusActive)
		co := testutil.CreateTenant(t, db, "Tran Thi B")
		require.NoError(t, db.Create(&model.ContractTenantModel{
			ContractTenantContractID: f.Contract.ContractID,
			ContractTenantTenantID:   co.TenantID,
		}).Error)
		require.NoError(t, db.Model(&roomModel.RoomModel{}).
			Where("room_id = ?", f.Room.RoomID).
			Update("room_status", roomModel.RoomStatusOccupied).Error)

		require.NoError(t, newTestService(db).Delete(context.Background(), f.Contract.ContractID))

		var links int64
		require.NoError(t, db.Model(&model.ContractTenantModel{}).Count(&links).Error)
		assert.Zero(t, links)
		assert.Equal(t, roomModel.RoomStatusAvailable, roomStatus(t, db, f.Room.RoomID))
	})
}

func TestDetail_DaysRemainingAndInvoices(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedRental(t, db, model.ContractStatusActive)
	co := testutil.CreateTenant(t, db, "Tran Thi B")
	svc := newTestService(db)
	ctx := context.Background()

	_, err := svc.Update(ctx, f.Contract.ContractID, dto.UpdateContractRequest{TenantIDs: &[]uuid.UUID{co.TenantID}})
	require.NoError(t, err)

	inv := invoiceService.NewInvoiceService(db)
	inv.Now = svc.Now
	_, err = inv.Generate(ctx, f.Contract.ContractID, 6, 2024)
	require.NoError(t, err)

	d, err := svc.Detail(ctx, f.Contract.ContractID)
	require.NoError(t, err)
	assert.Equal(t, "Sunshine Boarding House", d.BoardingHouseName)
	require.Len(t, d.Tenants, 2)
	assert.True(t, d.Tenants[0].IsMainTenant)
	assert.Equal(t, "Nguyen Van A", d.Tenants[0].TenantFullName)
	require.Len(t, d.Invoices, 1)
	assert.Equal(t, "INV-CT-001-06-2024", d.Invoices[0].InvoiceCode)
	assert.True(t, d.Invoices[0].InvoicePaidAmount.IsZero())

	// 15 Juni → 31 Desember 2024
	require.NotNil(t, d.DaysRemaining)
	assert.Equal(t, 199, *d.DaysRemaining)

	// lewat tanggal akhir → 0, bukan negatif
	svc.Now = testutil.FixedClock(2025, time.February, 1)
	d, err = svc.Detail(ctx, f.Contract.ContractID)
	require.NoError(t, err)
	require.NotNil(t, d.DaysRemaining)
	assert.Zero(t, *d.DaysRemaining)
}

func TestList_Filters(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedRental(t, db, model.ContractStatusActive)
	other := testutil.CreateRoom(t, db, f.BoardingHouse.BoardingHouseID, "R102", "3500000")
	b := testutil.CreateTenant(t, db, "Tran Thi B")
	testutil.CreateContract(t, db, "CT-002", other.RoomID, b.TenantID, "3500000", model.ContractStatusDraft)
	svc := newTestService(db)
	p := helper.Params{Page: 1, PerPage: 10, SortBy: "code", SortOrder: "asc"}

	rows, total, err := svc.List(context.Background(), dto.ListContractQuery{}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "CT-001", rows[0].ContractCode)

	active := model.ContractStatusActive
	rows, total, err = svc.List(context.Background(), dto.ListContractQuery{Status: &active}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "CT-001", rows[0].ContractCode)

	rows, _, err = svc.List(context.Background(), dto.ListContractQuery{TenantID: &b.TenantID}, p)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "CT-002", rows[0].ContractCode)

	rows, _, err = svc.List(context.Background(), dto.ListContractQuery{Search: "002"}, p)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
