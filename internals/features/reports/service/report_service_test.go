package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	invoiceModel "kostku_backend/internals/features/billing/invoices/model"
	paymentModel "kostku_backend/internals/features/billing/payments/model"
	roomModel "kostku_backend/internals/features/catalog/rooms/model"
	"kostku_backend/internals/features/reports/dto"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	tenantModel "kostku_backend/internals/features/tenancy/tenants/model"
	"kostku_backend/internals/helpers/dbtime"
	"kostku_backend/internals/testutil"
)

type reportFixture struct {
	db       *gorm.DB
	svc      *ReportService
	paidJune invoiceModel.InvoiceModel
	lateMay  invoiceModel.InvoiceModel
	openJune invoiceModel.InvoiceModel
}

func createInvoice(t *testing.T, db *gorm.DB, code string, ct contractModel.ContractModel, month int, total string, status invoiceModel.InvoiceStatus, due dbtime.Date) invoiceModel.InvoiceModel {
	t.Helper()
	inv := invoiceModel.InvoiceModel{
		InvoiceCode:        code,
		InvoiceContractID:  ct.ContractID,
		InvoiceRoomID:      ct.ContractRoomID,
		InvoicePeriodMonth: month,
		InvoicePeriodYear:  2024,
		InvoiceTotalAmount: testutil.Dec(total),
		InvoiceStatus:      status,
		InvoiceDueDate:     due,
		InvoiceCreatedDate: dbtime.NewDate(2024, time.Month(month), 1),
	}
	require.NoError(t, db.Create(&inv).Error)
	return inv
}

func createPayment(t *testing.T, db *gorm.DB, invoiceID uuid.UUID, amount string) {
	t.Helper()
	p := paymentModel.PaymentModel{
		PaymentInvoiceID:  invoiceID,
		PaymentPaidAmount: testutil.Dec(amount),
		PaymentDate:       time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		PaymentMethod:     paymentModel.PaymentMethodCash,
	}
	require.NoError(t, db.Create(&p).Error)
}

func setRoomStatus(t *testing.T, db *gorm.DB, id uuid.UUID, st roomModel.RoomStatus) {
	t.Helper()
	require.NoError(t, db.Model(&roomModel.RoomModel{}).Where("room_id = ?", id).Update("room_status", st).Error)
}

// newReportFixture (hari ini 15 Juni 2024):
//   - Sunshine: R101 (CT-001 ACTIVE, co-tenant Le Van D), R103 maintenance (CT-003 TERMINATED)
//   - Moonlight: R201 (CT-002 ACTIVE, co-tenant nonaktif)
//   - invoice Juni CT-001 lunas, Mei CT-001 overdue sebagian, Juni CT-002 belum bayar
func newReportFixture(t *testing.T) reportFixture {
	db := testutil.NewTestDB(t)
	f := testutil.SeedRental(t, db, contractModel.ContractStatusActive)
	setRoomStatus(t, db, f.Room.RoomID, roomModel.RoomStatusOccupied)

	r103 := testutil.CreateRoom(t, db, f.BoardingHouse.BoardingHouseID, "R103", "2500000")
	setRoomStatus(t, db, r103.RoomID, roomModel.RoomStatusMaintenance)
	moon := testutil.CreateBoardingHouse(t, db, "Moonlight House")
	r201 := testutil.CreateRoom(t, db, moon.BoardingHouseID, "R201", "1500000")
	setRoomStatus(t, db, r201.RoomID, roomModel.RoomStatusOccupied)

	tranB := testutil.CreateTenant(t, db, "Tran Thi B")
	inactive := testutil.CreateTenant(t, db, "Pham Van C")
	require.NoError(t, db.Model(&inactive).Update("tenant_status", tenantModel.TenantStatusInactive).Error)
	coTenant := testutil.CreateTenant(t, db, "Le Van D")
	formerE := testutil.CreateTenant(t, db, "Hoang Van E")

	ct2 := testutil.CreateContract(t, db, "CT-002", r201.RoomID, tranB.TenantID, "1500000", contractModel.ContractStatusActive)
	testutil.CreateContract(t, db, "CT-003", r103.RoomID, formerE.TenantID, "2500000", contractModel.ContractStatusTerminated)
	require.NoError(t, db.Create(&[]contractModel.ContractTenantModel{
		{ContractTenantContractID: f.Contract.ContractID, ContractTenantTenantID: coTenant.TenantID},
		{ContractTenantContractID: ct2.ContractID, ContractTenantTenantID: inactive.TenantID},
	}).Error)

	fx := reportFixture{db: db}
	fx.paidJune = createInvoice(t, db, "INV-CT-001-202406", f.Contract, 6, "3350000", invoiceModel.InvoiceStatusPaid, dbtime.NewDate(2024, time.June, 10))
	createPayment(t, db, fx.paidJune.InvoiceID, "3000000")
	createPayment(t, db, fx.paidJune.InvoiceID, "350000")

	fx.lateMay = createInvoice(t, db, "INV-CT-001-202405", f.Contract, 5, "3000000", invoiceModel.InvoiceStatusOverdue, dbtime.NewDate(2024, time.May, 10))
	createPayment(t, db, fx.lateMay.InvoiceID, "1000000")

	fx.openJune = createInvoice(t, db, "INV-CT-002-202406", ct2, 6, "1500000", invoiceModel.InvoiceStatusUnpaid, dbtime.NewDate(2024, time.June, 20))

	fx.svc = NewReportService(db)
	fx.svc.Now = testutil.FixedClock(2024, time.June, 15)
	return fx
}

func TestDashboard(t *testing.T) {
	fx := newReportFixture(t)

	out, err := fx.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, out.TotalRooms)
	assert.EqualValues(t, 2, out.OccupiedRooms)
	assert.EqualValues(t, 0, out.AvailableRooms)
	assert.EqualValues(t, 1, out.MaintenanceRooms)
	assert.EqualValues(t, 4, out.TotalTenants)
	assert.EqualValues(t, 2, out.ActiveContracts)
	assert.EqualValues(t, 1, out.OverdueInvoices)
	assert.True(t, out.MonthlyRevenue.Equal(testutil.Dec("3350000")), out.MonthlyRevenue.String())
	// hanya invoice UNPAID; overdue tidak ikut
	assert.True(t, out.UnpaidAmount.Equal(testutil.Dec("1500000")), out.UnpaidAmount.String())
}

func TestDashboard_EmptyDatabase(t *testing.T) {
	svc := NewReportService(testutil.NewTestDB(t))
	out, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.TotalRooms)
	assert.True(t, out.MonthlyRevenue.IsZero())
	assert.True(t, out.UnpaidAmount.IsZero())
}

func TestRevenueByMonth_CountsOnlyPaidInvoices(t *testing.T) {
	fx := newReportFixture(t)

	rows, err := fx.svc.RevenueByMonth(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 5, rows[0].Month)
	assert.True(t, rows[0].TotalRevenue.IsZero())
	assert.Equal(t, 1, rows[0].InvoiceCount)
	assert.Equal(t, 0, rows[0].PaidInvoiceCount)

	assert.Equal(t, 6, rows[1].Month)
	assert.Equal(t, 2024, rows[1].Year)
	assert.True(t, rows[1].TotalRevenue.Equal(testutil.Dec("3350000")))
	assert.Equal(t, 2, rows[1].InvoiceCount)
	assert.Equal(t, 1, rows[1].PaidInvoiceCount)

	rows, err = fx.svc.RevenueByMonth(context.Background(), 2023)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRevenueByBoardingHouse(t *testing.T) {
	fx := newReportFixture(t)
	ctx := context.Background()

	rows, err := fx.svc.RevenueByBoardingHouse(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Moonlight House", rows[0].BoardingHouseName)
	assert.True(t, rows[0].TotalRevenue.IsZero())
	assert.Equal(t, 1, rows[0].InvoiceCount)
	assert.EqualValues(t, 1, rows[0].RoomCount)

	assert.Equal(t, "Sunshine Boarding House", rows[1].BoardingHouseName)
	assert.True(t, rows[1].TotalRevenue.Equal(testutil.Dec("3350000")))
	assert.Equal(t, 2, rows[1].InvoiceCount)
	assert.Equal(t, 1, rows[1].PaidInvoiceCount)
	assert.EqualValues(t, 2, rows[1].RoomCount)

	// periode dibandingkan lewat tanggal 1-nya
	to := dbtime.NewDate(2024, time.May, 31)
	rows, err = fx.svc.RevenueByBoardingHouse(ctx, nil, &to)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sunshine Boarding House", rows[0].BoardingHouseName)
	assert.Equal(t, 1, rows[0].InvoiceCount)
	assert.True(t, rows[0].TotalRevenue.IsZero())

	from := dbtime.NewDate(2024, time.June, 1)
	rows, err = fx.svc.RevenueByBoardingHouse(ctx, &from, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[1].InvoiceCount)
	assert.Equal(t, 1, rows[1].PaidInvoiceCount)
}

func TestTenantsCurrentlyRenting_MainAndCoTenantsOfActiveContracts(t *testing.T) {
	fx := newReportFixture(t)

	rows, err := fx.svc.TenantsCurrentlyRenting(context.Background())
	require.NoError(t, err)

	names := lo.Map(rows, func(r dto.RentingTenant, _ int) string { return r.TenantFullName })
	assert.Equal(t, []string{"Le Van D", "Nguyen Van A", "Tran Thi B"}, names)
}

func TestOutstandingDebts_SortedByDaysOverdue(t *testing.T) {
	fx := newReportFixture(t)

	rows, err := fx.svc.OutstandingDebts(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	late := rows[0]
	assert.Equal(t, fx.lateMay.InvoiceID, late.InvoiceID)
	assert.Equal(t, "CT-001", late.ContractCode)
	assert.Equal(t, "R101", late.RoomCode)
	assert.Equal(t, "Nguyen Van A", late.TenantName)
	assert.True(t, late.PaidAmount.Equal(testutil.Dec("1000000")))
	assert.True(t, late.RemainingAmount.Equal(testutil.Dec("2000000")))
	assert.Equal(t, invoiceModel.InvoiceStatusOverdue, late.Status)
	assert.Equal(t, 36, late.DaysOverdue)

	open := rows[1]
	assert.Equal(t, fx.openJune.InvoiceID, open.InvoiceID)
	assert.Equal(t, "Tran Thi B", open.TenantName)
	assert.True(t, open.RemainingAmount.Equal(testutil.Dec("1500000")))
	assert.Equal(t, 0, open.DaysOverdue)
}
