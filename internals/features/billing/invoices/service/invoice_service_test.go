package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kostku_backend/internals/features/billing/invoices/dto"
	"kostku_backend/internals/features/billing/invoices/model"
	paymentModel "kostku_backend/internals/features/billing/payments/model"
	serviceTypeModel "kostku_backend/internals/features/catalog/service_types/model"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	helper "kostku_backend/internals/helpers"
	"kostku_backend/internals/helpers/dbtime"
	"kostku_backend/internals/testutil"
)

func paramsAll() helper.Params {
	return helper.Params{Page: 1, PerPage: 100, SortBy: "created_at", SortOrder: "desc"}
}

func newTestService(t *testing.T) (*InvoiceService, testutil.RentalFixture) {
	db := testutil.NewTestDB(t)
	f := testutil.SeedRental(t, db, contractModel.ContractStatusActive)
	svc := NewInvoiceService(db)
	svc.Now = testutil.FixedClock(2024, time.June, 15)
	return svc, f
}

func itemByDescription(t *testing.T, items []dto.InvoiceItemResponse, desc string) dto.InvoiceItemResponse {
	t.Helper()
	it, ok := lo.Find(items, func(i dto.InvoiceItemResponse) bool { return i.InvoiceItemDescription == desc })
	require.True(t, ok, "item %q not found", desc)
	return it
}

func TestGenerateWithReadings_ComputesRentFixedAndMeteredItems(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	inv, err := svc.GenerateWithReadings(ctx, f.Contract.ContractID, 6, 2024, []model.MeterReading{
		{ServiceTypeID: f.Electricity.ServiceTypeID, OldIndex: testutil.Dec("100"), NewIndex: testutil.Dec("150")},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-CT-001-06-2024", inv.InvoiceCode)
	assert.Equal(t, model.InvoiceStatusUnpaid, inv.InvoiceStatus)
	assert.Equal(t, "2024-06-30", inv.InvoiceDueDate.String())
	assert.Equal(t, "2024-06-15", inv.InvoiceCreatedDate.String())
	assert.Equal(t, "R101", inv.RoomCode)
	assert.Equal(t, "CT-001", inv.ContractCode)
	require.Len(t, inv.Items, 3)

	rent := inv.Items[0]
	assert.Equal(t, model.ItemTypeRent, rent.InvoiceItemType)
	assert.Equal(t, "Monthly Rent", rent.InvoiceItemDescription)
	assert.True(t, rent.InvoiceItemAmount.Equal(testutil.Dec("3000000")))

	internet := itemByDescription(t, inv.Items, "Internet")
	assert.True(t, internet.InvoiceItemQuantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, internet.InvoiceItemAmount.Equal(testutil.Dec("200000")))

	elec := itemByDescription(t, inv.Items, "Electricity")
	assert.True(t, elec.InvoiceItemQuantity.Equal(testutil.Dec("50")))
	assert.True(t, elec.InvoiceItemUnitPrice.Equal(testutil.Dec("3000")))
	assert.True(t, elec.InvoiceItemAmount.Equal(testutil.Dec("150000")))
	require.NotNil(t, elec.InvoiceItemOldIndex)
	assert.True(t, elec.InvoiceItemOldIndex.Equal(testutil.Dec("100")))

	assert.True(t, inv.InvoiceTotalAmount.Equal(testutil.Dec("3350000")), "total=%s", inv.InvoiceTotalAmount)
	assert.True(t, inv.InvoiceRemainingAmount.Equal(testutil.Dec("3350000")))
	assert.NotEmpty(t, inv.InvoiceReadings)
}

func TestGenerate_MeteredServicesAreZeroWithoutReadings(t *testing.T) {
	svc, f := newTestService(t)

	inv, err := svc.Generate(context.Background(), f.Contract.ContractID, 6, 2024)
	require.NoError(t, err)

	elec := itemByDescription(t, inv.Items, "Electricity")
	assert.True(t, elec.InvoiceItemQuantity.IsZero())
	assert.True(t, elec.InvoiceItemAmount.IsZero())
	assert.True(t, elec.InvoiceItemUnitPrice.Equal(testutil.Dec("3000")))
	assert.Nil(t, elec.InvoiceItemOldIndex)

	assert.True(t, inv.InvoiceTotalAmount.Equal(testutil.Dec("3200000")))
	assert.Empty(t, inv.InvoiceReadings)
}

func TestGenerate_FixedServiceIgnoresReading(t *testing.T) {
	svc, f := newTestService(t)

	inv, err := svc.GenerateWithReadings(context.Background(), f.Contract.ContractID, 7, 2024, []model.MeterReading{
		{ServiceTypeID: f.Internet.ServiceTypeID, OldIndex: testutil.Dec("0"), NewIndex: testutil.Dec("999")},
	})
	require.NoError(t, err)

	internet := itemByDescription(t, inv.Items, "Internet")
	assert.True(t, internet.InvoiceItemAmount.Equal(testutil.Dec("200000")))
	assert.Nil(t, internet.InvoiceItemNewIndex)
}

func TestGenerate_ReadingForUnattachedServiceIsIgnored(t *testing.T) {
	svc, f := newTestService(t)
	water := testutil.CreateServiceType(t, svc.DB, "Water", serviceTypeModel.ServiceCategoryWater, "15000")

	inv, err := svc.GenerateWithReadings(context.Background(), f.Contract.ContractID, 6, 2024, []model.MeterReading{
		{ServiceTypeID: water.ServiceTypeID, OldIndex: testutil.Dec("10"), NewIndex: testutil.Dec("20")},
	})
	require.NoError(t, err)
	assert.Len(t, inv.Items, 3)
	assert.True(t, inv.InvoiceTotalAmount.Equal(testutil.Dec("3200000")))
}

func TestGenerate_PersistedItemsSumToTotal(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	created, err := svc.GenerateWithReadings(ctx, f.Contract.ContractID, 6, 2024, []model.MeterReading{
		{ServiceTypeID: f.Electricity.ServiceTypeID, OldIndex: testutil.Dec("1200.5"), NewIndex: testutil.Dec("1310.25")},
	})
	require.NoError(t, err)

	loaded, err := svc.GetByID(ctx, created.InvoiceID)
	require.NoError(t, err)

	sum := lo.Reduce(loaded.Items, func(acc decimal.Decimal, it dto.InvoiceItemResponse, _ int) decimal.Decimal {
		return acc.Add(it.InvoiceItemAmount)
	}, decimal.Zero)
	assert.True(t, sum.Equal(loaded.InvoiceTotalAmount), "sum=%s total=%s", sum, loaded.InvoiceTotalAmount)
	assert.Equal(t, model.ItemTypeRent, loaded.Items[0].InvoiceItemType)
}

func TestGenerate_DuplicatePeriodFails(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	_, err := svc.Generate(ctx, f.Contract.ContractID, 6, 2024)
	require.NoError(t, err)

	_, err = svc.Generate(ctx, f.Contract.ContractID, 6, 2024)
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Invoice already exists for this period")

	_, err = svc.GenerateWithReadings(ctx, f.Contract.ContractID, 6, 2024, nil)
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Invoice already exists for this period")

	var count int64
	require.NoError(t, svc.DB.Model(&model.InvoiceModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGenerate_NonActiveContractFails(t *testing.T) {
	for _, st := range []contractModel.ContractStatus{
		contractModel.ContractStatusDraft,
		contractModel.ContractStatusTerminated,
		contractModel.ContractStatusExpired,
	} {
		t.Run(string(st), func(t *testing.T) {
			db := testutil.NewTestDB(t)
			f := testutil.SeedRental(t, db, st)
			svc := NewInvoiceService(db)

			_, err := svc.Generate(context.Background(), f.Contract.ContractID, 6, 2024)
			testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Cannot generate invoice for non-active contract")
		})
	}
}

func TestGenerate_MissingContract(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Generate(context.Background(), uuid.New(), 6, 2024)
	testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Contract not found")
}

func TestGenerate_InvalidPeriod(t *testing.T) {
	svc, f := newTestService(t)
	_, err := svc.Generate(context.Background(), f.Contract.ContractID, 13, 2024)
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Month must be between 1 and 12")

	_, err = svc.Generate(context.Background(), f.Contract.ContractID, 1, 1999)
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "")
}

func TestGenerateWithReadings_NewIndexBelowOldRollsBack(t *testing.T) {
	svc, f := newTestService(t)

	_, err := svc.GenerateWithReadings(context.Background(), f.Contract.ContractID, 6, 2024, []model.MeterReading{
		{ServiceTypeID: f.Electricity.ServiceTypeID, OldIndex: testutil.Dec("150"), NewIndex: testutil.Dec("100")},
	})
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest,
		"New index must be greater than or equal to old index for service type Electricity")

	var invoices, items int64
	require.NoError(t, svc.DB.Model(&model.InvoiceModel{}).Count(&invoices).Error)
	require.NoError(t, svc.DB.Model(&model.InvoiceItemModel{}).Count(&items).Error)
	assert.Zero(t, invoices)
	assert.Zero(t, items)
}

func TestGenerate_DueDateIsLastDayOfMonth(t *testing.T) {
	svc, f := newTestService(t)

	inv, err := svc.Generate(context.Background(), f.Contract.ContractID, 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", inv.InvoiceDueDate.String())
	assert.Equal(t, "INV-CT-001-02-2024", inv.InvoiceCode)
}

func TestComputeStatus(t *testing.T) {
	due := dbtime.NewDate(2024, time.June, 30)
	before := dbtime.NewDate(2024, time.June, 15)
	onDue := dbtime.NewDate(2024, time.June, 30)
	after := dbtime.NewDate(2024, time.July, 1)
	total := testutil.Dec("1000")

	cases := []struct {
		name  string
		paid  string
		today dbtime.Date
		want  model.InvoiceStatus
	}{
		{"nothing paid", "0", before, model.InvoiceStatusUnpaid},
		{"partial", "400", before, model.InvoiceStatusPartiallyPaid},
		{"exact", "1000", before, model.InvoiceStatusPaid},
		{"due day is not overdue", "0", onDue, model.InvoiceStatusUnpaid},
		{"unpaid past due", "0", after, model.InvoiceStatusOverdue},
		{"partial past due", "999.99", after, model.InvoiceStatusOverdue},
		{"paid past due", "1000", after, model.InvoiceStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeStatus(total, testutil.Dec(tc.paid), due, tc.today))
		})
	}
}

func TestUpdateStatus_IdempotentAndOverdue(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	inv, err := svc.Generate(ctx, f.Contract.ContractID, 6, 2024)
	require.NoError(t, err)

	require.NoError(t, svc.DB.Create(&paymentModel.PaymentModel{
		PaymentInvoiceID:  inv.InvoiceID,
		PaymentPaidAmount: testutil.Dec("1000000"),
		PaymentDate:       time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC),
		PaymentMethod:     paymentModel.PaymentMethodCash,
	}).Error)

	first, err := svc.UpdateStatus(ctx, nil, inv.InvoiceID)
	require.NoError(t, err)
	second, err := svc.UpdateStatus(ctx, nil, inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusPartiallyPaid, first)
	assert.Equal(t, first, second)

	// lewat jatuh tempo
	svc.Now = testutil.FixedClock(2024, time.July, 2)
	out, err := svc.RecomputeStatus(ctx, inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusOverdue, out.InvoiceStatus)
	assert.True(t, out.InvoicePaidAmount.Equal(testutil.Dec("1000000")))
	assert.True(t, out.InvoiceRemainingAmount.Equal(testutil.Dec("2200000")))
}

func TestUpdateStatus_MissingInvoice(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.UpdateStatus(context.Background(), nil, uuid.New())
	testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Invoice not found")
}

func TestListAndDetail(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	for _, m := range []int{4, 5, 6} {
		_, err := svc.Generate(ctx, f.Contract.ContractID, m, 2024)
		require.NoError(t, err)
	}

	byContract, err := svc.ListByContract(ctx, f.Contract.ContractID)
	require.NoError(t, err)
	require.Len(t, byContract, 3)
	assert.Equal(t, 6, byContract[0].InvoicePeriodMonth)

	month := 5
	st := model.InvoiceStatusUnpaid
	rows, total, err := svc.List(ctx, dto.ListInvoiceQuery{PeriodMonth: &month, Status: &st}, paramsAll())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "INV-CT-001-05-2024", rows[0].InvoiceCode)

	detail, err := svc.GetDetail(ctx, rows[0].InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, "Sunshine Boarding House", detail.BoardingHouseName)
	assert.Equal(t, "Nguyen Van A", detail.MainTenantName)
	assert.Empty(t, detail.Payments)

	_, err = svc.GetByID(ctx, uuid.Nil)
	testutil.AssertFiberError(t, err, fiber.StatusNotFound, "")
}

func TestGenerateWithReadings_FractionalReading(t *testing.T) {
	svc, f := newTestService(t)

	inv, err := svc.GenerateWithReadings(context.Background(), f.Contract.ContractID, 6, 2024, []model.MeterReading{
		{ServiceTypeID: f.Electricity.ServiceTypeID, OldIndex: testutil.Dec("10.25"), NewIndex: testutil.Dec("10.583")},
	})
	require.NoError(t, err)

	elec := itemByDescription(t, inv.Items, "Electricity")
	assert.True(t, elec.InvoiceItemQuantity.Equal(testutil.Dec("0.333")), elec.InvoiceItemQuantity.String())
	assert.True(t, elec.InvoiceItemAmount.Equal(testutil.Dec("999")), elec.InvoiceItemAmount.String())
	assert.True(t, inv.InvoiceTotalAmount.Equal(testutil.Dec("3200999")), inv.InvoiceTotalAmount.String())
}

func TestGenerateWithReadings_IndexBeyondThreeDecimalsRejected(t *testing.T) {
	svc, f := newTestService(t)

	_, err := svc.GenerateWithReadings(context.Background(), f.Contract.ContractID, 6, 2024, []model.MeterReading{
		{ServiceTypeID: f.Electricity.ServiceTypeID, OldIndex: testutil.Dec("0"), NewIndex: testutil.Dec("0.0005")},
	})
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Meter index must have at most 3 decimal places")

	var count int64
	require.NoError(t, svc.DB.Model(&model.InvoiceModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

// amount dibulatkan per item ke 2 desimal; total = Σ amount yang dibulatkan
func TestBuildItems_RoundsAmountsToCents(t *testing.T) {
	elec := uuid.New()
	water := uuid.New()
	gas := uuid.New()
	lines := []roomServiceLine{
		{ServiceTypeID: elec, ServiceTypeName: "Electricity", Category: serviceTypeModel.ServiceCategoryElectricity, DefaultPrice: testutil.Dec("1234.57")},
		{ServiceTypeID: water, ServiceTypeName: "Water", Category: serviceTypeModel.ServiceCategoryWater, DefaultPrice: testutil.Dec("1")},
		{ServiceTypeID: gas, ServiceTypeName: "Gas", Category: serviceTypeModel.ServiceCategoryOther, DefaultPrice: testutil.Dec("1")},
	}
	readings := map[uuid.UUID]model.MeterReading{
		elec:  {ServiceTypeID: elec, OldIndex: testutil.Dec("0"), NewIndex: testutil.Dec("0.333")},
		water: {ServiceTypeID: water, OldIndex: testutil.Dec("0"), NewIndex: testutil.Dec("0.005")},
		gas:   {ServiceTypeID: gas, OldIndex: testutil.Dec("1"), NewIndex: testutil.Dec("1.005")},
	}

	items, err := buildItems(testutil.Dec("3000000"), lines, readings)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.True(t, items[1].InvoiceItemAmount.Equal(testutil.Dec("411.11")), items[1].InvoiceItemAmount.String())
	assert.True(t, items[2].InvoiceItemAmount.Equal(testutil.Dec("0.01")), items[2].InvoiceItemAmount.String())
	assert.True(t, items[3].InvoiceItemAmount.Equal(testutil.Dec("0.01")), items[3].InvoiceItemAmount.String())
	for _, it := range items {
		assert.True(t, model.FitsScale(it.InvoiceItemAmount, model.AmountScale), it.InvoiceItemAmount.String())
	}
	assert.True(t, sumItems(items).Equal(testutil.Dec("3000411.13")), sumItems(items).String())
}

// baris lain yang sudah memegang kode invoice yang sama: cek periode lolos,
// unique index yang menolak, dan hasilnya tetap 400 (bukan 500)
func TestGenerate_UniqueIndexClashIsBadRequest(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	clash := model.InvoiceModel{
		InvoiceCode:        InvoiceCode(f.Contract.ContractCode, 6, 2024),
		InvoiceContractID:  f.Contract.ContractID,
		InvoiceRoomID:      f.Room.RoomID,
		InvoicePeriodMonth: 7,
		InvoicePeriodYear:  2024,
		InvoiceTotalAmount: decimal.Zero,
		InvoiceDueDate:     dbtime.LastDayOfMonth(2024, 7),
		InvoiceCreatedDate: dbtime.NewDate(2024, time.June, 1),
	}
	require.NoError(t, svc.DB.Create(&clash).Error)

	_, err := svc.Generate(ctx, f.Contract.ContractID, 6, 2024)
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Invoice already exists for this period")

	var items int64
	require.NoError(t, svc.DB.Model(&model.InvoiceItemModel{}).Count(&items).Error)
	assert.Zero(t, items)
}
