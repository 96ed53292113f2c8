package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invoiceDTO "kostku_backend/internals/features/billing/invoices/dto"
	invoiceModel "kostku_backend/internals/features/billing/invoices/model"
	invoiceService "kostku_backend/internals/features/billing/invoices/service"
	"kostku_backend/internals/features/billing/payments/dto"
	"kostku_backend/internals/features/billing/payments/model"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	helper "kostku_backend/internals/helpers"
	"kostku_backend/internals/testutil"
)

type ledgerEnv struct {
	invoices *invoiceService.InvoiceService
	payments *PaymentService
	invoice  *invoiceDTO.InvoiceResponse
}

// newLedger: invoice Juni 2024 senilai 3.350.000 (sewa + internet + listrik 50 kWh)
func newLedger(t *testing.T) ledgerEnv {
	db := testutil.NewTestDB(t)
	f := testutil.SeedRental(t, db, contractModel.ContractStatusActive)

	inv := invoiceService.NewInvoiceService(db)
	inv.Now = testutil.FixedClock(2024, time.June, 15)
	pay := NewPaymentService(db, inv)
	pay.Now = inv.Now

	created, err := inv.GenerateWithReadings(context.Background(), f.Contract.ContractID, 6, 2024, []invoiceModel.MeterReading{
		{ServiceTypeID: f.Electricity.ServiceTypeID, OldIndex: testutil.Dec("100"), NewIndex: testutil.Dec("150")},
	})
	require.NoError(t, err)
	require.True(t, created.InvoiceTotalAmount.Equal(testutil.Dec("3350000")))

	return ledgerEnv{invoices: inv, payments: pay, invoice: created}
}

func (e ledgerEnv) pay(t *testing.T, amount string) (*dto.PaymentResponse, error) {
	t.Helper()
	return e.payments.Record(context.Background(), dto.CreatePaymentRequest{
		InvoiceID:  e.invoice.InvoiceID,
		PaidAmount: testutil.Dec(amount),
		Method:     model.PaymentMethodBankTransfer,
	})
}

func (e ledgerEnv) reload(t *testing.T) *invoiceDTO.InvoiceResponse {
	t.Helper()
	out, err := e.invoices.GetByID(context.Background(), e.invoice.InvoiceID)
	require.NoError(t, err)
	return out
}

func TestRecord_FullPaymentMarksPaidAndDeleteReverts(t *testing.T) {
	env := newLedger(t)

	p, err := env.pay(t, "3350000")
	require.NoError(t, err)
	assert.Equal(t, env.invoice.InvoiceCode, p.InvoiceCode)
	assert.Equal(t, time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), p.PaymentDate)

	inv := env.reload(t)
	assert.Equal(t, invoiceModel.InvoiceStatusPaid, inv.InvoiceStatus)
	assert.True(t, inv.InvoiceRemainingAmount.IsZero())

	require.NoError(t, env.payments.Delete(context.Background(), p.PaymentID))
	inv = env.reload(t)
	assert.Equal(t, invoiceModel.InvoiceStatusUnpaid, inv.InvoiceStatus)
	assert.True(t, inv.InvoicePaidAmount.IsZero())
}

func TestRecord_PartialThenComplete(t *testing.T) {
	env := newLedger(t)

	_, err := env.pay(t, "1000000")
	require.NoError(t, err)
	assert.Equal(t, invoiceModel.InvoiceStatusPartiallyPaid, env.reload(t).InvoiceStatus)

	_, err = env.pay(t, "2350000")
	require.NoError(t, err)
	inv := env.reload(t)
	assert.Equal(t, invoiceModel.InvoiceStatusPaid, inv.InvoiceStatus)
	assert.True(t, inv.InvoicePaidAmount.Equal(testutil.Dec("3350000")))
}

func TestRecord_OverpaymentRejectedAndLedgerUnchanged(t *testing.T) {
	env := newLedger(t)

	_, err := env.pay(t, "3000000")
	require.NoError(t, err)

	_, err = env.pay(t, "350000.01")
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Payment amount exceeds invoice total")

	inv := env.reload(t)
	assert.True(t, inv.InvoicePaidAmount.Equal(testutil.Dec("3000000")))
	assert.Equal(t, invoiceModel.InvoiceStatusPartiallyPaid, inv.InvoiceStatus)

	list, err := env.payments.ListByInvoice(context.Background(), env.invoice.InvoiceID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDelete_PaidRegressesToPartiallyPaid(t *testing.T) {
	env := newLedger(t)

	_, err := env.pay(t, "3000000")
	require.NoError(t, err)
	last, err := env.pay(t, "350000")
	require.NoError(t, err)
	assert.Equal(t, invoiceModel.InvoiceStatusPaid, env.reload(t).InvoiceStatus)

	require.NoError(t, env.payments.Delete(context.Background(), last.PaymentID))
	assert.Equal(t, invoiceModel.InvoiceStatusPartiallyPaid, env.reload(t).InvoiceStatus)
}

func TestRecord_OverdueAfterDueDateButNeverWhenPaid(t *testing.T) {
	env := newLedger(t)
	late := testutil.FixedClock(2024, time.July, 10)
	env.invoices.Now = late
	env.payments.Now = late

	first, err := env.pay(t, "350000")
	require.NoError(t, err)
	assert.Equal(t, invoiceModel.InvoiceStatusOverdue, env.reload(t).InvoiceStatus)

	_, err = env.pay(t, "3000000")
	require.NoError(t, err)
	assert.Equal(t, invoiceModel.InvoiceStatusPaid, env.reload(t).InvoiceStatus)

	// hapus pembayaran → kembali kurang bayar & lewat jatuh tempo
	require.NoError(t, env.payments.Delete(context.Background(), first.PaymentID))
	assert.Equal(t, invoiceModel.InvoiceStatusOverdue, env.reload(t).InvoiceStatus)
}

func TestRecord_Errors(t *testing.T) {
	env := newLedger(t)
	ctx := context.Background()

	_, err := env.payments.Record(ctx, dto.CreatePaymentRequest{
		InvoiceID:  uuid.New(),
		PaidAmount: testutil.Dec("10"),
		Method:     model.PaymentMethodCash,
	})
	testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Invoice not found")

	_, err = env.pay(t, "0")
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Paid amount must be greater than zero")

	_, err = env.pay(t, "-5")
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Paid amount must be greater than zero")
}

func TestDelete_MissingPayment(t *testing.T) {
	env := newLedger(t)
	id := uuid.New()
	err := env.payments.Delete(context.Background(), id)
	testutil.AssertFiberError(t, err, fiber.StatusNotFound, "Payment not found with id: "+id.String())
}

func TestRecord_KeepsExplicitDateAndOptionalFields(t *testing.T) {
	env := newLedger(t)
	when := time.Date(2024, 6, 3, 8, 30, 0, 0, time.UTC)
	note := "  transfer BCA  "
	blank := "   "

	p, err := env.payments.Record(context.Background(), dto.CreatePaymentRequest{
		InvoiceID:       env.invoice.InvoiceID,
		PaidAmount:      testutil.Dec("500000"),
		PaymentDate:     &when,
		Method:          model.PaymentMethodMomo,
		Note:            &note,
		TransactionCode: &blank,
	})
	require.NoError(t, err)
	assert.True(t, p.PaymentDate.Equal(when))
	require.NotNil(t, p.PaymentNote)
	assert.Equal(t, "transfer BCA", *p.PaymentNote)
	assert.Nil(t, p.PaymentTransactionCode)

	got, err := env.payments.GetByID(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentMethodMomo, got.PaymentMethod)
	assert.True(t, got.PaymentPaidAmount.Equal(testutil.Dec("500000")))

	rows, total, err := env.payments.List(context.Background(), dto.ListPaymentQuery{InvoiceID: &env.invoice.InvoiceID},
		helper.Params{Page: 1, PerPage: 10, SortBy: "payment_date", SortOrder: "desc"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, rows, 1)
}

func TestRecord_AmountBeyondCentsRejected(t *testing.T) {
	env := newLedger(t)

	_, err := env.pay(t, "0.001")
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Paid amount must have at most 2 decimal places")

	_, err = env.pay(t, "100.005")
	testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Paid amount must have at most 2 decimal places")

	_, err = env.pay(t, "100.50")
	require.NoError(t, err)
	assert.True(t, env.reload(t).InvoicePaidAmount.Equal(testutil.Dec("100.5")))
}

func TestRecord_MethodRequired(t *testing.T) {
	env := newLedger(t)

	for _, m := range []model.PaymentMethod{"", "CRYPTO"} {
		_, err := env.payments.Record(context.Background(), dto.CreatePaymentRequest{
			InvoiceID:  env.invoice.InvoiceID,
			PaidAmount: testutil.Dec("1000"),
			Method:     m,
		})
		testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Invalid payment method")
	}

	list, err := env.payments.ListByInvoice(context.Background(), env.invoice.InvoiceID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// dua pembayaran paralel yang masing-masing muat tapi berdua melebihi total:
// tepat satu yang masuk
func TestRecord_ParallelPaymentsCannotOverpay(t *testing.T) {
	env := newLedger(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.payments.Record(context.Background(), dto.CreatePaymentRequest{
				InvoiceID:  env.invoice.InvoiceID,
				PaidAmount: testutil.Dec("2000000"),
				Method:     model.PaymentMethodCash,
			})
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			testutil.AssertFiberError(t, err, fiber.StatusBadRequest, "Payment amount exceeds invoice total")
		}
	}
	assert.Equal(t, 1, failed)

	inv := env.reload(t)
	assert.True(t, inv.InvoicePaidAmount.Equal(testutil.Dec("2000000")), inv.InvoicePaidAmount.String())
	assert.Equal(t, invoiceModel.InvoiceStatusPartiallyPaid, inv.InvoiceStatus)
}
