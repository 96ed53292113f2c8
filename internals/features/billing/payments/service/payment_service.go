package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	invoiceModel "kostku_backend/internals/features/billing/invoices/model"
	invoiceService "kostku_backend/internals/features/billing/invoices/service"
	"kostku_backend/internals/features/billing/payments/dto"
	"kostku_backend/internals/features/billing/payments/model"
	helper "kostku_backend/internals/helpers"
)

// PaymentService: ledger pembayaran. Setiap create/delete memicu hitung ulang
// status invoice di transaksi yang sama.
type PaymentService struct {
	DB       *gorm.DB
	Now      func() time.Time
	Invoices *invoiceService.InvoiceService
}

func NewPaymentService(db *gorm.DB, invoices *invoiceService.InvoiceService) *PaymentService {
	return &PaymentService{DB: db, Now: time.Now, Invoices: invoices}
}

func (s *PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================================================
   RECORD
========================================================= */

func (s *PaymentService) Record(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !in.PaidAmount.IsPositive() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Paid amount must be greater than zero")
	}
	if !invoiceModel.FitsScale(in.PaidAmount, invoiceModel.AmountScale) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Paid amount must have at most 2 decimal places")
	}
	if !model.ValidPaymentMethod(in.Method) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid payment method")
	}

	var out dto.PaymentResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 🔒 lock invoice dulu: cek overpayment & recompute jadi serial per invoice
		if err := invoiceService.LockInvoice(tx, in.InvoiceID); err != nil {
			return err
		}
		var inv invoiceModel.InvoiceModel
		if err := tx.Where("invoice_id = ?", in.InvoiceID).First(&inv).Error; err != nil {
			return err
		}

		paid, err := invoiceService.SumPaid(tx, inv.InvoiceID)
		if err != nil {
			return err
		}
		if paid.Add(in.PaidAmount).GreaterThan(inv.InvoiceTotalAmount) {
			return fiber.NewError(fiber.StatusBadRequest, "Payment amount exceeds invoice total")
		}

		pay := model.PaymentModel{
			PaymentInvoiceID:       inv.InvoiceID,
			PaymentPaidAmount:      in.PaidAmount,
			PaymentDate:            lo.FromPtrOr(in.PaymentDate, s.now()),
			PaymentMethod:          in.Method,
			PaymentNote:            trimPtr(in.Note),
			PaymentTransactionCode: trimPtr(in.TransactionCode),
		}
		if err := tx.Create(&pay).Error; err != nil {
			return err
		}

		st, err := s.Invoices.UpdateStatus(ctx, tx, inv.InvoiceID)
		if err != nil {
			return err
		}
		log.Printf("[INFO] payment %s recorded on %s (status=%s)", pay.PaymentID, inv.InvoiceCode, st)

		out = dto.ToPaymentResponse(pay, inv.InvoiceCode)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================================================
   DELETE
========================================================= */

func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pay model.PaymentModel
		if err := tx.Where("payment_id = ?", id).First(&pay).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Payment not found with id: "+id.String())
			}
			return err
		}

		if err := invoiceService.LockInvoice(tx, pay.PaymentInvoiceID); err != nil {
			return err
		}
		if err := tx.Where("payment_id = ?", id).Delete(&model.PaymentModel{}).Error; err != nil {
			return err
		}

		st, err := s.Invoices.UpdateStatus(ctx, tx, pay.PaymentInvoiceID)
		if err != nil {
			return err
		}
		log.Printf("[INFO] payment %s deleted (invoice status=%s)", id, st)
		return nil
	})
}

/* =========================================================
   READ
========================================================= */

var paymentSortColumns = map[string]string{
	"payment_date": "payment_date",
	"created_at":   "payment_created_at",
	"amount":       "payment_paid_amount",
}

func (s *PaymentService) List(ctx context.Context, q dto.ListPaymentQuery, p helper.Params) ([]dto.PaymentResponse, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.PaymentModel{})
	if q.InvoiceID != nil {
		db = db.Where("payment_invoice_id = ?", *q.InvoiceID)
	}
	if q.Method != nil {
		db = db.Where("payment_method = ?", *q.Method)
	}
	if q.From != nil {
		db = db.Where("payment_date >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("payment_date <= ?", *q.To)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.PaymentModel
	if err := db.Order(p.OrderClause(paymentSortColumns, "payment_date")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out, err := s.toResponses(s.DB.WithContext(ctx), rows)
	return out, total, err
}

func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error) {
	db := s.DB.WithContext(ctx)
	var pay model.PaymentModel
	if err := db.Where("payment_id = ?", id).First(&pay).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Payment not found with id: "+id.String())
		}
		return nil, err
	}
	out, err := s.toResponses(db, []model.PaymentModel{pay})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *PaymentService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]dto.PaymentResponse, error) {
	db := s.DB.WithContext(ctx)
	var rows []model.PaymentModel
	if err := db.Where("payment_invoice_id = ?", invoiceID).
		Order("payment_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return s.toResponses(db, rows)
}

func (s *PaymentService) toResponses(db *gorm.DB, rows []model.PaymentModel) ([]dto.PaymentResponse, error) {
	if len(rows) == 0 {
		return []dto.PaymentResponse{}, nil
	}
	invoiceIDs := lo.Uniq(lo.Map(rows, func(p model.PaymentModel, _ int) uuid.UUID { return p.PaymentInvoiceID }))

	var invs []invoiceModel.InvoiceModel
	if err := db.Select("invoice_id", "invoice_code").
		Where("invoice_id IN ?", invoiceIDs).
		Find(&invs).Error; err != nil {
		return nil, err
	}
	codes := lo.SliceToMap(invs, func(i invoiceModel.InvoiceModel) (uuid.UUID, string) {
		return i.InvoiceID, i.InvoiceCode
	})

	return lo.Map(rows, func(p model.PaymentModel, _ int) dto.PaymentResponse {
		return dto.ToPaymentResponse(p, codes[p.PaymentInvoiceID])
	}), nil
}
