package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kostku_backend/internals/features/billing/payments/model"
)

// CreatePaymentRequest: body POST /payments (camelCase)
type CreatePaymentRequest struct {
	InvoiceID       uuid.UUID           `json:"invoiceId" validate:"required"`
	PaidAmount      decimal.Decimal     `json:"paidAmount" validate:"gt=0"`
	PaymentDate     *time.Time          `json:"paymentDate,omitempty"`
	Method          model.PaymentMethod `json:"method" validate:"required,oneof=CASH BANK_TRANSFER MOMO OTHER"`
	Note            *string             `json:"note,omitempty" validate:"omitempty,max=1000"`
	TransactionCode *string             `json:"transactionCode,omitempty" validate:"omitempty,max=100"`
}

type PaymentResponse struct {
	PaymentID              uuid.UUID           `json:"payment_id"`
	PaymentInvoiceID       uuid.UUID           `json:"payment_invoice_id"`
	InvoiceCode            string              `json:"invoice_code"`
	PaymentPaidAmount      decimal.Decimal     `json:"payment_paid_amount"`
	PaymentDate            time.Time           `json:"payment_date"`
	PaymentMethod          model.PaymentMethod `json:"payment_method"`
	PaymentNote            *string             `json:"payment_note,omitempty"`
	PaymentTransactionCode *string             `json:"payment_transaction_code,omitempty"`
	PaymentCreatedAt       time.Time           `json:"payment_created_at"`
}

func ToPaymentResponse(m model.PaymentModel, invoiceCode string) PaymentResponse {
	return PaymentResponse{
		PaymentID:              m.PaymentID,
		PaymentInvoiceID:       m.PaymentInvoiceID,
		InvoiceCode:            invoiceCode,
		PaymentPaidAmount:      m.PaymentPaidAmount,
		PaymentDate:            m.PaymentDate,
		PaymentMethod:          m.PaymentMethod,
		PaymentNote:            m.PaymentNote,
		PaymentTransactionCode: m.PaymentTransactionCode,
		PaymentCreatedAt:       m.PaymentCreatedAt,
	}
}

// ListPaymentQuery: filter opsional GET /payments
type ListPaymentQuery struct {
	InvoiceID *uuid.UUID
	Method    *model.PaymentMethod
	From      *time.Time
	To        *time.Time
}
