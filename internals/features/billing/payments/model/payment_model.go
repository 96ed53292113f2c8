package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodMomo         PaymentMethod = "MOMO"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodMomo, PaymentMethodOther:
		return true
	}
	return false
}

// PaymentModel: pembayaran append-only terhadap satu invoice.
type PaymentModel struct {
	PaymentID        uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentInvoiceID uuid.UUID `gorm:"column:payment_invoice_id;type:uuid;not null;index:ix_payments_invoice" json:"payment_invoice_id"`

	PaymentPaidAmount decimal.Decimal `gorm:"column:payment_paid_amount;type:decimal(18,2);not null" json:"payment_paid_amount"`
	PaymentDate       time.Time       `gorm:"column:payment_date;not null;index:ix_payments_date" json:"payment_date"`
	PaymentMethod     PaymentMethod   `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`

	PaymentNote            *string `gorm:"column:payment_note;type:text" json:"payment_note,omitempty"`
	PaymentTransactionCode *string `gorm:"column:payment_transaction_code;type:varchar(100)" json:"payment_transaction_code,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;not null" json:"payment_created_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	if m.PaymentCreatedAt.IsZero() {
		m.PaymentCreatedAt = time.Now()
	}
	return nil
}
