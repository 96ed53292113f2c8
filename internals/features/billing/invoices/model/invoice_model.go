package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kostku_backend/internals/helpers/dbtime"
)

// =========================================================
// ENUMS
// =========================================================

type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "UNPAID"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusOverdue       InvoiceStatus = "OVERDUE"
)

func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartiallyPaid, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

type ItemType string

const (
	ItemTypeRent    ItemType = "RENT"
	ItemTypeService ItemType = "SERVICE"
)

// Skala kolom: nominal decimal(18,2), qty & index meteran decimal(18,3).
const (
	AmountScale int32 = 2
	IndexScale  int32 = 3
)

// FitsScale: true kalau d tidak punya digit di belakang koma melebihi scale.
func FitsScale(d decimal.Decimal, scale int32) bool {
	return d.Equal(d.Round(scale))
}

// =========================================================
// MODEL: invoices
// =========================================================

type InvoiceModel struct {
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;primaryKey" json:"invoice_id"`

	InvoiceCode       string    `gorm:"column:invoice_code;type:varchar(80);not null;uniqueIndex:uq_invoices_code" json:"invoice_code"`
	InvoiceContractID uuid.UUID `gorm:"column:invoice_contract_id;type:uuid;not null;uniqueIndex:uq_invoices_period,priority:1" json:"invoice_contract_id"`
	// denormalisasi dari contract saat invoice dibuat
	InvoiceRoomID uuid.UUID `gorm:"column:invoice_room_id;type:uuid;not null;index:ix_invoices_room" json:"invoice_room_id"`

	InvoicePeriodMonth int `gorm:"column:invoice_period_month;not null;uniqueIndex:uq_invoices_period,priority:2" json:"invoice_period_month"`
	InvoicePeriodYear  int `gorm:"column:invoice_period_year;not null;uniqueIndex:uq_invoices_period,priority:3" json:"invoice_period_year"`

	InvoiceTotalAmount decimal.Decimal `gorm:"column:invoice_total_amount;type:decimal(18,2);not null" json:"invoice_total_amount"`
	InvoiceStatus      InvoiceStatus   `gorm:"column:invoice_status;type:varchar(20);not null;index:ix_invoices_status" json:"invoice_status"`

	InvoiceDueDate     dbtime.Date `gorm:"column:invoice_due_date;not null" json:"invoice_due_date"`
	InvoiceCreatedDate dbtime.Date `gorm:"column:invoice_created_date;not null" json:"invoice_created_date"`

	// snapshot meteran yang dikirim saat generate (null untuk jalur tanpa readings)
	InvoiceReadings datatypes.JSON `gorm:"column:invoice_readings" json:"invoice_readings,omitempty"`

	InvoiceCreatedAt time.Time `gorm:"column:invoice_created_at;not null" json:"invoice_created_at"`
	InvoiceUpdatedAt time.Time `gorm:"column:invoice_updated_at;not null" json:"invoice_updated_at"`
}

func (InvoiceModel) TableName() string {
	return "invoices"
}

func (m *InvoiceModel) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceID == uuid.Nil {
		m.InvoiceID = uuid.New()
	}
	if m.InvoiceStatus == "" {
		m.InvoiceStatus = InvoiceStatusUnpaid
	}
	now := time.Now()
	if m.InvoiceCreatedAt.IsZero() {
		m.InvoiceCreatedAt = now
	}
	m.InvoiceUpdatedAt = now
	return nil
}

func (m *InvoiceModel) BeforeUpdate(tx *gorm.DB) error {
	m.InvoiceUpdatedAt = time.Now()
	return nil
}

// MeterReading: satu baris snapshot meteran di invoice_readings
type MeterReading struct {
	ServiceTypeID uuid.UUID       `json:"service_type_id"`
	OldIndex      decimal.Decimal `json:"old_index"`
	NewIndex      decimal.Decimal `json:"new_index"`
}

// =========================================================
// MODEL: invoice_items
// =========================================================

type InvoiceItemModel struct {
	InvoiceItemID        uuid.UUID `gorm:"column:invoice_item_id;type:uuid;primaryKey" json:"invoice_item_id"`
	InvoiceItemInvoiceID uuid.UUID `gorm:"column:invoice_item_invoice_id;type:uuid;not null;index:ix_invoice_items_invoice" json:"invoice_item_invoice_id"`

	InvoiceItemPosition      int        `gorm:"column:invoice_item_position;not null" json:"invoice_item_position"`
	InvoiceItemDescription   string     `gorm:"column:invoice_item_description;type:varchar(200);not null" json:"invoice_item_description"`
	InvoiceItemType          ItemType   `gorm:"column:invoice_item_type;type:varchar(20);not null" json:"invoice_item_type"`
	InvoiceItemServiceTypeID *uuid.UUID `gorm:"column:invoice_item_service_type_id;type:uuid" json:"invoice_item_service_type_id,omitempty"`

	InvoiceItemQuantity  decimal.Decimal `gorm:"column:invoice_item_quantity;type:decimal(18,3);not null" json:"invoice_item_quantity"`
	InvoiceItemUnitPrice decimal.Decimal `gorm:"column:invoice_item_unit_price;type:decimal(18,2);not null" json:"invoice_item_unit_price"`
	InvoiceItemAmount    decimal.Decimal `gorm:"column:invoice_item_amount;type:decimal(18,2);not null" json:"invoice_item_amount"`

	InvoiceItemOldIndex *decimal.Decimal `gorm:"column:invoice_item_old_index;type:decimal(18,3)" json:"invoice_item_old_index,omitempty"`
	InvoiceItemNewIndex *decimal.Decimal `gorm:"column:invoice_item_new_index;type:decimal(18,3)" json:"invoice_item_new_index,omitempty"`
}

func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

func (m *InvoiceItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceItemID == uuid.Nil {
		m.InvoiceItemID = uuid.New()
	}
	return nil
}
