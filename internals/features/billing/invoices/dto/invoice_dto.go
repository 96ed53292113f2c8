package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"kostku_backend/internals/features/billing/invoices/model"
	"kostku_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST
========================================================= */

// request body generate pakai camelCase (kontrak API publik); response tetap snake_case
type GenerateInvoiceRequest struct {
	ContractID uuid.UUID `json:"contractId" validate:"required"`
	Month      int       `json:"month" validate:"required,min=1,max=12"`
	Year       int       `json:"year" validate:"required,min=2000,max=9999"`
}

type MeterReadingRequest struct {
	ServiceTypeID uuid.UUID       `json:"serviceTypeId" validate:"required"`
	OldIndex      decimal.Decimal `json:"oldIndex" validate:"gte=0"`
	NewIndex      decimal.Decimal `json:"newIndex" validate:"gte=0"`
}

type GenerateInvoiceWithReadingsRequest struct {
	ContractID uuid.UUID             `json:"contractId" validate:"required"`
	Month      int                   `json:"month" validate:"required,min=1,max=12"`
	Year       int                   `json:"year" validate:"required,min=2000,max=9999"`
	Readings   []MeterReadingRequest `json:"readings" validate:"dive"`
}

func (r GenerateInvoiceWithReadingsRequest) ToReadings() []model.MeterReading {
	return lo.Map(r.Readings, func(in MeterReadingRequest, _ int) model.MeterReading {
		return model.MeterReading{
			ServiceTypeID: in.ServiceTypeID,
			OldIndex:      in.OldIndex,
			NewIndex:      in.NewIndex,
		}
	})
}

// ListInvoiceQuery: filter opsional GET /invoices
type ListInvoiceQuery struct {
	Status      *model.InvoiceStatus
	ContractID  *uuid.UUID
	RoomID      *uuid.UUID
	PeriodMonth *int
	PeriodYear  *int
}

/* =========================================================
   RESPONSE
========================================================= */

type InvoiceItemResponse struct {
	InvoiceItemID            uuid.UUID        `json:"invoice_item_id"`
	InvoiceItemDescription   string           `json:"invoice_item_description"`
	InvoiceItemType          model.ItemType   `json:"invoice_item_type"`
	InvoiceItemServiceTypeID *uuid.UUID       `json:"invoice_item_service_type_id,omitempty"`
	InvoiceItemQuantity      decimal.Decimal  `json:"invoice_item_quantity"`
	InvoiceItemUnitPrice     decimal.Decimal  `json:"invoice_item_unit_price"`
	InvoiceItemAmount        decimal.Decimal  `json:"invoice_item_amount"`
	InvoiceItemOldIndex      *decimal.Decimal `json:"invoice_item_old_index,omitempty"`
	InvoiceItemNewIndex      *decimal.Decimal `json:"invoice_item_new_index,omitempty"`
}

type InvoiceResponse struct {
	InvoiceID         uuid.UUID `json:"invoice_id"`
	InvoiceCode       string    `json:"invoice_code"`
	InvoiceContractID uuid.UUID `json:"invoice_contract_id"`
	ContractCode      string    `json:"contract_code"`
	InvoiceRoomID     uuid.UUID `json:"invoice_room_id"`
	RoomCode          string    `json:"room_code"`

	InvoicePeriodMonth int `json:"invoice_period_month"`
	InvoicePeriodYear  int `json:"invoice_period_year"`

	InvoiceTotalAmount     decimal.Decimal     `json:"invoice_total_amount"`
	InvoicePaidAmount      decimal.Decimal     `json:"invoice_paid_amount"`
	InvoiceRemainingAmount decimal.Decimal     `json:"invoice_remaining_amount"`
	InvoiceStatus          model.InvoiceStatus `json:"invoice_status"`

	InvoiceDueDate     dbtime.Date    `json:"invoice_due_date"`
	InvoiceCreatedDate dbtime.Date    `json:"invoice_created_date"`
	InvoiceReadings    datatypes.JSON `json:"invoice_readings,omitempty"`

	Items []InvoiceItemResponse `json:"invoice_items"`
}

type InvoicePaymentResponse struct {
	PaymentID              uuid.UUID       `json:"payment_id"`
	PaymentPaidAmount      decimal.Decimal `json:"payment_paid_amount"`
	PaymentDate            time.Time       `json:"payment_date"`
	PaymentMethod          string          `json:"payment_method"`
	PaymentNote            *string         `json:"payment_note,omitempty"`
	PaymentTransactionCode *string         `json:"payment_transaction_code,omitempty"`
}

type InvoiceDetailResponse struct {
	InvoiceResponse

	BoardingHouseName string                   `json:"boarding_house_name"`
	MainTenantName    string                   `json:"main_tenant_name"`
	MainTenantPhone   *string                  `json:"main_tenant_phone,omitempty"`
	Payments          []InvoicePaymentResponse `json:"payments"`
}

/* =========================================================
   MAPPERS
========================================================= */

func ToInvoiceItemResponse(it model.InvoiceItemModel) InvoiceItemResponse {
	return InvoiceItemResponse{
		InvoiceItemID:            it.InvoiceItemID,
		InvoiceItemDescription:   it.InvoiceItemDescription,
		InvoiceItemType:          it.InvoiceItemType,
		InvoiceItemServiceTypeID: it.InvoiceItemServiceTypeID,
		InvoiceItemQuantity:      it.InvoiceItemQuantity,
		InvoiceItemUnitPrice:     it.InvoiceItemUnitPrice,
		InvoiceItemAmount:        it.InvoiceItemAmount,
		InvoiceItemOldIndex:      it.InvoiceItemOldIndex,
		InvoiceItemNewIndex:      it.InvoiceItemNewIndex,
	}
}

// ToInvoiceResponse: contractCode/roomCode/paid diisi pemanggil (lookup terpisah)
func ToInvoiceResponse(
	inv model.InvoiceModel,
	items []model.InvoiceItemModel,
	contractCode, roomCode string,
	paid decimal.Decimal,
) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:              inv.InvoiceID,
		InvoiceCode:            inv.InvoiceCode,
		InvoiceContractID:      inv.InvoiceContractID,
		ContractCode:           contractCode,
		InvoiceRoomID:          inv.InvoiceRoomID,
		RoomCode:               roomCode,
		InvoicePeriodMonth:     inv.InvoicePeriodMonth,
		InvoicePeriodYear:      inv.InvoicePeriodYear,
		InvoiceTotalAmount:     inv.InvoiceTotalAmount,
		InvoicePaidAmount:      paid,
		InvoiceRemainingAmount: inv.InvoiceTotalAmount.Sub(paid),
		InvoiceStatus:          inv.InvoiceStatus,
		InvoiceDueDate:         inv.InvoiceDueDate,
		InvoiceCreatedDate:     inv.InvoiceCreatedDate,
		InvoiceReadings:        inv.InvoiceReadings,
		Items:                  lo.Map(items, func(it model.InvoiceItemModel, _ int) InvoiceItemResponse { return ToInvoiceItemResponse(it) }),
	}
}
