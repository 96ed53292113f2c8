package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	invoiceModel "kostku_backend/internals/features/billing/invoices/model"
	rsDTO "kostku_backend/internals/features/catalog/room_services/dto"
	"kostku_backend/internals/features/catalog/rooms/model"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	"kostku_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST
========================================================= */

// RoomRequest: create & update. Status nil → AVAILABLE saat create, tidak diubah saat update.
type RoomRequest struct {
	Code            string            `json:"code" validate:"required,max=50"`
	BoardingHouseID uuid.UUID         `json:"boarding_house_id" validate:"required"`
	Floor           *int              `json:"floor"`
	Area            *decimal.Decimal  `json:"area" validate:"omitempty,gt=0"`
	MaxOccupants    *int              `json:"max_occupants" validate:"omitempty,min=1"`
	BaseRent        decimal.Decimal   `json:"base_rent" validate:"gte=0"`
	Status          *model.RoomStatus `json:"status" validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE"`
}

func (r *RoomRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
}

type ListRoomQuery struct {
	BoardingHouseID *uuid.UUID
	Status          *model.RoomStatus
	Search          string
}

/* =========================================================
   RESPONSE
========================================================= */

type RoomResponse struct {
	RoomID              uuid.UUID        `json:"room_id"`
	RoomCode            string           `json:"room_code"`
	RoomBoardingHouseID uuid.UUID        `json:"room_boarding_house_id"`
	BoardingHouseName   string           `json:"boarding_house_name"`
	RoomFloor           *int             `json:"room_floor,omitempty"`
	RoomArea            *decimal.Decimal `json:"room_area,omitempty"`
	RoomMaxOccupants    *int             `json:"room_max_occupants,omitempty"`
	RoomBaseRent        decimal.Decimal  `json:"room_base_rent"`
	RoomStatus          model.RoomStatus `json:"room_status"`
	RoomCreatedAt       time.Time        `json:"room_created_at"`
	RoomUpdatedAt       time.Time        `json:"room_updated_at"`
}

func ToRoomResponse(m model.RoomModel, boardingHouseName string) RoomResponse {
	return RoomResponse{
		RoomID:              m.RoomID,
		RoomCode:            m.RoomCode,
		RoomBoardingHouseID: m.RoomBoardingHouseID,
		BoardingHouseName:   boardingHouseName,
		RoomFloor:           m.RoomFloor,
		RoomArea:            m.RoomArea,
		RoomMaxOccupants:    m.RoomMaxOccupants,
		RoomBaseRent:        m.RoomBaseRent,
		RoomStatus:          m.RoomStatus,
		RoomCreatedAt:       m.RoomCreatedAt,
		RoomUpdatedAt:       m.RoomUpdatedAt,
	}
}

type RoomContractBrief struct {
	ContractID           uuid.UUID                    `json:"contract_id"`
	ContractCode         string                       `json:"contract_code"`
	ContractMainTenantID uuid.UUID                    `json:"contract_main_tenant_id"`
	MainTenantName       string                       `json:"main_tenant_name"`
	ContractStartDate    dbtime.Date                  `json:"contract_start_date"`
	ContractEndDate      dbtime.Date                  `json:"contract_end_date"`
	ContractMonthlyRent  decimal.Decimal              `json:"contract_monthly_rent"`
	ContractStatus       contractModel.ContractStatus `json:"contract_status"`
}

type RoomInvoiceBrief struct {
	InvoiceID          uuid.UUID                  `json:"invoice_id"`
	InvoiceCode        string                     `json:"invoice_code"`
	InvoicePeriodMonth int                        `json:"invoice_period_month"`
	InvoicePeriodYear  int                        `json:"invoice_period_year"`
	InvoiceTotalAmount decimal.Decimal            `json:"invoice_total_amount"`
	InvoiceStatus      invoiceModel.InvoiceStatus `json:"invoice_status"`
	InvoiceDueDate     dbtime.Date                `json:"invoice_due_date"`
	InvoiceCreatedDate dbtime.Date                `json:"invoice_created_date"`
}

type RoomDetailResponse struct {
	RoomResponse

	BoardingHouseAddress string                      `json:"boarding_house_address"`
	Services             []rsDTO.RoomServiceResponse `json:"services"`
	CurrentContract      *RoomContractBrief          `json:"current_contract"`
	RecentInvoices       []RoomInvoiceBrief          `json:"recent_invoices"`
}
