package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	invoiceModel "kostku_backend/internals/features/billing/invoices/model"
	"kostku_backend/internals/features/tenancy/contracts/model"
	"kostku_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST
========================================================= */

type CreateContractRequest struct {
	Code         string      `json:"code" validate:"required,max=50"`
	RoomID       uuid.UUID   `json:"room_id" validate:"required"`
	MainTenantID uuid.UUID   `json:"main_tenant_id" validate:"required"`
	TenantIDs    []uuid.UUID `json:"tenant_ids"`

	StartDate dbtime.Date `json:"start_date"`
	EndDate   dbtime.Date `json:"end_date"`

	Deposit     decimal.Decimal `json:"deposit" validate:"gte=0"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" validate:"gt=0"`

	Status       *model.ContractStatus `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE TERMINATED EXPIRED"`
	BillingCycle *model.BillingCycle   `json:"billing_cycle" validate:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
}

func (r *CreateContractRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
}

func (r CreateContractRequest) ToModel() model.ContractModel {
	m := model.ContractModel{
		ContractCode:         r.Code,
		ContractRoomID:       r.RoomID,
		ContractMainTenantID: r.MainTenantID,
		ContractStartDate:    r.StartDate,
		ContractEndDate:      r.EndDate,
		ContractDeposit:      r.Deposit,
		ContractMonthlyRent:  r.MonthlyRent,
		ContractStatus:       lo.FromPtrOr(r.Status, model.ContractStatusDraft),
		ContractBillingCycle: lo.FromPtrOr(r.BillingCycle, model.BillingCycleMonthly),
	}
	return m
}

// UpdateContractRequest: PATCH-style, field nil = tidak diubah.
// TenantIDs != nil → daftar co-tenant diganti (slice kosong = hapus semua).
type UpdateContractRequest struct {
	Code         *string      `json:"code" validate:"omitempty,max=50"`
	RoomID       *uuid.UUID   `json:"room_id"`
	MainTenantID *uuid.UUID   `json:"main_tenant_id"`
	TenantIDs    *[]uuid.UUID `json:"tenant_ids"`

	StartDate *dbtime.Date `json:"start_date"`
	EndDate   *dbtime.Date `json:"end_date"`

	Deposit     *decimal.Decimal `json:"deposit" validate:"omitempty,gte=0"`
	MonthlyRent *decimal.Decimal `json:"monthly_rent" validate:"omitempty,gt=0"`

	Status       *model.ContractStatus `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE TERMINATED EXPIRED"`
	BillingCycle *model.BillingCycle   `json:"billing_cycle" validate:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
}

// Apply: tulis field yang dikirim ke model (tanpa cek relasi).
func (r UpdateContractRequest) Apply(m *model.ContractModel) {
	if r.Code != nil {
		m.ContractCode = strings.TrimSpace(*r.Code)
	}
	if r.RoomID != nil {
		m.ContractRoomID = *r.RoomID
	}
	if r.MainTenantID != nil {
		m.ContractMainTenantID = *r.MainTenantID
	}
	if r.StartDate != nil {
		m.ContractStartDate = *r.StartDate
	}
	if r.EndDate != nil {
		m.ContractEndDate = *r.EndDate
	}
	if r.Deposit != nil {
		m.ContractDeposit = *r.Deposit
	}
	if r.MonthlyRent != nil {
		m.ContractMonthlyRent = *r.MonthlyRent
	}
	if r.Status != nil {
		m.ContractStatus = *r.Status
	}
	if r.BillingCycle != nil {
		m.ContractBillingCycle = *r.BillingCycle
	}
}

type TerminateContractRequest struct {
	Reason          string       `json:"reason" validate:"required,max=1000"`
	TerminationDate *dbtime.Date `json:"terminationDate"`
}

// ListContractQuery: filter opsional GET /contracts
type ListContractQuery struct {
	Status   *model.ContractStatus
	RoomID   *uuid.UUID
	TenantID *uuid.UUID
	Search   string
}

/* =========================================================
   RESPONSE
========================================================= */

type ContractResponse struct {
	ContractID uuid.UUID `json:"contract_id"`

	ContractCode         string      `json:"contract_code"`
	ContractRoomID       uuid.UUID   `json:"contract_room_id"`
	RoomCode             string      `json:"room_code"`
	ContractMainTenantID uuid.UUID   `json:"contract_main_tenant_id"`
	MainTenantName       string      `json:"main_tenant_name"`
	ContractTenantIDs    []uuid.UUID `json:"contract_tenant_ids"`
	ContractStartDate    dbtime.Date `json:"contract_start_date"`
	ContractEndDate      dbtime.Date `json:"contract_end_date"`

	ContractDeposit     decimal.Decimal `json:"contract_deposit"`
	ContractMonthlyRent decimal.Decimal `json:"contract_monthly_rent"`

	ContractStatus       model.ContractStatus `json:"contract_status"`
	ContractBillingCycle model.BillingCycle   `json:"contract_billing_cycle"`

	ContractTerminationReason *string      `json:"contract_termination_reason,omitempty"`
	ContractTerminationDate   *dbtime.Date `json:"contract_termination_date,omitempty"`

	ContractCreatedAt time.Time `json:"contract_created_at"`
	ContractUpdatedAt time.Time `json:"contract_updated_at"`
}

func ToContractResponse(m model.ContractModel, roomCode, mainTenantName string, tenantIDs []uuid.UUID) ContractResponse {
	if tenantIDs == nil {
		tenantIDs = []uuid.UUID{}
	}
	return ContractResponse{
		ContractID:                m.ContractID,
		ContractCode:              m.ContractCode,
		ContractRoomID:            m.ContractRoomID,
		RoomCode:                  roomCode,
		ContractMainTenantID:      m.ContractMainTenantID,
		MainTenantName:            mainTenantName,
		ContractTenantIDs:         tenantIDs,
		ContractStartDate:         m.ContractStartDate,
		ContractEndDate:           m.ContractEndDate,
		ContractDeposit:           m.ContractDeposit,
		ContractMonthlyRent:       m.ContractMonthlyRent,
		ContractStatus:            m.ContractStatus,
		ContractBillingCycle:      m.ContractBillingCycle,
		ContractTerminationReason: m.ContractTerminationReason,
		ContractTerminationDate:   m.ContractTerminationDate,
		ContractCreatedAt:         m.ContractCreatedAt,
		ContractUpdatedAt:         m.ContractUpdatedAt,
	}
}

// ContractTenantResponse: ringkasan penyewa di detail kontrak
type ContractTenantResponse struct {
	TenantID             uuid.UUID    `json:"tenant_id"`
	TenantFullName       string       `json:"tenant_full_name"`
	TenantPhone          *string      `json:"tenant_phone,omitempty"`
	TenantEmail          *string      `json:"tenant_email,omitempty"`
	TenantIdentityNumber *string      `json:"tenant_identity_number,omitempty"`
	TenantDateOfBirth    *dbtime.Date `json:"tenant_date_of_birth,omitempty"`
	TenantStatus         string       `json:"tenant_status"`
	IsMainTenant         bool         `json:"is_main_tenant"`
}

type ContractInvoiceResponse struct {
	InvoiceID          uuid.UUID                  `json:"invoice_id"`
	InvoiceCode        string                     `json:"invoice_code"`
	InvoicePeriodMonth int                        `json:"invoice_period_month"`
	InvoicePeriodYear  int                        `json:"invoice_period_year"`
	InvoiceTotalAmount decimal.Decimal            `json:"invoice_total_amount"`
	InvoicePaidAmount  decimal.Decimal            `json:"invoice_paid_amount"`
	InvoiceStatus      invoiceModel.InvoiceStatus `json:"invoice_status"`
	InvoiceDueDate     dbtime.Date                `json:"invoice_due_date"`
}

type ContractDetailResponse struct {
	ContractResponse

	BoardingHouseName string  `json:"boarding_house_name"`
	MainTenantPhone   *string `json:"main_tenant_phone,omitempty"`
	MainTenantEmail   *string `json:"main_tenant_email,omitempty"`

	Tenants  []ContractTenantResponse  `json:"tenants"`
	Invoices []ContractInvoiceResponse `json:"invoices"`

	// hanya untuk kontrak ACTIVE; tidak pernah negatif
	DaysRemaining *int `json:"days_remaining,omitempty"`
}
