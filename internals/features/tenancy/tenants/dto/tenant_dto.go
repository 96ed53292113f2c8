package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	invoiceModel "kostku_backend/internals/features/billing/invoices/model"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	"kostku_backend/internals/features/tenancy/tenants/model"
	"kostku_backend/internals/helpers/dbtime"
)

// TenantRequest: create & update (PUT). UserID/Status nil saat update → tidak diubah.
type TenantRequest struct {
	UserID           *uuid.UUID          `json:"user_id"`
	FullName         string              `json:"full_name" validate:"required,max=150"`
	Phone            *string             `json:"phone" validate:"omitempty,max=30"`
	Email            *string             `json:"email" validate:"omitempty,email,max=150"`
	IdentityNumber   *string             `json:"identity_number" validate:"omitempty,max=50"`
	DateOfBirth      *dbtime.Date        `json:"date_of_birth"`
	PermanentAddress *string             `json:"permanent_address"`
	Status           *model.TenantStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r *TenantRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = trimOrNil(r.Phone)
	r.Email = trimOrNil(r.Email)
	r.IdentityNumber = trimOrNil(r.IdentityNumber)
	r.PermanentAddress = trimOrNil(r.PermanentAddress)
}

func trimOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

type TenantContractBrief struct {
	ContractID          uuid.UUID                    `json:"contract_id"`
	ContractCode        string                       `json:"contract_code"`
	ContractRoomID      uuid.UUID                    `json:"contract_room_id"`
	RoomCode            string                       `json:"room_code"`
	IsMainTenant        bool                         `json:"is_main_tenant"`
	ContractStartDate   dbtime.Date                  `json:"contract_start_date"`
	ContractEndDate     dbtime.Date                  `json:"contract_end_date"`
	ContractMonthlyRent decimal.Decimal              `json:"contract_monthly_rent"`
	ContractStatus      contractModel.ContractStatus `json:"contract_status"`
}

type TenantInvoiceBrief struct {
	InvoiceID          uuid.UUID                  `json:"invoice_id"`
	InvoiceCode        string                     `json:"invoice_code"`
	InvoiceContractID  uuid.UUID                  `json:"invoice_contract_id"`
	InvoicePeriodMonth int                        `json:"invoice_period_month"`
	InvoicePeriodYear  int                        `json:"invoice_period_year"`
	InvoiceTotalAmount decimal.Decimal            `json:"invoice_total_amount"`
	InvoiceStatus      invoiceModel.InvoiceStatus `json:"invoice_status"`
	InvoiceDueDate     dbtime.Date                `json:"invoice_due_date"`
}

type TenantDetailResponse struct {
	model.TenantModel

	Contracts      []TenantContractBrief `json:"contracts"`
	Invoices       []TenantInvoiceBrief  `json:"invoices"`
	TotalInvoices  int                   `json:"total_invoices"`
	UnpaidInvoices int                   `json:"unpaid_invoices"`
}
