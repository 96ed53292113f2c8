package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	invoiceModel "kostku_backend/internals/features/billing/invoices/model"
	"kostku_backend/internals/helpers/dbtime"
)

type DashboardResponse struct {
	TotalRooms       int64           `json:"total_rooms"`
	OccupiedRooms    int64           `json:"occupied_rooms"`
	AvailableRooms   int64           `json:"available_rooms"`
	MaintenanceRooms int64           `json:"maintenance_rooms"`
	TotalTenants     int64           `json:"total_tenants"`
	ActiveContracts  int64           `json:"active_contracts"`
	MonthlyRevenue   decimal.Decimal `json:"monthly_revenue"`
	UnpaidAmount     decimal.Decimal `json:"unpaid_amount"`
	OverdueInvoices  int64           `json:"overdue_invoices"`
}

type RevenueByMonth struct {
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	InvoiceCount     int             `json:"invoice_count"`
	PaidInvoiceCount int             `json:"paid_invoice_count"`
}

type RevenueByBoardingHouse struct {
	BoardingHouseID   uuid.UUID       `json:"boarding_house_id"`
	BoardingHouseName string          `json:"boarding_house_name"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	InvoiceCount      int             `json:"invoice_count"`
	PaidInvoiceCount  int             `json:"paid_invoice_count"`
	RoomCount         int64           `json:"room_count"`
}

type RentingTenant struct {
	TenantID       uuid.UUID  `json:"tenant_id"`
	TenantUserID   *uuid.UUID `json:"tenant_user_id,omitempty"`
	TenantFullName string     `json:"tenant_full_name"`
	TenantPhone    *string    `json:"tenant_phone,omitempty"`
	TenantEmail    *string    `json:"tenant_email,omitempty"`
	TenantStatus   string     `json:"tenant_status"`
}

type OutstandingDebt struct {
	InvoiceID       uuid.UUID                  `json:"invoice_id"`
	InvoiceCode     string                     `json:"invoice_code"`
	ContractID      uuid.UUID                  `json:"contract_id"`
	ContractCode    string                     `json:"contract_code"`
	RoomID          uuid.UUID                  `json:"room_id"`
	RoomCode        string                     `json:"room_code"`
	TenantName      string                     `json:"tenant_name"`
	TotalAmount     decimal.Decimal            `json:"total_amount"`
	PaidAmount      decimal.Decimal            `json:"paid_amount"`
	RemainingAmount decimal.Decimal            `json:"remaining_amount"`
	Status          invoiceModel.InvoiceStatus `json:"status"`
	DueDate         dbtime.Date                `json:"due_date"`
	DaysOverdue     int                        `json:"days_overdue"`
}
