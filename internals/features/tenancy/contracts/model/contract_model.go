package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"kostku_backend/internals/helpers/dbtime"
)

// =========================================================
// ENUMS
// =========================================================

type ContractStatus string

const (
	ContractStatusDraft      ContractStatus = "DRAFT"
	ContractStatusActive     ContractStatus = "ACTIVE"
	ContractStatusTerminated ContractStatus = "TERMINATED"
	ContractStatusExpired    ContractStatus = "EXPIRED"
)

func ValidContractStatus(s ContractStatus) bool {
	switch s {
	case ContractStatusDraft, ContractStatusActive, ContractStatusTerminated, ContractStatusExpired:
		return true
	}
	return false
}

// Ends: status yang mengosongkan kamar
func (s ContractStatus) Ends() bool {
	return s == ContractStatusTerminated || s == ContractStatusExpired
}

type BillingCycle string

const (
	BillingCycleMonthly   BillingCycle = "MONTHLY"
	BillingCycleQuarterly BillingCycle = "QUARTERLY"
	BillingCycleYearly    BillingCycle = "YEARLY"
)

func ValidBillingCycle(b BillingCycle) bool {
	switch b {
	case BillingCycleMonthly, BillingCycleQuarterly, BillingCycleYearly:
		return true
	}
	return false
}

// =========================================================
// MODEL: contracts
// =========================================================

type ContractModel struct {
	ContractID uuid.UUID `gorm:"column:contract_id;type:uuid;primaryKey" json:"contract_id"`

	ContractCode         string    `gorm:"column:contract_code;type:varchar(50);not null;uniqueIndex:uq_contracts_code" json:"contract_code"`
	ContractRoomID       uuid.UUID `gorm:"column:contract_room_id;type:uuid;not null;index:ix_contracts_room_status,priority:1" json:"contract_room_id"`
	ContractMainTenantID uuid.UUID `gorm:"column:contract_main_tenant_id;type:uuid;not null;index:ix_contracts_main_tenant" json:"contract_main_tenant_id"`

	ContractStartDate dbtime.Date `gorm:"column:contract_start_date;not null" json:"contract_start_date"`
	ContractEndDate   dbtime.Date `gorm:"column:contract_end_date;not null" json:"contract_end_date"`

	ContractDeposit     decimal.Decimal `gorm:"column:contract_deposit;type:decimal(18,2);not null" json:"contract_deposit"`
	ContractMonthlyRent decimal.Decimal `gorm:"column:contract_monthly_rent;type:decimal(18,2);not null" json:"contract_monthly_rent"`

	ContractStatus       ContractStatus `gorm:"column:contract_status;type:varchar(20);not null;index:ix_contracts_room_status,priority:2" json:"contract_status"`
	ContractBillingCycle BillingCycle   `gorm:"column:contract_billing_cycle;type:varchar(20);not null" json:"contract_billing_cycle"`

	ContractTerminationReason *string      `gorm:"column:contract_termination_reason;type:text" json:"contract_termination_reason,omitempty"`
	ContractTerminationDate   *dbtime.Date `gorm:"column:contract_termination_date" json:"contract_termination_date,omitempty"`

	ContractCreatedAt time.Time `gorm:"column:contract_created_at;not null" json:"contract_created_at"`
	ContractUpdatedAt time.Time `gorm:"column:contract_updated_at;not null" json:"contract_updated_at"`
}

func (ContractModel) TableName() string {
	return "contracts"
}

func (m *ContractModel) BeforeCreate(tx *gorm.DB) error {
	if m.ContractID == uuid.Nil {
		m.ContractID = uuid.New()
	}
	if m.ContractStatus == "" {
		m.ContractStatus = ContractStatusDraft
	}
	if m.ContractBillingCycle == "" {
		m.ContractBillingCycle = BillingCycleMonthly
	}
	now := time.Now()
	if m.ContractCreatedAt.IsZero() {
		m.ContractCreatedAt = now
	}
	m.ContractUpdatedAt = now
	return nil
}

func (m *ContractModel) BeforeUpdate(tx *gorm.DB) error {
	m.ContractUpdatedAt = time.Now()
	return nil
}

// =========================================================
// MODEL: contract_tenants (co-tenant)
// =========================================================

type ContractTenantModel struct {
	ContractTenantContractID uuid.UUID `gorm:"column:contract_tenant_contract_id;type:uuid;primaryKey" json:"contract_tenant_contract_id"`
	ContractTenantTenantID   uuid.UUID `gorm:"column:contract_tenant_tenant_id;type:uuid;primaryKey;index:ix_contract_tenants_tenant" json:"contract_tenant_tenant_id"`
}

func (ContractTenantModel) TableName() string {
	return "contract_tenants"
}
