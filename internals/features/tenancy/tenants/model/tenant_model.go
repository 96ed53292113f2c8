package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kostku_backend/internals/helpers/dbtime"
)

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "ACTIVE"
	TenantStatusInactive TenantStatus = "INACTIVE"
)

func ValidTenantStatus(s TenantStatus) bool {
	return s == TenantStatusActive || s == TenantStatusInactive
}

type TenantModel struct {
	TenantID uuid.UUID `gorm:"column:tenant_id;type:uuid;primaryKey" json:"tenant_id"`

	// akun login (opsional); satu user maksimal satu tenant
	TenantUserID *uuid.UUID `gorm:"column:tenant_user_id;type:uuid;uniqueIndex:uq_tenants_user" json:"tenant_user_id,omitempty"`

	TenantFullName         string       `gorm:"column:tenant_full_name;type:varchar(150);not null" json:"tenant_full_name"`
	TenantPhone            *string      `gorm:"column:tenant_phone;type:varchar(30)" json:"tenant_phone,omitempty"`
	TenantEmail            *string      `gorm:"column:tenant_email;type:varchar(150)" json:"tenant_email,omitempty"`
	TenantIdentityNumber   *string      `gorm:"column:tenant_identity_number;type:varchar(50)" json:"tenant_identity_number,omitempty"`
	TenantDateOfBirth      *dbtime.Date `gorm:"column:tenant_date_of_birth" json:"tenant_date_of_birth,omitempty"`
	TenantPermanentAddress *string      `gorm:"column:tenant_permanent_address;type:text" json:"tenant_permanent_address,omitempty"`

	TenantStatus TenantStatus `gorm:"column:tenant_status;type:varchar(20);not null;index:ix_tenants_status" json:"tenant_status"`

	TenantCreatedAt time.Time `gorm:"column:tenant_created_at;not null" json:"tenant_created_at"`
	TenantUpdatedAt time.Time `gorm:"column:tenant_updated_at;not null" json:"tenant_updated_at"`
}

func (TenantModel) TableName() string {
	return "tenants"
}

func (m *TenantModel) BeforeCreate(tx *gorm.DB) error {
	if m.TenantID == uuid.Nil {
		m.TenantID = uuid.New()
	}
	if m.TenantStatus == "" {
		m.TenantStatus = TenantStatusActive
	}
	now := time.Now()
	if m.TenantCreatedAt.IsZero() {
		m.TenantCreatedAt = now
	}
	m.TenantUpdatedAt = now
	return nil
}

func (m *TenantModel) BeforeUpdate(tx *gorm.DB) error {
	m.TenantUpdatedAt = time.Now()
	return nil
}
