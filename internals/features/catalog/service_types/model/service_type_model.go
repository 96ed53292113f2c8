package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceCategory string

const (
	ServiceCategoryElectricity ServiceCategory = "ELECTRICITY"
	ServiceCategoryWater       ServiceCategory = "WATER"
	ServiceCategoryFixed       ServiceCategory = "FIXED"
	ServiceCategoryOther       ServiceCategory = "OTHER"
)

// IsMetered: semua kategori selain FIXED ditagih dari selisih meteran.
func (c ServiceCategory) IsMetered() bool {
	return c != ServiceCategoryFixed
}

func ValidServiceCategory(c ServiceCategory) bool {
	switch c {
	case ServiceCategoryElectricity, ServiceCategoryWater, ServiceCategoryFixed, ServiceCategoryOther:
		return true
	}
	return false
}

type ServiceTypeModel struct {
	ServiceTypeID uuid.UUID `gorm:"column:service_type_id;type:uuid;primaryKey" json:"service_type_id"`

	ServiceTypeName     string          `gorm:"column:service_type_name;type:varchar(100);not null;uniqueIndex:uq_service_types_name" json:"service_type_name"`
	ServiceTypeCategory ServiceCategory `gorm:"column:service_type_category;type:varchar(20);not null" json:"service_type_category"`
	ServiceTypeUnit     *string         `gorm:"column:service_type_unit;type:varchar(20)" json:"service_type_unit,omitempty"`

	// harga default per unit (metered) atau harga flat (FIXED)
	ServiceTypePricePerUnit decimal.Decimal `gorm:"column:service_type_price_per_unit;type:decimal(18,2);not null" json:"service_type_price_per_unit"`

	// sengaja tanpa default di DB: false harus bisa tersimpan saat create
	ServiceTypeIsActive bool `gorm:"column:service_type_is_active;not null" json:"service_type_is_active"`

	ServiceTypeCreatedAt time.Time `gorm:"column:service_type_created_at;not null" json:"service_type_created_at"`
	ServiceTypeUpdatedAt time.Time `gorm:"column:service_type_updated_at;not null" json:"service_type_updated_at"`
}

func (ServiceTypeModel) TableName() string {
	return "service_types"
}

func (m *ServiceTypeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ServiceTypeID == uuid.Nil {
		m.ServiceTypeID = uuid.New()
	}
	now := time.Now()
	if m.ServiceTypeCreatedAt.IsZero() {
		m.ServiceTypeCreatedAt = now
	}
	m.ServiceTypeUpdatedAt = now
	return nil
}

func (m *ServiceTypeModel) BeforeUpdate(tx *gorm.DB) error {
	m.ServiceTypeUpdatedAt = time.Now()
	return nil
}
