package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomServiceModel: layanan (listrik/air/internet/...) yang dipasang di kamar,
// dengan override harga opsional. Unik per (room, service_type).
type RoomServiceModel struct {
	RoomServiceID uuid.UUID `gorm:"column:room_service_id;type:uuid;primaryKey" json:"room_service_id"`

	RoomServiceRoomID        uuid.UUID `gorm:"column:room_service_room_id;type:uuid;not null;uniqueIndex:uq_room_services_room_type,priority:1" json:"room_service_room_id"`
	RoomServiceServiceTypeID uuid.UUID `gorm:"column:room_service_service_type_id;type:uuid;not null;uniqueIndex:uq_room_services_room_type,priority:2;index:ix_room_services_service_type" json:"room_service_service_type_id"`

	RoomServicePricePerUnit *decimal.Decimal `gorm:"column:room_service_price_per_unit;type:decimal(18,2)" json:"room_service_price_per_unit,omitempty"`
	RoomServiceFixedPrice   *decimal.Decimal `gorm:"column:room_service_fixed_price;type:decimal(18,2)" json:"room_service_fixed_price,omitempty"`

	RoomServiceCreatedAt time.Time `gorm:"column:room_service_created_at;not null" json:"room_service_created_at"`
	RoomServiceUpdatedAt time.Time `gorm:"column:room_service_updated_at;not null" json:"room_service_updated_at"`
}

func (RoomServiceModel) TableName() string {
	return "room_services"
}

func (m *RoomServiceModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomServiceID == uuid.Nil {
		m.RoomServiceID = uuid.New()
	}
	now := time.Now()
	if m.RoomServiceCreatedAt.IsZero() {
		m.RoomServiceCreatedAt = now
	}
	m.RoomServiceUpdatedAt = now
	return nil
}

func (m *RoomServiceModel) BeforeUpdate(tx *gorm.DB) error {
	m.RoomServiceUpdatedAt = time.Now()
	return nil
}
