package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// ENUM: status kamar
// =========================================================

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusOccupied    RoomStatus = "OCCUPIED"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
)

// =========================================================
// MODEL
// =========================================================

type RoomModel struct {
	RoomID uuid.UUID `gorm:"column:room_id;type:uuid;primaryKey" json:"room_id"`

	RoomCode            string    `gorm:"column:room_code;type:varchar(50);not null;uniqueIndex:uq_rooms_code" json:"room_code"`
	RoomBoardingHouseID uuid.UUID `gorm:"column:room_boarding_house_id;type:uuid;not null;index:ix_rooms_boarding_house" json:"room_boarding_house_id"`

	RoomFloor        *int             `gorm:"column:room_floor" json:"room_floor,omitempty"`
	RoomArea         *decimal.Decimal `gorm:"column:room_area;type:decimal(10,2)" json:"room_area,omitempty"`
	RoomMaxOccupants *int             `gorm:"column:room_max_occupants" json:"room_max_occupants,omitempty"`
	RoomBaseRent     decimal.Decimal  `gorm:"column:room_base_rent;type:decimal(18,2);not null" json:"room_base_rent"`

	RoomStatus RoomStatus `gorm:"column:room_status;type:varchar(20);not null;index:ix_rooms_status" json:"room_status"`

	RoomCreatedAt time.Time `gorm:"column:room_created_at;not null" json:"room_created_at"`
	RoomUpdatedAt time.Time `gorm:"column:room_updated_at;not null" json:"room_updated_at"`
}

func (RoomModel) TableName() string {
	return "rooms"
}

func (m *RoomModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomID == uuid.Nil {
		m.RoomID = uuid.New()
	}
	if m.RoomStatus == "" {
		m.RoomStatus = RoomStatusAvailable
	}
	now := time.Now()
	if m.RoomCreatedAt.IsZero() {
		m.RoomCreatedAt = now
	}
	m.RoomUpdatedAt = now
	return nil
}

func (m *RoomModel) BeforeUpdate(tx *gorm.DB) error {
	m.RoomUpdatedAt = time.Now()
	return nil
}

func ValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}
