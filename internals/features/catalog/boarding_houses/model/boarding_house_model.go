package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardingHouseModel struct {
	BoardingHouseID uuid.UUID `gorm:"column:boarding_house_id;type:uuid;primaryKey" json:"boarding_house_id"`

	BoardingHouseName           string  `gorm:"column:boarding_house_name;type:varchar(150);not null" json:"boarding_house_name"`
	BoardingHouseAddress        string  `gorm:"column:boarding_house_address;type:text;not null" json:"boarding_house_address"`
	BoardingHouseDescription    *string `gorm:"column:boarding_house_description;type:text" json:"boarding_house_description,omitempty"`
	BoardingHouseNumberOfFloors *int    `gorm:"column:boarding_house_number_of_floors" json:"boarding_house_number_of_floors,omitempty"`
	BoardingHouseNotes          *string `gorm:"column:boarding_house_notes;type:text" json:"boarding_house_notes,omitempty"`

	BoardingHouseCreatedAt time.Time `gorm:"column:boarding_house_created_at;not null" json:"boarding_house_created_at"`
	BoardingHouseUpdatedAt time.Time `gorm:"column:boarding_house_updated_at;not null" json:"boarding_house_updated_at"`
}

func (BoardingHouseModel) TableName() string {
	return "boarding_houses"
}

func (m *BoardingHouseModel) BeforeCreate(tx *gorm.DB) error {
	if m.BoardingHouseID == uuid.Nil {
		m.BoardingHouseID = uuid.New()
	}
	now := time.Now()
	if m.BoardingHouseCreatedAt.IsZero() {
		m.BoardingHouseCreatedAt = now
	}
	m.BoardingHouseUpdatedAt = now
	return nil
}

func (m *BoardingHouseModel) BeforeUpdate(tx *gorm.DB) error {
	m.BoardingHouseUpdatedAt = time.Now()
	return nil
}
