package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kostku_backend/internals/features/catalog/boarding_houses/model"
)

// BoardingHouseRequest dipakai untuk create & update (PUT = ganti semua field).
type BoardingHouseRequest struct {
	Name           string  `json:"name" validate:"required,max=150"`
	Address        string  `json:"address" validate:"required"`
	Description    *string `json:"description"`
	NumberOfFloors *int    `json:"number_of_floors" validate:"omitempty,min=1"`
	Notes          *string `json:"notes"`
}

func (r *BoardingHouseRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
}

func (r BoardingHouseRequest) ApplyTo(m *model.BoardingHouseModel) {
	m.BoardingHouseName = r.Name
	m.BoardingHouseAddress = r.Address
	m.BoardingHouseDescription = r.Description
	m.BoardingHouseNumberOfFloors = r.NumberOfFloors
	m.BoardingHouseNotes = r.Notes
}

type BoardingHouseResponse struct {
	BoardingHouseID             uuid.UUID `json:"boarding_house_id"`
	BoardingHouseName           string    `json:"boarding_house_name"`
	BoardingHouseAddress        string    `json:"boarding_house_address"`
	BoardingHouseDescription    *string   `json:"boarding_house_description,omitempty"`
	BoardingHouseNumberOfFloors *int      `json:"boarding_house_number_of_floors,omitempty"`
	BoardingHouseNotes          *string   `json:"boarding_house_notes,omitempty"`
	RoomCount                   int64     `json:"room_count"`
	BoardingHouseCreatedAt      time.Time `json:"boarding_house_created_at"`
	BoardingHouseUpdatedAt      time.Time `json:"boarding_house_updated_at"`
}

func ToBoardingHouseResponse(m model.BoardingHouseModel, roomCount int64) BoardingHouseResponse {
	return BoardingHouseResponse{
		BoardingHouseID:             m.BoardingHouseID,
		BoardingHouseName:           m.BoardingHouseName,
		BoardingHouseAddress:        m.BoardingHouseAddress,
		BoardingHouseDescription:    m.BoardingHouseDescription,
		BoardingHouseNumberOfFloors: m.BoardingHouseNumberOfFloors,
		BoardingHouseNotes:          m.BoardingHouseNotes,
		RoomCount:                   roomCount,
		BoardingHouseCreatedAt:      m.BoardingHouseCreatedAt,
		BoardingHouseUpdatedAt:      m.BoardingHouseUpdatedAt,
	}
}
