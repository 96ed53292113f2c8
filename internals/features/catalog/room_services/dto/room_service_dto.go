package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	serviceTypeModel "kostku_backend/internals/features/catalog/service_types/model"
)

type CreateRoomServiceRequest struct {
	ServiceTypeID uuid.UUID        `json:"service_type_id" validate:"required"`
	PricePerUnit  *decimal.Decimal `json:"price_per_unit" validate:"omitempty,gte=0"`
	FixedPrice    *decimal.Decimal `json:"fixed_price" validate:"omitempty,gte=0"`
}

// UpdateRoomServiceRequest: hanya override yang dikirim yang diubah.
type UpdateRoomServiceRequest struct {
	PricePerUnit *decimal.Decimal `json:"price_per_unit" validate:"omitempty,gte=0"`
	FixedPrice   *decimal.Decimal `json:"fixed_price" validate:"omitempty,gte=0"`
}

type RoomServiceResponse struct {
	RoomServiceID            uuid.UUID                        `json:"room_service_id"`
	RoomServiceRoomID        uuid.UUID                        `json:"room_service_room_id"`
	RoomCode                 string                           `json:"room_code"`
	RoomServiceServiceTypeID uuid.UUID                        `json:"room_service_service_type_id"`
	ServiceTypeName          string                           `json:"service_type_name"`
	ServiceCategory          serviceTypeModel.ServiceCategory `json:"service_category"`
	ServiceTypeUnit          *string                          `json:"service_type_unit,omitempty"`
	DefaultPrice             decimal.Decimal                  `json:"default_price"`
	RoomServicePricePerUnit  *decimal.Decimal                 `json:"room_service_price_per_unit,omitempty"`
	RoomServiceFixedPrice    *decimal.Decimal                 `json:"room_service_fixed_price,omitempty"`
	RoomServiceCreatedAt     time.Time                        `json:"room_service_created_at"`
}
