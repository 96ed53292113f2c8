package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kostku_backend/internals/features/catalog/room_services/dto"
	"kostku_backend/internals/features/catalog/room_services/model"
	roomModel "kostku_backend/internals/features/catalog/rooms/model"
	serviceTypeModel "kostku_backend/internals/features/catalog/service_types/model"
)

// RoomServiceService: layanan yang dipasang per kamar + override harga.
type RoomServiceService struct {
	DB *gorm.DB
}

func NewRoomServiceService(db *gorm.DB) *RoomServiceService {
	return &RoomServiceService{DB: db}
}

const alreadyAssigned = "Service already assigned to this room"

func (s *RoomServiceService) Create(ctx context.Context, roomID uuid.UUID, req dto.CreateRoomServiceRequest) (*dto.RoomServiceResponse, error) {
	var id uuid.UUID
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &roomModel.RoomModel{}, "room_id", roomID, "Room not found with id: "+roomID.String()); err != nil {
			return err
		}
		if err := exists(tx, &serviceTypeModel.ServiceTypeModel{}, "service_type_id", req.ServiceTypeID,
			"Service type not found with id: "+req.ServiceTypeID.String()); err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&model.RoomServiceModel{}).
			Where("room_service_room_id = ? AND room_service_service_type_id = ?", roomID, req.ServiceTypeID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, alreadyAssigned)
		}

		m := model.RoomServiceModel{
			RoomServiceRoomID:        roomID,
			RoomServiceServiceTypeID: req.ServiceTypeID,
			RoomServicePricePerUnit:  req.PricePerUnit,
			RoomServiceFixedPrice:    req.FixedPrice,
		}
		if err := tx.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, alreadyAssigned)
			}
			return err
		}
		id = m.RoomServiceID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *RoomServiceService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRoomServiceRequest) (*dto.RoomServiceResponse, error) {
	if err := exists(s.DB.WithContext(ctx), &model.RoomServiceModel{}, "room_service_id", id, notFoundMsg(id)); err != nil {
		return nil, err
	}

	set := map[string]any{}
	if req.PricePerUnit != nil {
		set["room_service_price_per_unit"] = *req.PricePerUnit
	}
	if req.FixedPrice != nil {
		set["room_service_fixed_price"] = *req.FixedPrice
	}
	if len(set) > 0 {
		set["room_service_updated_at"] = time.Now()
		if err := s.DB.WithContext(ctx).Model(&model.RoomServiceModel{}).
			Where("room_service_id = ?", id).
			Updates(set).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}

func (s *RoomServiceService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("room_service_id = ?", id).Delete(&model.RoomServiceModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, notFoundMsg(id))
	}
	return nil
}

func (s *RoomServiceService) GetByID(ctx context.Context, id uuid.UUID) (*dto.RoomServiceResponse, error) {
	var out []dto.RoomServiceResponse
	if err := s.query(s.DB.WithContext(ctx)).
		Where("rs.room_service_id = ?", id).
		Limit(1).
		Scan(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, notFoundMsg(id))
	}
	return &out[0], nil
}

// ListByRoom: layanan kamar urut waktu pasang.
func (s *RoomServiceService) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]dto.RoomServiceResponse, error) {
	db := s.DB.WithContext(ctx)
	if err := exists(db, &roomModel.RoomModel{}, "room_id", roomID, "Room not found with id: "+roomID.String()); err != nil {
		return nil, err
	}
	out := []dto.RoomServiceResponse{}
	err := s.query(db).
		Where("rs.room_service_room_id = ?", roomID).
		Order("rs.room_service_created_at ASC, st.service_type_name ASC").
		Scan(&out).Error
	return out, err
}

func (s *RoomServiceService) query(db *gorm.DB) *gorm.DB {
	return db.Table("room_services AS rs").
		Select(`rs.room_service_id, rs.room_service_room_id, r.room_code,
			rs.room_service_service_type_id, st.service_type_name,
			st.service_type_category AS service_category, st.service_type_unit,
			st.service_type_price_per_unit AS default_price,
			rs.room_service_price_per_unit, rs.room_service_fixed_price, rs.room_service_created_at`).
		Joins("JOIN rooms AS r ON r.room_id = rs.room_service_room_id").
		Joins("JOIN service_types AS st ON st.service_type_id = rs.room_service_service_type_id")
}

func notFoundMsg(id uuid.UUID) string {
	return "Room service not found with id: " + id.String()
}

func exists(db *gorm.DB, m any, col string, id uuid.UUID, msg string) error {
	var n int64
	if err := db.Model(m).Where(col+" = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, msg)
	}
	return nil
}
