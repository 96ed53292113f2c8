package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"kostku_backend/internals/features/catalog/boarding_houses/dto"
	"kostku_backend/internals/features/catalog/boarding_houses/model"
	roomModel "kostku_backend/internals/features/catalog/rooms/model"
	helper "kostku_backend/internals/helpers"
)

type BoardingHouseService struct {
	DB *gorm.DB
}

func NewBoardingHouseService(db *gorm.DB) *BoardingHouseService {
	return &BoardingHouseService{DB: db}
}

func notFound(id uuid.UUID) error {
	return fiber.NewError(fiber.StatusNotFound, "Boarding house not found with id: "+id.String())
}

func (s *BoardingHouseService) Create(ctx context.Context, req dto.BoardingHouseRequest) (*dto.BoardingHouseResponse, error) {
	req.Normalize()
	var m model.BoardingHouseModel
	req.ApplyTo(&m)
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	out := dto.ToBoardingHouseResponse(m, 0)
	return &out, nil
}

func (s *BoardingHouseService) Update(ctx context.Context, id uuid.UUID, req dto.BoardingHouseRequest) (*dto.BoardingHouseResponse, error) {
	req.Normalize()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.BoardingHouseModel
		if err := tx.Where("boarding_house_id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(id)
			}
			return err
		}
		req.ApplyTo(&m)
		// Select("*") supaya field nil (description/notes) ikut dikosongkan
		return tx.Select("*").Omit("boarding_house_created_at").Save(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete: kos yang masih punya kamar tidak boleh dihapus.
func (s *BoardingHouseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.BoardingHouseModel{}).Where("boarding_house_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return notFound(id)
		}
		if err := tx.Model(&roomModel.RoomModel{}).Where("room_boarding_house_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot delete boarding house with rooms")
		}
		return tx.Where("boarding_house_id = ?", id).Delete(&model.BoardingHouseModel{}).Error
	})
}

var sortColumns = map[string]string{
	"created_at": "boarding_house_created_at",
	"name":       "boarding_house_name",
}

func (s *BoardingHouseService) List(ctx context.Context, search string, p helper.Params) ([]dto.BoardingHouseResponse, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.BoardingHouseModel{})
	if kw := strings.TrimSpace(search); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		db = db.Where("LOWER(boarding_house_name) LIKE ? OR LOWER(boarding_house_address) LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.BoardingHouseModel
	if err := db.Order(p.OrderClause(sortColumns, "name")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out, err := s.withRoomCounts(s.DB.WithContext(ctx), rows)
	return out, total, err
}

func (s *BoardingHouseService) GetByID(ctx context.Context, id uuid.UUID) (*dto.BoardingHouseResponse, error) {
	db := s.DB.WithContext(ctx)
	var m model.BoardingHouseModel
	if err := db.Where("boarding_house_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	out, err := s.withRoomCounts(db, []model.BoardingHouseModel{m})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *BoardingHouseService) withRoomCounts(db *gorm.DB, rows []model.BoardingHouseModel) ([]dto.BoardingHouseResponse, error) {
	if len(rows) == 0 {
		return []dto.BoardingHouseResponse{}, nil
	}
	type countRow struct {
		ID uuid.UUID `gorm:"column:id"`
		N  int64     `gorm:"column:n"`
	}
	var counts []countRow
	if err := db.Model(&roomModel.RoomModel{}).
		Select("room_boarding_house_id AS id, COUNT(*) AS n").
		Where("room_boarding_house_id IN ?", lo.Map(rows, func(m model.BoardingHouseModel, _ int) uuid.UUID { return m.BoardingHouseID })).
		Group("room_boarding_house_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	byID := lo.SliceToMap(counts, func(c countRow) (uuid.UUID, int64) { return c.ID, c.N })
	return lo.Map(rows, func(m model.BoardingHouseModel, _ int) dto.BoardingHouseResponse {
		return dto.ToBoardingHouseResponse(m, byID[m.BoardingHouseID])
	}), nil
}
