package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	roomServiceModel "kostku_backend/internals/features/catalog/room_services/model"
	"kostku_backend/internals/features/catalog/service_types/dto"
	"kostku_backend/internals/features/catalog/service_types/model"
)

type ServiceTypeService struct {
	DB *gorm.DB
}

func NewServiceTypeService(db *gorm.DB) *ServiceTypeService {
	return &ServiceTypeService{DB: db}
}

func notFound(id uuid.UUID) error {
	return fiber.NewError(fiber.StatusNotFound, "Service type not found with id: "+id.String())
}

func nameTaken(name string) error {
	return fiber.NewError(fiber.StatusBadRequest, "Service type name already exists: "+name)
}

func ensureNameFree(tx *gorm.DB, name string, except uuid.UUID) error {
	var n int64
	q := tx.Model(&model.ServiceTypeModel{}).Where("service_type_name = ?", name)
	if except != uuid.Nil {
		q = q.Where("service_type_id <> ?", except)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nameTaken(name)
	}
	return nil
}

func (s *ServiceTypeService) Create(ctx context.Context, req dto.ServiceTypeRequest) (*model.ServiceTypeModel, error) {
	req.Normalize()
	m := req.ToModel()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNameFree(tx, m.ServiceTypeName, uuid.Nil); err != nil {
			return err
		}
		if err := tx.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nameTaken(m.ServiceTypeName)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Update: nama/kategori/unit/harga diganti; is_active hanya kalau dikirim.
// Harga baru berlaku untuk invoice berikutnya saja (invoice lama menyimpan unit price sendiri).
func (s *ServiceTypeService) Update(ctx context.Context, id uuid.UUID, req dto.ServiceTypeRequest) (*model.ServiceTypeModel, error) {
	req.Normalize()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.ServiceTypeModel
		if err := tx.Where("service_type_id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(id)
			}
			return err
		}
		if m.ServiceTypeName != req.Name {
			if err := ensureNameFree(tx, req.Name, id); err != nil {
				return err
			}
		}

		set := map[string]any{
			"service_type_name":           req.Name,
			"service_type_category":       req.Category,
			"service_type_unit":           req.Unit,
			"service_type_price_per_unit": req.PricePerUnit,
			"service_type_updated_at":     time.Now(),
		}
		if req.IsActive != nil {
			set["service_type_is_active"] = *req.IsActive
		}
		if err := tx.Model(&model.ServiceTypeModel{}).Where("service_type_id = ?", id).Updates(set).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nameTaken(req.Name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete ditolak selama masih terpasang di kamar.
func (s *ServiceTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.get(tx, id); err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&roomServiceModel.RoomServiceModel{}).
			Where("room_service_service_type_id = ?", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot delete service type assigned to rooms")
		}
		return tx.Where("service_type_id = ?", id).Delete(&model.ServiceTypeModel{}).Error
	})
}

// List: active nil → semua.
func (s *ServiceTypeService) List(ctx context.Context, active *bool) ([]model.ServiceTypeModel, error) {
	db := s.DB.WithContext(ctx)
	if active != nil {
		db = db.Where("service_type_is_active = ?", *active)
	}
	out := []model.ServiceTypeModel{}
	err := db.Order("service_type_name ASC").Find(&out).Error
	return out, err
}

func (s *ServiceTypeService) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceTypeModel, error) {
	return s.get(s.DB.WithContext(ctx), id)
}

func (s *ServiceTypeService) get(db *gorm.DB, id uuid.UUID) (*model.ServiceTypeModel, error) {
	var m model.ServiceTypeModel
	if err := db.Where("service_type_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return &m, nil
}
