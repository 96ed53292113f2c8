package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	invoiceModel "kostku_backend/internals/features/billing/invoices/model"
	bhModel "kostku_backend/internals/features/catalog/boarding_houses/model"
	rsDTO "kostku_backend/internals/features/catalog/room_services/dto"
	rsModel "kostku_backend/internals/features/catalog/room_services/model"
	rsService "kostku_backend/internals/features/catalog/room_services/service"
	"kostku_backend/internals/features/catalog/rooms/dto"
	"kostku_backend/internals/features/catalog/rooms/model"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	helper "kostku_backend/internals/helpers"
)

const recentInvoiceLimit = 5

type RoomService struct {
	DB       *gorm.DB
	Services *rsService.RoomServiceService
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db, Services: rsService.NewRoomServiceService(db)}
}

func notFound(id uuid.UUID) error {
	return fiber.NewError(fiber.StatusNotFound, "Room not found with id: "+id.String())
}

func codeTaken(code string) error {
	return fiber.NewError(fiber.StatusBadRequest, "Room code already exists: "+code)
}

/* =========================================================
   WRITE
========================================================= */

func (s *RoomService) Create(ctx context.Context, req dto.RoomRequest) (*dto.RoomResponse, error) {
	req.Normalize()
	m := model.RoomModel{
		RoomCode:            req.Code,
		RoomBoardingHouseID: req.BoardingHouseID,
		RoomFloor:           req.Floor,
		RoomArea:            req.Area,
		RoomMaxOccupants:    req.MaxOccupants,
		RoomBaseRent:        req.BaseRent,
		RoomStatus:          lo.FromPtrOr(req.Status, model.RoomStatusAvailable),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCodeFree(tx, m.RoomCode, uuid.Nil); err != nil {
			return err
		}
		if err := ensureBoardingHouse(tx, m.RoomBoardingHouseID); err != nil {
			return err
		}
		if err := tx.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return codeTaken(m.RoomCode)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, m.RoomID)
}

func (s *RoomService) Update(ctx context.Context, id uuid.UUID, req dto.RoomRequest) (*dto.RoomResponse, error) {
	req.Normalize()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.RoomModel
		if err := tx.Where("room_id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(id)
			}
			return err
		}
		if m.RoomCode != req.Code {
			if err := ensureCodeFree(tx, req.Code, id); err != nil {
				return err
			}
		}
		if m.RoomBoardingHouseID != req.BoardingHouseID {
			if err := ensureBoardingHouse(tx, req.BoardingHouseID); err != nil {
				return err
			}
		}

		set := map[string]any{
			"room_code":              req.Code,
			"room_boarding_house_id": req.BoardingHouseID,
			"room_floor":             req.Floor,
			"room_area":              req.Area,
			"room_max_occupants":     req.MaxOccupants,
			"room_base_rent":         req.BaseRent,
			"room_updated_at":        time.Now(),
		}
		if req.Status != nil {
			set["room_status"] = *req.Status
		}
		if err := tx.Model(&model.RoomModel{}).Where("room_id = ?", id).Updates(set).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return codeTaken(req.Code)
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

// Delete: kamar yang pernah dikontrak tidak bisa dihapus; layanan kamar ikut terhapus.
func (s *RoomService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.RoomModel{}).Where("room_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return notFound(id)
		}
		if err := tx.Model(&contractModel.ContractModel{}).Where("contract_room_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot delete room with contracts")
		}
		if err := tx.Where("room_service_room_id = ?", id).Delete(&rsModel.RoomServiceModel{}).Error; err != nil {
			return err
		}
		return tx.Where("room_id = ?", id).Delete(&model.RoomModel{}).Error
	})
}

/* =========================================================
   READ
========================================================= */

var sortColumns = map[string]string{
	"code":       "room_code",
	"created_at": "room_created_at",
	"base_rent":  "room_base_rent",
	"floor":      "room_floor",
}

func (s *RoomService) List(ctx context.Context, q dto.ListRoomQuery, p helper.Params) ([]dto.RoomResponse, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.RoomModel{})
	if q.BoardingHouseID != nil {
		db = db.Where("room_boarding_house_id = ?", *q.BoardingHouseID)
	}
	if q.Status != nil {
		db = db.Where("room_status = ?", *q.Status)
	}
	if kw := strings.TrimSpace(q.Search); kw != "" {
		db = db.Where("LOWER(room_code) LIKE ?", "%"+strings.ToLower(kw)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.RoomModel
	if err := db.Order(p.OrderClause(sortColumns, "code")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out, err := toResponses(s.DB.WithContext(ctx), rows)
	return out, total, err
}

func (s *RoomService) GetByID(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, error) {
	db := s.DB.WithContext(ctx)
	var m model.RoomModel
	if err := db.Where("room_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	out, err := toResponses(db, []model.RoomModel{m})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *RoomService) ListServices(ctx context.Context, id uuid.UUID) ([]rsDTO.RoomServiceResponse, error) {
	return s.Services.ListByRoom(ctx, id)
}

// Detail: kamar + layanan + kontrak ACTIVE (kalau ada) + 5 invoice terakhir.
func (s *RoomService) Detail(ctx context.Context, id uuid.UUID) (*dto.RoomDetailResponse, error) {
	base, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	out := &dto.RoomDetailResponse{RoomResponse: *base}
	if err := db.Model(&bhModel.BoardingHouseModel{}).
		Select("boarding_house_address").
		Where("boarding_house_id = ?", base.RoomBoardingHouseID).
		Scan(&out.BoardingHouseAddress).Error; err != nil {
		return nil, err
	}

	if out.Services, err = s.Services.ListByRoom(ctx, id); err != nil {
		return nil, err
	}

	var current []dto.RoomContractBrief
	if err := db.Table("contracts AS c").
		Select(`c.contract_id, c.contract_code, c.contract_main_tenant_id, t.tenant_full_name AS main_tenant_name,
			c.contract_start_date, c.contract_end_date, c.contract_monthly_rent, c.contract_status`).
		Joins("JOIN tenants AS t ON t.tenant_id = c.contract_main_tenant_id").
		Where("c.contract_room_id = ? AND c.contract_status = ?", id, contractModel.ContractStatusActive).
		Limit(1).
		Scan(&current).Error; err != nil {
		return nil, err
	}
	if len(current) > 0 {
		out.CurrentContract = &current[0]
	}

	var invs []invoiceModel.InvoiceModel
	if err := db.Where("invoice_room_id = ?", id).
		Order("invoice_created_date DESC, invoice_created_at DESC").
		Limit(recentInvoiceLimit).
		Find(&invs).Error; err != nil {
		return nil, err
	}
	out.RecentInvoices = lo.Map(invs, func(i invoiceModel.InvoiceModel, _ int) dto.RoomInvoiceBrief {
		return dto.RoomInvoiceBrief{
			InvoiceID:          i.InvoiceID,
			InvoiceCode:        i.InvoiceCode,
			InvoicePeriodMonth: i.InvoicePeriodMonth,
			InvoicePeriodYear:  i.InvoicePeriodYear,
			InvoiceTotalAmount: i.InvoiceTotalAmount,
			InvoiceStatus:      i.InvoiceStatus,
			InvoiceDueDate:     i.InvoiceDueDate,
			InvoiceCreatedDate: i.InvoiceCreatedDate,
		}
	})
	return out, nil
}

/* =========================================================
   HELPERS
========================================================= */

func ensureCodeFree(tx *gorm.DB, code string, except uuid.UUID) error {
	var n int64
	q := tx.Model(&model.RoomModel{}).Where("room_code = ?", code)
	if except != uuid.Nil {
		q = q.Where("room_id <> ?", except)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return codeTaken(code)
	}
	return nil
}

func ensureBoardingHouse(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&bhModel.BoardingHouseModel{}).Where("boarding_house_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Boarding house not found")
	}
	return nil
}

func toResponses(db *gorm.DB, rows []model.RoomModel) ([]dto.RoomResponse, error) {
	if len(rows) == 0 {
		return []dto.RoomResponse{}, nil
	}
	var houses []bhModel.BoardingHouseModel
	if err := db.Select("boarding_house_id", "boarding_house_name").
		Where("boarding_house_id IN ?", lo.Uniq(lo.Map(rows, func(r model.RoomModel, _ int) uuid.UUID { return r.RoomBoardingHouseID }))).
		Find(&houses).Error; err != nil {
		return nil, err
	}
	names := lo.SliceToMap(houses, func(h bhModel.BoardingHouseModel) (uuid.UUID, string) {
		return h.BoardingHouseID, h.BoardingHouseName
	})
	return lo.Map(rows, func(r model.RoomModel, _ int) dto.RoomResponse {
		return dto.ToRoomResponse(r, names[r.RoomBoardingHouseID])
	}), nil
}
