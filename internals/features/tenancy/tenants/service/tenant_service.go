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
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	"kostku_backend/internals/features/tenancy/tenants/dto"
	"kostku_backend/internals/features/tenancy/tenants/model"
	userModel "kostku_backend/internals/features/users/user/model"
	helper "kostku_backend/internals/helpers"
)

type TenantService struct {
	DB *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{DB: db}
}

func notFound(id uuid.UUID) error {
	return fiber.NewError(fiber.StatusNotFound, "Tenant not found with id: "+id.String())
}

var errUserLinked = fiber.NewError(fiber.StatusBadRequest, "User is already linked to another tenant")

func (s *TenantService) Create(ctx context.Context, req dto.TenantRequest) (*model.TenantModel, error) {
	req.Normalize()
	m := model.TenantModel{
		TenantUserID:           req.UserID,
		TenantFullName:         req.FullName,
		TenantPhone:            req.Phone,
		TenantEmail:            req.Email,
		TenantIdentityNumber:   req.IdentityNumber,
		TenantDateOfBirth:      req.DateOfBirth,
		TenantPermanentAddress: req.PermanentAddress,
		TenantStatus:           lo.FromPtrOr(req.Status, model.TenantStatusActive),
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.TenantUserID != nil {
			if err := ensureUserFree(tx, *m.TenantUserID, uuid.Nil); err != nil {
				return err
			}
		}
		if err := tx.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errUserLinked
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

func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req dto.TenantRequest) (*model.TenantModel, error) {
	req.Normalize()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.get(tx, id); err != nil {
			return err
		}
		set := map[string]any{
			"tenant_full_name":         req.FullName,
			"tenant_phone":             req.Phone,
			"tenant_email":             req.Email,
			"tenant_identity_number":   req.IdentityNumber,
			"tenant_date_of_birth":     req.DateOfBirth,
			"tenant_permanent_address": req.PermanentAddress,
			"tenant_updated_at":        time.Now(),
		}
		if req.UserID != nil {
			if err := ensureUserFree(tx, *req.UserID, id); err != nil {
				return err
			}
			set["tenant_user_id"] = *req.UserID
		}
		if req.Status != nil {
			set["tenant_status"] = *req.Status
		}
		if err := tx.Model(&model.TenantModel{}).Where("tenant_id = ?", id).Updates(set).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errUserLinked
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

// Delete: penyewa yang tercatat di kontrak (utama / co-tenant) tidak boleh dihapus.
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.get(tx, id); err != nil {
			return err
		}
		var main, co int64
		if err := tx.Model(&contractModel.ContractModel{}).Where("contract_main_tenant_id = ?", id).Count(&main).Error; err != nil {
			return err
		}
		if err := tx.Model(&contractModel.ContractTenantModel{}).Where("contract_tenant_tenant_id = ?", id).Count(&co).Error; err != nil {
			return err
		}
		if main+co > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot delete tenant with contracts")
		}
		return tx.Where("tenant_id = ?", id).Delete(&model.TenantModel{}).Error
	})
}

var sortColumns = map[string]string{
	"created_at": "tenant_created_at",
	"name":       "tenant_full_name",
}

func (s *TenantService) List(ctx context.Context, status *model.TenantStatus, search string, p helper.Params) ([]model.TenantModel, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.TenantModel{})
	if status != nil {
		db = db.Where("tenant_status = ?", *status)
	}
	if kw := strings.TrimSpace(search); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		db = db.Where("LOWER(tenant_full_name) LIKE ? OR LOWER(COALESCE(tenant_phone, '')) LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := []model.TenantModel{}
	err := db.Order(p.OrderClause(sortColumns, "name")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error
	return rows, total, err
}

func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*model.TenantModel, error) {
	return s.get(s.DB.WithContext(ctx), id)
}

func (s *TenantService) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.TenantModel, error) {
	var m model.TenantModel
	if err := s.DB.WithContext(ctx).Where("tenant_user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tenant not found for user: "+userID.String())
		}
		return nil, err
	}
	return &m, nil
}

// Detail: penyewa + kontrak (sebagai utama atau co-tenant) + invoice kontrak-kontrak itu.
func (s *TenantService) Detail(ctx context.Context, id uuid.UUID) (*dto.TenantDetailResponse, error) {
	db := s.DB.WithContext(ctx)
	t, err := s.get(db, id)
	if err != nil {
		return nil, err
	}

	var contracts []dto.TenantContractBrief
	if err := db.Table("contracts AS c").
		Select(`c.contract_id, c.contract_code, c.contract_room_id, r.room_code,
			c.contract_start_date, c.contract_end_date, c.contract_monthly_rent, c.contract_status`).
		Joins("JOIN rooms AS r ON r.room_id = c.contract_room_id").
		Where(`c.contract_main_tenant_id = ? OR c.contract_id IN (
			SELECT contract_tenant_contract_id FROM contract_tenants WHERE contract_tenant_tenant_id = ?)`, id, id).
		Order("c.contract_start_date DESC").
		Scan(&contracts).Error; err != nil {
		return nil, err
	}

	var mainIDs []uuid.UUID
	if err := db.Model(&contractModel.ContractModel{}).
		Where("contract_main_tenant_id = ?", id).
		Pluck("contract_id", &mainIDs).Error; err != nil {
		return nil, err
	}
	for i := range contracts {
		contracts[i].IsMainTenant = lo.Contains(mainIDs, contracts[i].ContractID)
	}

	out := &dto.TenantDetailResponse{
		TenantModel: *t,
		Contracts:   lo.Ternary(contracts == nil, []dto.TenantContractBrief{}, contracts),
		Invoices:    []dto.TenantInvoiceBrief{},
	}
	if len(contracts) == 0 {
		return out, nil
	}

	var invs []invoiceModel.InvoiceModel
	if err := db.Where("invoice_contract_id IN ?", lo.Map(contracts, func(c dto.TenantContractBrief, _ int) uuid.UUID { return c.ContractID })).
		Order("invoice_period_year DESC, invoice_period_month DESC").
		Find(&invs).Error; err != nil {
		return nil, err
	}
	out.Invoices = lo.Map(invs, func(i invoiceModel.InvoiceModel, _ int) dto.TenantInvoiceBrief {
		return dto.TenantInvoiceBrief{
			InvoiceID:          i.InvoiceID,
			InvoiceCode:        i.InvoiceCode,
			InvoiceContractID:  i.InvoiceContractID,
			InvoicePeriodMonth: i.InvoicePeriodMonth,
			InvoicePeriodYear:  i.InvoicePeriodYear,
			InvoiceTotalAmount: i.InvoiceTotalAmount,
			InvoiceStatus:      i.InvoiceStatus,
			InvoiceDueDate:     i.InvoiceDueDate,
		}
	})
	out.TotalInvoices = len(invs)
	out.UnpaidInvoices = lo.CountBy(invs, func(i invoiceModel.InvoiceModel) bool {
		return i.InvoiceStatus != invoiceModel.InvoiceStatusPaid
	})
	return out, nil
}

func (s *TenantService) get(db *gorm.DB, id uuid.UUID) (*model.TenantModel, error) {
	var m model.TenantModel
	if err := db.Where("tenant_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return &m, nil
}

// ensureUserFree: user harus ada dan belum dipakai tenant lain (except = tenant yang di-update).
func ensureUserFree(tx *gorm.DB, userID, except uuid.UUID) error {
	var n int64
	if err := tx.Model(&userModel.UserModel{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	q := tx.Model(&model.TenantModel{}).Where("tenant_user_id = ?", userID)
	if except != uuid.Nil {
		q = q.Where("tenant_id <> ?", except)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return errUserLinked
	}
	return nil
}
