package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	invoiceModel "kostku_backend/internals/features/billing/invoices/model"
	paymentModel "kostku_backend/internals/features/billing/payments/model"
	roomModel "kostku_backend/internals/features/catalog/rooms/model"
	"kostku_backend/internals/features/tenancy/contracts/dto"
	"kostku_backend/internals/features/tenancy/contracts/model"
	tenantModel "kostku_backend/internals/features/tenancy/tenants/model"
	helper "kostku_backend/internals/helpers"
	"kostku_backend/internals/helpers/dbtime"
)

// ContractService: siklus hidup kontrak + efek ke status kamar.
// Perubahan kontrak dan status kamar selalu dalam satu transaksi.
type ContractService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewContractService(db *gorm.DB) *ContractService {
	return &ContractService{DB: db, Now: time.Now}
}

func (s *ContractService) today() dbtime.Date {
	if s.Now != nil {
		return dbtime.DateOf(s.Now())
	}
	return dbtime.DateOf(time.Now())
}

/* =========================================================
   WRITE
========================================================= */

func (s *ContractService) Create(ctx context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, error) {
	req.Normalize()
	m := req.ToModel()
	if err := validateDates(m.ContractStartDate, m.ContractEndDate); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCodeFree(tx, m.ContractCode, uuid.Nil); err != nil {
			return err
		}
		if err := lockRoom(tx, m.ContractRoomID, "Room not found"); err != nil {
			return err
		}
		if err := ensureTenant(tx, m.ContractMainTenantID, "Main tenant not found"); err != nil {
			return err
		}
		coTenants := normalizeCoTenants(req.TenantIDs, m.ContractMainTenantID)
		for _, id := range coTenants {
			if err := ensureTenant(tx, id, "Tenant not found with id: "+id.String()); err != nil {
				return err
			}
		}
		if m.ContractStatus == model.ContractStatusActive {
			if err := ensureNoOtherActive(tx, m.ContractRoomID, uuid.Nil); err != nil {
				return err
			}
		}

		if err := tx.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Contract code already exists: "+m.ContractCode)
			}
			return err
		}
		if err := replaceCoTenants(tx, m.ContractID, coTenants); err != nil {
			return err
		}
		if m.ContractStatus == model.ContractStatusActive {
			return setRoomStatus(tx, m.ContractRoomID, roomModel.RoomStatusOccupied)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] contract %s created (status=%s)", m.ContractCode, m.ContractStatus)
	return s.GetByID(ctx, m.ContractID)
}

func (s *ContractService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockContract(tx, id)
		if err != nil {
			return err
		}
		prev := *m
		req.Apply(m)

		if m.ContractCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Contract code is required")
		}
		if err := validateDates(m.ContractStartDate, m.ContractEndDate); err != nil {
			return err
		}
		if m.ContractCode != prev.ContractCode {
			if err := ensureCodeFree(tx, m.ContractCode, id); err != nil {
				return err
			}
		}
		if m.ContractRoomID != prev.ContractRoomID {
			if err := lockRoom(tx, m.ContractRoomID, "Room not found"); err != nil {
				return err
			}
		}
		if m.ContractMainTenantID != prev.ContractMainTenantID {
			if err := ensureTenant(tx, m.ContractMainTenantID, "Main tenant not found"); err != nil {
				return err
			}
		}
		if m.ContractStatus == model.ContractStatusActive {
			if err := ensureNoOtherActive(tx, m.ContractRoomID, id); err != nil {
				return err
			}
		}

		if err := tx.Model(&model.ContractModel{}).
			Where("contract_id = ?", id).
			Updates(map[string]any{
				"contract_code":           m.ContractCode,
				"contract_room_id":        m.ContractRoomID,
				"contract_main_tenant_id": m.ContractMainTenantID,
				"contract_start_date":     m.ContractStartDate,
				"contract_end_date":       m.ContractEndDate,
				"contract_deposit":        m.ContractDeposit,
				"contract_monthly_rent":   m.ContractMonthlyRent,
				"contract_status":         m.ContractStatus,
				"contract_billing_cycle":  m.ContractBillingCycle,
				"contract_updated_at":     time.Now(),
			}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Contract code already exists: "+m.ContractCode)
			}
			return err
		}

		if req.TenantIDs != nil {
			coTenants := normalizeCoTenants(*req.TenantIDs, m.ContractMainTenantID)
			for _, tid := range coTenants {
				if err := ensureTenant(tx, tid, "Tenant not found with id: "+tid.String()); err != nil {
					return err
				}
			}
			if err := replaceCoTenants(tx, id, coTenants); err != nil {
				return err
			}
		} else if m.ContractMainTenantID != prev.ContractMainTenantID {
			// main tenant baru tidak boleh sekaligus jadi co-tenant
			if err := tx.Where("contract_tenant_contract_id = ? AND contract_tenant_tenant_id = ?", id, m.ContractMainTenantID).
				Delete(&model.ContractTenantModel{}).Error; err != nil {
				return err
			}
		}

		// pindah kamar saat ACTIVE → kamar lama dikosongkan
		if prev.ContractStatus == model.ContractStatusActive && m.ContractRoomID != prev.ContractRoomID {
			if err := setRoomStatus(tx, prev.ContractRoomID, roomModel.RoomStatusAvailable); err != nil {
				return err
			}
		}
		switch {
		case m.ContractStatus == model.ContractStatusActive:
			return setRoomStatus(tx, m.ContractRoomID, roomModel.RoomStatusOccupied)
		case m.ContractStatus.Ends():
			return setRoomStatus(tx, m.ContractRoomID, roomModel.RoomStatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Terminate: status jadi TERMINATED apapun status sebelumnya, kamar dikosongkan.
// date nil → hari ini.
func (s *ContractService) Terminate(ctx context.Context, id uuid.UUID, reason string, date *dbtime.Date) (*dto.ContractResponse, error) {
	when := lo.FromPtrOr(date, s.today())
	reason = strings.TrimSpace(reason)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockContract(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.ContractModel{}).
			Where("contract_id = ?", id).
			Updates(map[string]any{
				"contract_status":             model.ContractStatusTerminated,
				"contract_termination_reason": reason,
				"contract_termination_date":   when,
				"contract_updated_at":         time.Now(),
			}).Error; err != nil {
			return err
		}
		return setRoomStatus(tx, m.ContractRoomID, roomModel.RoomStatusAvailable)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] contract %s terminated on %s", id, when)
	return s.GetByID(ctx, id)
}

// Delete: ditolak kalau sudah ada invoice (riwayat tagihan tidak boleh yatim).
func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockContract(tx, id)
		if err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&invoiceModel.InvoiceModel{}).
			Where("invoice_contract_id = ?", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot delete contract with invoices")
		}

		if err := tx.Where("contract_tenant_contract_id = ?", id).
			Delete(&model.ContractTenantModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contract_id = ?", id).Delete(&model.ContractModel{}).Error; err != nil {
			return err
		}
		if m.ContractStatus == model.ContractStatusActive {
			return setRoomStatus(tx, m.ContractRoomID, roomModel.RoomStatusAvailable)
		}
		return nil
	})
}

/* =========================================================
   READ
========================================================= */

var contractSortColumns = map[string]string{
	"created_at": "contract_created_at",
	"code":       "contract_code",
	"start_date": "contract_start_date",
	"end_date":   "contract_end_date",
	"rent":       "contract_monthly_rent",
}

func (s *ContractService) List(ctx context.Context, q dto.ListContractQuery, p helper.Params) ([]dto.ContractResponse, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.ContractModel{})
	if q.Status != nil {
		db = db.Where("contract_status = ?", *q.Status)
	}
	if q.RoomID != nil {
		db = db.Where("contract_room_id = ?", *q.RoomID)
	}
	if q.TenantID != nil {
		db = db.Where(`contract_main_tenant_id = ? OR contract_id IN (
			SELECT contract_tenant_contract_id FROM contract_tenants WHERE contract_tenant_tenant_id = ?)`,
			*q.TenantID, *q.TenantID)
	}
	if kw := strings.TrimSpace(q.Search); kw != "" {
		db = db.Where("LOWER(contract_code) LIKE ?", "%"+strings.ToLower(kw)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.ContractModel
	if err := db.Order(p.OrderClause(contractSortColumns, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out, err := toResponses(s.DB.WithContext(ctx), rows)
	return out, total, err
}

func (s *ContractService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ContractResponse, error) {
	db := s.DB.WithContext(ctx)
	var m model.ContractModel
	if err := db.Where("contract_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Contract not found with id: "+id.String())
		}
		return nil, err
	}
	out, err := toResponses(db, []model.ContractModel{m})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Detail: kontrak + penyewa, invoice, sisa hari, dan nama kos.
func (s *ContractService) Detail(ctx context.Context, id uuid.UUID) (*dto.ContractDetailResponse, error) {
	base, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	var bhName string
	if err := db.Table("rooms AS r").
		Select("bh.boarding_house_name").
		Joins("JOIN boarding_houses AS bh ON bh.boarding_house_id = r.room_boarding_house_id").
		Where("r.room_id = ?", base.ContractRoomID).
		Scan(&bhName).Error; err != nil {
		return nil, err
	}

	ids := append([]uuid.UUID{base.ContractMainTenantID}, base.ContractTenantIDs...)
	var tenants []tenantModel.TenantModel
	if err := db.Where("tenant_id IN ?", ids).Find(&tenants).Error; err != nil {
		return nil, err
	}
	byID := lo.KeyBy(tenants, func(t tenantModel.TenantModel) uuid.UUID { return t.TenantID })

	out := &dto.ContractDetailResponse{
		ContractResponse:  *base,
		BoardingHouseName: bhName,
		Tenants:           make([]dto.ContractTenantResponse, 0, len(ids)),
	}
	if main, ok := byID[base.ContractMainTenantID]; ok {
		out.MainTenantPhone = main.TenantPhone
		out.MainTenantEmail = main.TenantEmail
	}
	for i, tid := range ids {
		t, ok := byID[tid]
		if !ok {
			continue
		}
		out.Tenants = append(out.Tenants, dto.ContractTenantResponse{
			TenantID:             t.TenantID,
			TenantFullName:       t.TenantFullName,
			TenantPhone:          t.TenantPhone,
			TenantEmail:          t.TenantEmail,
			TenantIdentityNumber: t.TenantIdentityNumber,
			TenantDateOfBirth:    t.TenantDateOfBirth,
			TenantStatus:         string(t.TenantStatus),
			IsMainTenant:         i == 0,
		})
	}

	if out.Invoices, err = contractInvoices(db, id); err != nil {
		return nil, err
	}

	if base.ContractStatus == model.ContractStatusActive {
		days := max(s.today().DaysUntil(base.ContractEndDate), 0)
		out.DaysRemaining = &days
	}
	return out, nil
}

func contractInvoices(db *gorm.DB, contractID uuid.UUID) ([]dto.ContractInvoiceResponse, error) {
	var invs []invoiceModel.InvoiceModel
	if err := db.Where("invoice_contract_id = ?", contractID).
		Order("invoice_period_year DESC, invoice_period_month DESC").
		Find(&invs).Error; err != nil {
		return nil, err
	}
	if len(invs) == 0 {
		return []dto.ContractInvoiceResponse{}, nil
	}

	var pays []paymentModel.PaymentModel
	if err := db.Select("payment_id", "payment_invoice_id", "payment_paid_amount").
		Where("payment_invoice_id IN ?", lo.Map(invs, func(i invoiceModel.InvoiceModel, _ int) uuid.UUID { return i.InvoiceID })).
		Find(&pays).Error; err != nil {
		return nil, err
	}
	paid := make(map[uuid.UUID]decimal.Decimal, len(invs))
	for _, p := range pays {
		paid[p.PaymentInvoiceID] = paid[p.PaymentInvoiceID].Add(p.PaymentPaidAmount)
	}

	return lo.Map(invs, func(i invoiceModel.InvoiceModel, _ int) dto.ContractInvoiceResponse {
		return dto.ContractInvoiceResponse{
			InvoiceID:          i.InvoiceID,
			InvoiceCode:        i.InvoiceCode,
			InvoicePeriodMonth: i.InvoicePeriodMonth,
			InvoicePeriodYear:  i.InvoicePeriodYear,
			InvoiceTotalAmount: i.InvoiceTotalAmount,
			InvoicePaidAmount:  paid[i.InvoiceID],
			InvoiceStatus:      i.InvoiceStatus,
			InvoiceDueDate:     i.InvoiceDueDate,
		}
	}), nil
}

// toResponses: batch lookup kode kamar, nama penyewa utama, dan co-tenant.
func toResponses(db *gorm.DB, rows []model.ContractModel) ([]dto.ContractResponse, error) {
	if len(rows) == 0 {
		return []dto.ContractResponse{}, nil
	}
	ids := lo.Map(rows, func(m model.ContractModel, _ int) uuid.UUID { return m.ContractID })
	roomIDs := lo.Uniq(lo.Map(rows, func(m model.ContractModel, _ int) uuid.UUID { return m.ContractRoomID }))
	tenantIDs := lo.Uniq(lo.Map(rows, func(m model.ContractModel, _ int) uuid.UUID { return m.ContractMainTenantID }))

	type kv struct {
		ID    uuid.UUID `gorm:"column:id"`
		Value string    `gorm:"column:value"`
	}
	var rooms, tenants []kv
	if err := db.Table("rooms").Select("room_id AS id, room_code AS value").
		Where("room_id IN ?", roomIDs).Scan(&rooms).Error; err != nil {
		return nil, err
	}
	if err := db.Table("tenants").Select("tenant_id AS id, tenant_full_name AS value").
		Where("tenant_id IN ?", tenantIDs).Scan(&tenants).Error; err != nil {
		return nil, err
	}
	toPair := func(r kv) (uuid.UUID, string) { return r.ID, r.Value }
	roomCode := lo.SliceToMap(rooms, toPair)
	tenantName := lo.SliceToMap(tenants, toPair)

	var links []model.ContractTenantModel
	if err := db.Where("contract_tenant_contract_id IN ?", ids).
		Find(&links).Error; err != nil {
		return nil, err
	}
	coBy := make(map[uuid.UUID][]uuid.UUID, len(rows))
	for _, l := range links {
		coBy[l.ContractTenantContractID] = append(coBy[l.ContractTenantContractID], l.ContractTenantTenantID)
	}

	return lo.Map(rows, func(m model.ContractModel, _ int) dto.ContractResponse {
		return dto.ToContractResponse(m, roomCode[m.ContractRoomID], tenantName[m.ContractMainTenantID], coBy[m.ContractID])
	}), nil
}

/* =========================================================
   HELPERS (dipakai di dalam tx)
========================================================= */

func validateDates(start, end dbtime.Date) error {
	if start.IsZero() || end.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "Start date and end date are required")
	}
	if end.Before(start) {
		return fiber.NewError(fiber.StatusBadRequest, "End date must not be before start date")
	}
	return nil
}

func lockContract(tx *gorm.DB, id uuid.UUID) (*model.ContractModel, error) {
	var m model.ContractModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("contract_id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Contract not found with id: "+id.String())
		}
		return nil, err
	}
	return &m, nil
}

// lockRoom: kunci baris kamar supaya cek "satu kontrak ACTIVE per kamar" tidak balapan.
func lockRoom(tx *gorm.DB, roomID uuid.UUID, notFound string) error {
	var r roomModel.RoomModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("room_id").
		Where("room_id = ?", roomID).
		First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, notFound)
		}
		return err
	}
	return nil
}

func ensureTenant(tx *gorm.DB, tenantID uuid.UUID, notFound string) error {
	var n int64
	if err := tx.Model(&tenantModel.TenantModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, notFound)
	}
	return nil
}

// ensureCodeFree: except = kontrak yang sedang di-update (uuid.Nil saat create)
func ensureCodeFree(tx *gorm.DB, code string, except uuid.UUID) error {
	var n int64
	q := tx.Model(&model.ContractModel{}).Where("contract_code = ?", code)
	if except != uuid.Nil {
		q = q.Where("contract_id <> ?", except)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Contract code already exists: "+code)
	}
	return nil
}

func ensureNoOtherActive(tx *gorm.DB, roomID, except uuid.UUID) error {
	var n int64
	q := tx.Model(&model.ContractModel{}).
		Where("contract_room_id = ? AND contract_status = ?", roomID, model.ContractStatusActive)
	if except != uuid.Nil {
		q = q.Where("contract_id <> ?", except)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Room already has an active contract")
	}
	return nil
}

// normalizeCoTenants: buang duplikat dan main tenant dari daftar co-tenant
func normalizeCoTenants(ids []uuid.UUID, mainTenantID uuid.UUID) []uuid.UUID {
	return lo.Without(lo.Uniq(ids), mainTenantID, uuid.Nil)
}

func replaceCoTenants(tx *gorm.DB, contractID uuid.UUID, tenantIDs []uuid.UUID) error {
	if err := tx.Where("contract_tenant_contract_id = ?", contractID).
		Delete(&model.ContractTenantModel{}).Error; err != nil {
		return err
	}
	if len(tenantIDs) == 0 {
		return nil
	}
	links := lo.Map(tenantIDs, func(tid uuid.UUID, _ int) model.ContractTenantModel {
		return model.ContractTenantModel{ContractTenantContractID: contractID, ContractTenantTenantID: tid}
	})
	return tx.Create(&links).Error
}

func setRoomStatus(tx *gorm.DB, roomID uuid.UUID, st roomModel.RoomStatus) error {
	return tx.Model(&roomModel.RoomModel{}).
		Where("room_id = ?", roomID).
		Updates(map[string]any{
			"room_status":     st,
			"room_updated_at": time.Now(),
		}).Error
}
