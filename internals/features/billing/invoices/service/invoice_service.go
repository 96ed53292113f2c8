package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kostku_backend/internals/features/billing/invoices/dto"
	"kostku_backend/internals/features/billing/invoices/model"
	paymentModel "kostku_backend/internals/features/billing/payments/model"
	serviceTypeModel "kostku_backend/internals/features/catalog/service_types/model"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	helper "kostku_backend/internals/helpers"
	"kostku_backend/internals/helpers/dbtime"
)

const (
	rentDescription = "Monthly Rent"

	minPeriodYear = 2000
	maxPeriodYear = 9999
)

// InvoiceService: pembuatan invoice bulanan + perhitungan status pembayaran.
// Now bisa diganti di test supaya OVERDUE deterministik.
type InvoiceService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db, Now: time.Now}
}

func (s *InvoiceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *InvoiceService) today() dbtime.Date {
	return dbtime.DateOf(s.now())
}

// roomServiceLine: room_services JOIN service_types untuk satu kamar
type roomServiceLine struct {
	ServiceTypeID   uuid.UUID                        `gorm:"column:service_type_id"`
	ServiceTypeName string                           `gorm:"column:service_type_name"`
	Category        serviceTypeModel.ServiceCategory `gorm:"column:service_type_category"`
	DefaultPrice    decimal.Decimal                  `gorm:"column:service_type_price_per_unit"`
	PricePerUnit    *decimal.Decimal                 `gorm:"column:room_service_price_per_unit"`
	FixedPrice      *decimal.Decimal                 `gorm:"column:room_service_fixed_price"`
}

// unitPrice: override kamar dulu, lalu harga default service type
func (l roomServiceLine) unitPrice() decimal.Decimal {
	if l.Category.IsMetered() {
		if l.PricePerUnit != nil {
			return *l.PricePerUnit
		}
		return l.DefaultPrice
	}
	if l.FixedPrice != nil {
		return *l.FixedPrice
	}
	return l.DefaultPrice
}

/* =========================================================
   GENERATE
========================================================= */

// Generate: jalur sederhana tanpa meteran. Layanan metered ikut jadi item
// dengan qty 0 (tidak menambah total).
func (s *InvoiceService) Generate(ctx context.Context, contractID uuid.UUID, month, year int) (*dto.InvoiceResponse, error) {
	return s.generate(ctx, contractID, month, year, nil)
}

// GenerateWithReadings: qty layanan metered = new - old dari readings.
func (s *InvoiceService) GenerateWithReadings(ctx context.Context, contractID uuid.UUID, month, year int, readings []model.MeterReading) (*dto.InvoiceResponse, error) {
	if readings == nil {
		readings = []model.MeterReading{}
	}
	return s.generate(ctx, contractID, month, year, readings)
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return fiber.NewError(fiber.StatusBadRequest, "Month must be between 1 and 12")
	}
	if year < minPeriodYear || year > maxPeriodYear {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Year must be between %d and %d", minPeriodYear, maxPeriodYear))
	}
	return nil
}

func InvoiceCode(contractCode string, month, year int) string {
	return fmt.Sprintf("INV-%s-%02d-%d", contractCode, month, year)
}

// readings == nil → jalur tanpa meteran
func (s *InvoiceService) generate(ctx context.Context, contractID uuid.UUID, month, year int, readings []model.MeterReading) (*dto.InvoiceResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	byType := make(map[uuid.UUID]model.MeterReading, len(readings))
	for _, r := range readings {
		if _, dup := byType[r.ServiceTypeID]; dup {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Duplicate reading for service type "+r.ServiceTypeID.String())
		}
		if r.OldIndex.IsNegative() || r.NewIndex.IsNegative() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Meter index must not be negative")
		}
		if !model.FitsScale(r.OldIndex, model.IndexScale) || !model.FitsScale(r.NewIndex, model.IndexScale) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Meter index must have at most 3 decimal places")
		}
		byType[r.ServiceTypeID] = r
	}

	var out dto.InvoiceResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 🔒 kunci kontrak: generate paralel untuk kontrak yang sama jadi antri
		var ct contractModel.ContractModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("contract_id = ?", contractID).
			First(&ct).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Contract not found")
			}
			return err
		}
		if ct.ContractStatus != contractModel.ContractStatusActive {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot generate invoice for non-active contract")
		}

		var existing int64
		if err := tx.Model(&model.InvoiceModel{}).
			Where("invoice_contract_id = ? AND invoice_period_month = ? AND invoice_period_year = ?", ct.ContractID, month, year).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invoice already exists for this period")
		}

		lines, err := loadRoomServiceLines(tx, ct.ContractRoomID)
		if err != nil {
			return err
		}

		items, err := buildItems(ct.ContractMonthlyRent, lines, byType)
		if err != nil {
			return err
		}
		total := sumItems(items)

		inv := model.InvoiceModel{
			InvoiceCode:        InvoiceCode(ct.ContractCode, month, year),
			InvoiceContractID:  ct.ContractID,
			InvoiceRoomID:      ct.ContractRoomID,
			InvoicePeriodMonth: month,
			InvoicePeriodYear:  year,
			InvoiceTotalAmount: total,
			InvoiceStatus:      model.InvoiceStatusUnpaid,
			InvoiceDueDate:     dbtime.LastDayOfMonth(year, month),
			InvoiceCreatedDate: s.today(),
		}
		if readings != nil {
			raw, err := sonic.Marshal(readings)
			if err != nil {
				return err
			}
			inv.InvoiceReadings = datatypes.JSON(raw)
		}

		if err := tx.Create(&inv).Error; err != nil {
			// race: insert paralel lolos cek di atas, unique index yang menangkap
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Invoice already exists for this period")
			}
			return err
		}

		for i := range items {
			items[i].InvoiceItemInvoiceID = inv.InvoiceID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		var roomCode string
		if err := tx.Table("rooms").Select("room_code").
			Where("room_id = ?", ct.ContractRoomID).
			Scan(&roomCode).Error; err != nil {
			return err
		}

		out = dto.ToInvoiceResponse(inv, items, ct.ContractCode, roomCode, decimal.Zero)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] invoice %s generated (total=%s)", out.InvoiceCode, out.InvoiceTotalAmount.String())
	return &out, nil
}

func loadRoomServiceLines(tx *gorm.DB, roomID uuid.UUID) ([]roomServiceLine, error) {
	var lines []roomServiceLine
	err := tx.Table("room_services AS rs").
		Select(`st.service_type_id, st.service_type_name, st.service_type_category,
			st.service_type_price_per_unit, rs.room_service_price_per_unit, rs.room_service_fixed_price`).
		Joins("JOIN service_types AS st ON st.service_type_id = rs.room_service_service_type_id").
		Where("rs.room_service_room_id = ?", roomID).
		Order("rs.room_service_created_at ASC, st.service_type_name ASC").
		Scan(&lines).Error
	return lines, err
}

// buildItems: item sewa dulu, lalu satu item per layanan kamar.
// byType == nil/kosong → semua layanan metered qty 0.
// Harga & amount dibulatkan ke 2 desimal di sini, jadi total = Σ amount yang tersimpan.
func buildItems(monthlyRent decimal.Decimal, lines []roomServiceLine, byType map[uuid.UUID]model.MeterReading) ([]model.InvoiceItemModel, error) {
	monthlyRent = monthlyRent.Round(model.AmountScale)
	items := make([]model.InvoiceItemModel, 0, len(lines)+1)
	items = append(items, model.InvoiceItemModel{
		InvoiceItemPosition:    0,
		InvoiceItemDescription: rentDescription,
		InvoiceItemType:        model.ItemTypeRent,
		InvoiceItemQuantity:    decimal.NewFromInt(1),
		InvoiceItemUnitPrice:   monthlyRent,
		InvoiceItemAmount:      monthlyRent,
	})

	for i, l := range lines {
		price := l.unitPrice().Round(model.AmountScale)
		item := model.InvoiceItemModel{
			InvoiceItemPosition:      i + 1,
			InvoiceItemDescription:   l.ServiceTypeName,
			InvoiceItemType:          model.ItemTypeService,
			InvoiceItemServiceTypeID: lo.ToPtr(l.ServiceTypeID),
			InvoiceItemUnitPrice:     price,
		}

		switch {
		case !l.Category.IsMetered():
			// FIXED: harga flat, reading (kalau ada) diabaikan
			item.InvoiceItemQuantity = decimal.NewFromInt(1)
			item.InvoiceItemAmount = price
		default:
			r, ok := byType[l.ServiceTypeID]
			if !ok {
				item.InvoiceItemQuantity = decimal.Zero
				item.InvoiceItemAmount = decimal.Zero
				break
			}
			if r.NewIndex.LessThan(r.OldIndex) {
				return nil, fiber.NewError(fiber.StatusBadRequest,
					"New index must be greater than or equal to old index for service type "+l.ServiceTypeName)
			}
			qty := r.NewIndex.Sub(r.OldIndex)
			item.InvoiceItemQuantity = qty
			item.InvoiceItemAmount = qty.Mul(price).Round(model.AmountScale)
			item.InvoiceItemOldIndex = lo.ToPtr(r.OldIndex)
			item.InvoiceItemNewIndex = lo.ToPtr(r.NewIndex)
		}
		items = append(items, item)
	}
	return items, nil
}

func sumItems(items []model.InvoiceItemModel) decimal.Decimal {
	return lo.Reduce(items, func(acc decimal.Decimal, it model.InvoiceItemModel, _ int) decimal.Decimal {
		return acc.Add(it.InvoiceItemAmount)
	}, decimal.Zero)
}

/* =========================================================
   STATUS
========================================================= */

// ComputeStatus: fungsi murni dari (total, terbayar, jatuh tempo, hari ini).
// OVERDUE menimpa UNPAID/PARTIALLY_PAID, tidak pernah PAID.
func ComputeStatus(total, paid decimal.Decimal, due, today dbtime.Date) model.InvoiceStatus {
	var st model.InvoiceStatus
	switch {
	case paid.IsZero():
		st = model.InvoiceStatusUnpaid
	case paid.GreaterThanOrEqual(total):
		st = model.InvoiceStatusPaid
	default:
		st = model.InvoiceStatusPartiallyPaid
	}
	if st != model.InvoiceStatusPaid && today.After(due) {
		st = model.InvoiceStatusOverdue
	}
	return st
}

// SumPaid: total pembayaran invoice, dijumlah di Go (decimal, tanpa SUM float).
func SumPaid(tx *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var rows []paymentModel.PaymentModel
	if err := tx.Select("payment_id", "payment_paid_amount").
		Where("payment_invoice_id = ?", invoiceID).
		Find(&rows).Error; err != nil {
		return decimal.Zero, err
	}
	return lo.Reduce(rows, func(acc decimal.Decimal, p paymentModel.PaymentModel, _ int) decimal.Decimal {
		return acc.Add(p.PaymentPaidAmount)
	}, decimal.Zero), nil
}

// UpdateStatus menghitung ulang status invoice di dalam tx pemanggil.
// tx nil → pakai koneksi service.
func (s *InvoiceService) UpdateStatus(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID) (model.InvoiceStatus, error) {
	if tx == nil {
		tx = s.DB.WithContext(ctx)
	}

	var inv model.InvoiceModel
	if err := tx.Where("invoice_id = ?", invoiceID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}
		return "", err
	}

	paid, err := SumPaid(tx, invoiceID)
	if err != nil {
		return "", err
	}

	st := ComputeStatus(inv.InvoiceTotalAmount, paid, inv.InvoiceDueDate, s.today())
	if st == inv.InvoiceStatus {
		return st, nil
	}
	if err := tx.Model(&model.InvoiceModel{}).
		Where("invoice_id = ?", invoiceID).
		Updates(map[string]any{
			"invoice_status":     st,
			"invoice_updated_at": s.now(),
		}).Error; err != nil {
		return "", err
	}
	return st, nil
}

// RecomputeStatus: UpdateStatus dalam transaksi sendiri + row lock invoice.
func (s *InvoiceService) RecomputeStatus(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceResponse, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := LockInvoice(tx, invoiceID); err != nil {
			return err
		}
		_, err := s.UpdateStatus(ctx, tx, invoiceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, invoiceID)
}

// LockInvoice: SELECT ... FOR UPDATE pada baris invoice; 404 kalau tidak ada.
func LockInvoice(tx *gorm.DB, invoiceID uuid.UUID) error {
	var inv model.InvoiceModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("invoice_id").
		Where("invoice_id = ?", invoiceID).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}
		return err
	}
	return nil
}

/* =========================================================
   READ
========================================================= */

var invoiceSortColumns = map[string]string{
	"created_at": "invoice_created_at",
	"due_date":   "invoice_due_date",
	"period":     "invoice_period_year, invoice_period_month",
	"total":      "invoice_total_amount",
	"code":       "invoice_code",
}

func (s *InvoiceService) List(ctx context.Context, q dto.ListInvoiceQuery, p helper.Params) ([]dto.InvoiceResponse, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.InvoiceModel{})
	if q.Status != nil {
		db = db.Where("invoice_status = ?", *q.Status)
	}
	if q.ContractID != nil {
		db = db.Where("invoice_contract_id = ?", *q.ContractID)
	}
	if q.RoomID != nil {
		db = db.Where("invoice_room_id = ?", *q.RoomID)
	}
	if q.PeriodMonth != nil {
		db = db.Where("invoice_period_month = ?", *q.PeriodMonth)
	}
	if q.PeriodYear != nil {
		db = db.Where("invoice_period_year = ?", *q.PeriodYear)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.InvoiceModel
	if err := db.Order(p.OrderClause(invoiceSortColumns, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out, err := s.toResponses(s.DB.WithContext(ctx), rows)
	return out, total, err
}

func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	db := s.DB.WithContext(ctx)
	var inv model.InvoiceModel
	if err := db.Where("invoice_id = ?", id).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Invoice not found with id: "+id.String())
		}
		return nil, err
	}
	out, err := s.toResponses(db, []model.InvoiceModel{inv})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *InvoiceService) ListByContract(ctx context.Context, contractID uuid.UUID) ([]dto.InvoiceResponse, error) {
	db := s.DB.WithContext(ctx)
	var rows []model.InvoiceModel
	if err := db.Where("invoice_contract_id = ?", contractID).
		Order("invoice_period_year DESC, invoice_period_month DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return s.toResponses(db, rows)
}

// GetDetail: invoice + nama kos, penyewa utama, dan riwayat pembayaran.
func (s *InvoiceService) GetDetail(ctx context.Context, id uuid.UUID) (*dto.InvoiceDetailResponse, error) {
	base, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	var head struct {
		BoardingHouseName string  `gorm:"column:boarding_house_name"`
		TenantFullName    string  `gorm:"column:tenant_full_name"`
		TenantPhone       *string `gorm:"column:tenant_phone"`
	}
	if err := db.Table("contracts AS c").
		Select("bh.boarding_house_name, t.tenant_full_name, t.tenant_phone").
		Joins("JOIN rooms AS r ON r.room_id = c.contract_room_id").
		Joins("JOIN boarding_houses AS bh ON bh.boarding_house_id = r.room_boarding_house_id").
		Joins("JOIN tenants AS t ON t.tenant_id = c.contract_main_tenant_id").
		Where("c.contract_id = ?", base.InvoiceContractID).
		Scan(&head).Error; err != nil {
		return nil, err
	}

	var pays []paymentModel.PaymentModel
	if err := db.Where("payment_invoice_id = ?", id).
		Order("payment_date ASC").
		Find(&pays).Error; err != nil {
		return nil, err
	}

	return &dto.InvoiceDetailResponse{
		InvoiceResponse:   *base,
		BoardingHouseName: head.BoardingHouseName,
		MainTenantName:    head.TenantFullName,
		MainTenantPhone:   head.TenantPhone,
		Payments: lo.Map(pays, func(p paymentModel.PaymentModel, _ int) dto.InvoicePaymentResponse {
			return dto.InvoicePaymentResponse{
				PaymentID:              p.PaymentID,
				PaymentPaidAmount:      p.PaymentPaidAmount,
				PaymentDate:            p.PaymentDate,
				PaymentMethod:          string(p.PaymentMethod),
				PaymentNote:            p.PaymentNote,
				PaymentTransactionCode: p.PaymentTransactionCode,
			}
		}),
	}, nil
}

// toResponses: batch lookup items, kode kontrak/kamar, dan total terbayar.
func (s *InvoiceService) toResponses(db *gorm.DB, rows []model.InvoiceModel) ([]dto.InvoiceResponse, error) {
	if len(rows) == 0 {
		return []dto.InvoiceResponse{}, nil
	}
	ids := lo.Map(rows, func(r model.InvoiceModel, _ int) uuid.UUID { return r.InvoiceID })
	contractIDs := lo.Uniq(lo.Map(rows, func(r model.InvoiceModel, _ int) uuid.UUID { return r.InvoiceContractID }))
	roomIDs := lo.Uniq(lo.Map(rows, func(r model.InvoiceModel, _ int) uuid.UUID { return r.InvoiceRoomID }))

	var items []model.InvoiceItemModel
	if err := db.Where("invoice_item_invoice_id IN ?", ids).
		Order("invoice_item_position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	itemsBy := lo.GroupBy(items, func(it model.InvoiceItemModel) uuid.UUID { return it.InvoiceItemInvoiceID })

	var pays []paymentModel.PaymentModel
	if err := db.Select("payment_id", "payment_invoice_id", "payment_paid_amount").
		Where("payment_invoice_id IN ?", ids).
		Find(&pays).Error; err != nil {
		return nil, err
	}
	paidBy := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, p := range pays {
		paidBy[p.PaymentInvoiceID] = paidBy[p.PaymentInvoiceID].Add(p.PaymentPaidAmount)
	}

	type codeRow struct {
		ID   uuid.UUID `gorm:"column:id"`
		Code string    `gorm:"column:code"`
	}
	var contracts, rooms []codeRow
	if err := db.Table("contracts").Select("contract_id AS id, contract_code AS code").
		Where("contract_id IN ?", contractIDs).Scan(&contracts).Error; err != nil {
		return nil, err
	}
	if err := db.Table("rooms").Select("room_id AS id, room_code AS code").
		Where("room_id IN ?", roomIDs).Scan(&rooms).Error; err != nil {
		return nil, err
	}
	toCode := func(r codeRow) (uuid.UUID, string) { return r.ID, r.Code }
	contractCode := lo.SliceToMap(contracts, toCode)
	roomCode := lo.SliceToMap(rooms, toCode)

	return lo.Map(rows, func(inv model.InvoiceModel, _ int) dto.InvoiceResponse {
		return dto.ToInvoiceResponse(inv, itemsBy[inv.InvoiceID],
			contractCode[inv.InvoiceContractID], roomCode[inv.InvoiceRoomID], paidBy[inv.InvoiceID])
	}), nil
}
