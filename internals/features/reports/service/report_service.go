package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	invoiceModel "kostku_backend/internals/features/billing/invoices/model"
	paymentModel "kostku_backend/internals/features/billing/payments/model"
	roomModel "kostku_backend/internals/features/catalog/rooms/model"
	"kostku_backend/internals/features/reports/dto"
	contractModel "kostku_backend/internals/features/tenancy/contracts/model"
	tenantModel "kostku_backend/internals/features/tenancy/tenants/model"
	"kostku_backend/internals/helpers/dbtime"
)

// ReportService: query read-only untuk dashboard & laporan.
// Semua penjumlahan uang dilakukan di Go (decimal), bukan SUM di SQL.
type ReportService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db, Now: time.Now}
}

func (s *ReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

/* =========================================================
   DASHBOARD
========================================================= */

func (s *ReportService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	db := s.DB.WithContext(ctx)
	var out dto.DashboardResponse

	type statusCount struct {
		Status string `gorm:"column:status"`
		N      int64  `gorm:"column:n"`
	}
	var rooms []statusCount
	if err := db.Model(&roomModel.RoomModel{}).
		Select("room_status AS status, COUNT(*) AS n").
		Group("room_status").
		Scan(&rooms).Error; err != nil {
		return nil, err
	}
	for _, r := range rooms {
		out.TotalRooms += r.N
		switch roomModel.RoomStatus(r.Status) {
		case roomModel.RoomStatusOccupied:
			out.OccupiedRooms = r.N
		case roomModel.RoomStatusAvailable:
			out.AvailableRooms = r.N
		case roomModel.RoomStatusMaintenance:
			out.MaintenanceRooms = r.N
		}
	}

	if err := db.Model(&tenantModel.TenantModel{}).
		Where("tenant_status = ?", tenantModel.TenantStatusActive).
		Count(&out.TotalTenants).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&contractModel.ContractModel{}).
		Where("contract_status = ?", contractModel.ContractStatusActive).
		Count(&out.ActiveContracts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&invoiceModel.InvoiceModel{}).
		Where("invoice_status = ?", invoiceModel.InvoiceStatusOverdue).
		Count(&out.OverdueInvoices).Error; err != nil {
		return nil, err
	}

	// pendapatan bulan berjalan: pembayaran pada invoice PAID periode ini
	now := s.now()
	var paidThisMonth []invoiceModel.InvoiceModel
	if err := db.Select("invoice_id").
		Where("invoice_period_year = ? AND invoice_period_month = ? AND invoice_status = ?",
			now.Year(), int(now.Month()), invoiceModel.InvoiceStatusPaid).
		Find(&paidThisMonth).Error; err != nil {
		return nil, err
	}
	paid, err := paidByInvoice(db, invoiceIDs(paidThisMonth))
	if err != nil {
		return nil, err
	}
	out.MonthlyRevenue = sumMap(paid)

	// sisa tagihan invoice UNPAID
	var unpaid []invoiceModel.InvoiceModel
	if err := db.Select("invoice_id", "invoice_total_amount").
		Where("invoice_status = ?", invoiceModel.InvoiceStatusUnpaid).
		Find(&unpaid).Error; err != nil {
		return nil, err
	}
	paid, err = paidByInvoice(db, invoiceIDs(unpaid))
	if err != nil {
		return nil, err
	}
	out.UnpaidAmount = lo.Reduce(unpaid, func(acc decimal.Decimal, i invoiceModel.InvoiceModel, _ int) decimal.Decimal {
		return acc.Add(i.InvoiceTotalAmount.Sub(paid[i.InvoiceID]))
	}, decimal.Zero)

	return &out, nil
}

/* =========================================================
   REVENUE
========================================================= */

// RevenueByMonth: hanya bulan yang punya invoice, urut bulan.
func (s *ReportService) RevenueByMonth(ctx context.Context, year int) ([]dto.RevenueByMonth, error) {
	db := s.DB.WithContext(ctx)
	var invs []invoiceModel.InvoiceModel
	if err := db.Where("invoice_period_year = ?", year).Find(&invs).Error; err != nil {
		return nil, err
	}
	paid, err := paidByInvoice(db, invoiceIDs(invs))
	if err != nil {
		return nil, err
	}

	byMonth := lo.GroupBy(invs, func(i invoiceModel.InvoiceModel) int { return i.InvoicePeriodMonth })
	out := make([]dto.RevenueByMonth, 0, len(byMonth))
	for month, list := range byMonth {
		rev, paidCount := revenueOf(list, paid)
		out = append(out, dto.RevenueByMonth{
			Month:            month,
			Year:             year,
			TotalRevenue:     rev,
			InvoiceCount:     len(list),
			PaidInvoiceCount: paidCount,
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Month < out[b].Month })
	return out, nil
}

// RevenueByBoardingHouse: invoice difilter via tanggal 1 periodenya; from/to nil = tanpa batas.
func (s *ReportService) RevenueByBoardingHouse(ctx context.Context, from, to *dbtime.Date) ([]dto.RevenueByBoardingHouse, error) {
	db := s.DB.WithContext(ctx)

	type row struct {
		invoiceModel.InvoiceModel
		BoardingHouseID   uuid.UUID `gorm:"column:boarding_house_id"`
		BoardingHouseName string    `gorm:"column:boarding_house_name"`
	}
	var rows []row
	if err := db.Table("invoices AS i").
		Select("i.*, bh.boarding_house_id, bh.boarding_house_name").
		Joins("JOIN rooms AS r ON r.room_id = i.invoice_room_id").
		Joins("JOIN boarding_houses AS bh ON bh.boarding_house_id = r.room_boarding_house_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	rows = lo.Filter(rows, func(r row, _ int) bool {
		first := dbtime.NewDate(r.InvoicePeriodYear, time.Month(r.InvoicePeriodMonth), 1)
		if from != nil && first.Before(*from) {
			return false
		}
		if to != nil && first.After(*to) {
			return false
		}
		return true
	})

	paid, err := paidByInvoice(db, lo.Map(rows, func(r row, _ int) uuid.UUID { return r.InvoiceID }))
	if err != nil {
		return nil, err
	}

	type roomCount struct {
		ID uuid.UUID `gorm:"column:id"`
		N  int64     `gorm:"column:n"`
	}
	var counts []roomCount
	if err := db.Model(&roomModel.RoomModel{}).
		Select("room_boarding_house_id AS id, COUNT(*) AS n").
		Group("room_boarding_house_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	roomsBy := lo.SliceToMap(counts, func(c roomCount) (uuid.UUID, int64) { return c.ID, c.N })

	byHouse := lo.GroupBy(rows, func(r row) uuid.UUID { return r.BoardingHouseID })
	out := make([]dto.RevenueByBoardingHouse, 0, len(byHouse))
	for id, list := range byHouse {
		invs := lo.Map(list, func(r row, _ int) invoiceModel.InvoiceModel { return r.InvoiceModel })
		rev, paidCount := revenueOf(invs, paid)
		out = append(out, dto.RevenueByBoardingHouse{
			BoardingHouseID:   id,
			BoardingHouseName: list[0].BoardingHouseName,
			TotalRevenue:      rev,
			InvoiceCount:      len(list),
			PaidInvoiceCount:  paidCount,
			RoomCount:         roomsBy[id],
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].BoardingHouseName < out[b].BoardingHouseName })
	return out, nil
}

/* =========================================================
   TENANTS & DEBTS
========================================================= */

// TenantsCurrentlyRenting: penyewa ACTIVE yang jadi penyewa utama / co-tenant di kontrak ACTIVE.
func (s *ReportService) TenantsCurrentlyRenting(ctx context.Context) ([]dto.RentingTenant, error) {
	db := s.DB.WithContext(ctx)
	active := db.Model(&contractModel.ContractModel{}).
		Select("contract_id").
		Where("contract_status = ?", contractModel.ContractStatusActive)

	var tenants []tenantModel.TenantModel
	if err := db.Where("tenant_status = ?", tenantModel.TenantStatusActive).
		Where(db.Where("tenant_id IN (?)",
			db.Model(&contractModel.ContractModel{}).
				Select("contract_main_tenant_id").
				Where("contract_status = ?", contractModel.ContractStatusActive)).
			Or("tenant_id IN (?)",
				db.Model(&contractModel.ContractTenantModel{}).
					Select("contract_tenant_tenant_id").
					Where("contract_tenant_contract_id IN (?)", active))).
		Order("tenant_full_name ASC").
		Find(&tenants).Error; err != nil {
		return nil, err
	}

	return lo.Map(tenants, func(t tenantModel.TenantModel, _ int) dto.RentingTenant {
		return dto.RentingTenant{
			TenantID:       t.TenantID,
			TenantUserID:   t.TenantUserID,
			TenantFullName: t.TenantFullName,
			TenantPhone:    t.TenantPhone,
			TenantEmail:    t.TenantEmail,
			TenantStatus:   string(t.TenantStatus),
		}
	}), nil
}

// OutstandingDebts: semua invoice belum PAID, paling lama telat di atas.
func (s *ReportService) OutstandingDebts(ctx context.Context) ([]dto.OutstandingDebt, error) {
	db := s.DB.WithContext(ctx)

	type row struct {
		invoiceModel.InvoiceModel
		ContractCode   string `gorm:"column:contract_code"`
		RoomCode       string `gorm:"column:room_code"`
		TenantFullName string `gorm:"column:tenant_full_name"`
	}
	var rows []row
	if err := db.Table("invoices AS i").
		Select("i.*, c.contract_code, r.room_code, t.tenant_full_name").
		Joins("JOIN contracts AS c ON c.contract_id = i.invoice_contract_id").
		Joins("JOIN rooms AS r ON r.room_id = i.invoice_room_id").
		Joins("JOIN tenants AS t ON t.tenant_id = c.contract_main_tenant_id").
		Where("i.invoice_status <> ?", invoiceModel.InvoiceStatusPaid).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	paid, err := paidByInvoice(db, lo.Map(rows, func(r row, _ int) uuid.UUID { return r.InvoiceID }))
	if err != nil {
		return nil, err
	}

	today := dbtime.DateOf(s.now())
	out := lo.Map(rows, func(r row, _ int) dto.OutstandingDebt {
		p := paid[r.InvoiceID]
		days := 0
		if r.InvoiceDueDate.Before(today) {
			days = r.InvoiceDueDate.DaysUntil(today)
		}
		return dto.OutstandingDebt{
			InvoiceID:       r.InvoiceID,
			InvoiceCode:     r.InvoiceCode,
			ContractID:      r.InvoiceContractID,
			ContractCode:    r.ContractCode,
			RoomID:          r.InvoiceRoomID,
			RoomCode:        r.RoomCode,
			TenantName:      r.TenantFullName,
			TotalAmount:     r.InvoiceTotalAmount,
			PaidAmount:      p,
			RemainingAmount: r.InvoiceTotalAmount.Sub(p),
			Status:          r.InvoiceStatus,
			DueDate:         r.InvoiceDueDate,
			DaysOverdue:     days,
		}
	})
	sort.SliceStable(out, func(a, b int) bool { return out[a].DaysOverdue > out[b].DaysOverdue })
	return out, nil
}

/* =========================================================
   HELPERS
========================================================= */

func invoiceIDs(invs []invoiceModel.InvoiceModel) []uuid.UUID {
	return lo.Map(invs, func(i invoiceModel.InvoiceModel, _ int) uuid.UUID { return i.InvoiceID })
}

// paidByInvoice: total pembayaran per invoice.
func paidByInvoice(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	out := make(map[uuid.UUID]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var pays []paymentModel.PaymentModel
	if err := db.Select("payment_id", "payment_invoice_id", "payment_paid_amount").
		Where("payment_invoice_id IN ?", ids).
		Find(&pays).Error; err != nil {
		return nil, err
	}
	for _, p := range pays {
		out[p.PaymentInvoiceID] = out[p.PaymentInvoiceID].Add(p.PaymentPaidAmount)
	}
	return out, nil
}

func sumMap(m map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	return lo.Reduce(lo.Values(m), func(acc, d decimal.Decimal, _ int) decimal.Decimal { return acc.Add(d) }, decimal.Zero)
}

// revenueOf: pendapatan = pembayaran pada invoice PAID saja.
func revenueOf(invs []invoiceModel.InvoiceModel, paid map[uuid.UUID]decimal.Decimal) (decimal.Decimal, int) {
	rev := decimal.Zero
	n := 0
	for _, i := range invs {
		if i.InvoiceStatus != invoiceModel.InvoiceStatusPaid {
			continue
		}
		rev = rev.Add(paid[i.InvoiceID])
		n++
	}
	return rev, n
}
