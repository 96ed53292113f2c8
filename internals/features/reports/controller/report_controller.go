package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"kostku_backend/internals/features/reports/service"
	helper "kostku_backend/internals/helpers"
	"kostku_backend/internals/helpers/dbtime"
)

type ReportController struct {
	DB  *gorm.DB
	Svc *service.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Svc: service.NewReportService(db)}
}

// GET /dashboard
func (h *ReportController) Dashboard(c *fiber.Ctx) error {
	out, err := h.Svc.Dashboard(c.UserContext())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /reports/revenue-by-month?year=2024 (default tahun berjalan)
func (h *ReportController) RevenueByMonth(c *fiber.Ctx) error {
	year, err := helper.ParseIntQuery(c, "year")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := h.Svc.RevenueByMonth(c.UserContext(), lo.FromPtrOr(year, h.Svc.Now().Year()))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /reports/revenue-by-boarding-house?start_date=&end_date=
func (h *ReportController) RevenueByBoardingHouse(c *fiber.Ctx) error {
	from, err := dateQuery(c, "start_date")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	to, err := dateQuery(c, "end_date")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := h.Svc.RevenueByBoardingHouse(c.UserContext(), from, to)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /reports/tenants-currently-renting
func (h *ReportController) TenantsCurrentlyRenting(c *fiber.Ctx) error {
	rows, err := h.Svc.TenantsCurrentlyRenting(c.UserContext())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /reports/outstanding-debts
func (h *ReportController) OutstandingDebts(c *fiber.Ctx) error {
	rows, err := h.Svc.OutstandingDebts(c.UserContext())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

func dateQuery(c *fiber.Ctx, name string) (*dbtime.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := dbtime.ParseDate(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return &d, nil
}
