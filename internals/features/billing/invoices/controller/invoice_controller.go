// file: internals/features/billing/invoices/controller/invoice_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/billing/invoices/dto"
	"kostku_backend/internals/features/billing/invoices/model"
	"kostku_backend/internals/features/billing/invoices/service"
	helper "kostku_backend/internals/helpers"
)

type InvoiceController struct {
	DB  *gorm.DB
	Svc *service.InvoiceService
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db, Svc: service.NewInvoiceService(db)}
}

/* =========================
   GENERATE
========================= */

// POST /invoices/generate
func (h *InvoiceController) Generate(c *fiber.Ctx) error {
	var req dto.GenerateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := h.Svc.Generate(c.UserContext(), req.ContractID, req.Month, req.Year)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Invoice generated", out)
}

// POST /invoices/generate-with-readings
func (h *InvoiceController) GenerateWithReadings(c *fiber.Ctx) error {
	var req dto.GenerateInvoiceWithReadingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := h.Svc.GenerateWithReadings(c.UserContext(), req.ContractID, req.Month, req.Year, req.ToReadings())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Invoice generated", out)
}

// POST /invoices/:id/recompute-status
func (h *InvoiceController) RecomputeStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := h.Svc.RecomputeStatus(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Invoice status recomputed", out)
}

/* =========================
   READ
========================= */

// GET /invoices?status=&contract_id=&room_id=&period_month=&period_year=
func (h *InvoiceController) List(c *fiber.Ctx) error {
	var q dto.ListInvoiceQuery
	var err error

	if raw := c.Query("status"); raw != "" {
		st := model.InvoiceStatus(raw)
		if !model.ValidInvoiceStatus(st) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status")
		}
		q.Status = &st
	}
	if q.ContractID, err = helper.ParseUUIDQuery(c, "contract_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if q.RoomID, err = helper.ParseUUIDQuery(c, "room_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if q.PeriodMonth, err = helper.ParseIntQuery(c, "period_month"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if q.PeriodYear, err = helper.ParseIntQuery(c, "period_year"); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	rows, total, err := h.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /invoices/:id
func (h *InvoiceController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := h.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /invoices/contract/:contractId
func (h *InvoiceController) ListByContract(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "contractId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := h.Svc.ListByContract(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /invoices/:id/detail
func (h *InvoiceController) GetDetail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := h.Svc.GetDetail(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
