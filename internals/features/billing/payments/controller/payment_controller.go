// file: internals/features/billing/payments/controller/payment_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	invoiceService "kostku_backend/internals/features/billing/invoices/service"
	"kostku_backend/internals/features/billing/payments/dto"
	"kostku_backend/internals/features/billing/payments/model"
	"kostku_backend/internals/features/billing/payments/service"
	helper "kostku_backend/internals/helpers"
	"kostku_backend/internals/helpers/dbtime"
)

type PaymentController struct {
	DB  *gorm.DB
	Svc *service.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:  db,
		Svc: service.NewPaymentService(db, invoiceService.NewInvoiceService(db)),
	}
}

// POST /payments
func (h *PaymentController) Create(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := h.Svc.Record(c.UserContext(), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Payment recorded", out)
}

// GET /payments?invoice_id=&method=&from=&to=
func (h *PaymentController) List(c *fiber.Ctx) error {
	var q dto.ListPaymentQuery
	var err error

	if q.InvoiceID, err = helper.ParseUUIDQuery(c, "invoice_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if raw := c.Query("method"); raw != "" {
		m := model.PaymentMethod(raw)
		q.Method = &m
	}
	if q.From, err = parseDateQuery(c, "from", false); err != nil {
		return helper.FromFiberError(c, err)
	}
	if q.To, err = parseDateQuery(c, "to", true); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "payment_date", "desc", helper.DefaultOpts)
	rows, total, err := h.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// parseDateQuery: YYYY-MM-DD; endOfDay → 23:59:59 hari itu
func parseDateQuery(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := dbtime.ParseDate(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	t := d.Time
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}

// GET /payments/:id
func (h *PaymentController) GetByID(c *fiber.Ctx) error {
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

// GET /payments/invoice/:invoiceId
func (h *PaymentController) ListByInvoice(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "invoiceId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := h.Svc.ListByInvoice(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// DELETE /payments/:id → 204
func (h *PaymentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonNoContent(c)
}
