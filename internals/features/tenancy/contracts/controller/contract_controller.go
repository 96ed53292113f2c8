// file: internals/features/tenancy/contracts/controller/contract_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/tenancy/contracts/dto"
	"kostku_backend/internals/features/tenancy/contracts/model"
	"kostku_backend/internals/features/tenancy/contracts/service"
	helper "kostku_backend/internals/helpers"
)

type ContractController struct {
	DB  *gorm.DB
	Svc *service.ContractService
}

func NewContractController(db *gorm.DB) *ContractController {
	return &ContractController{DB: db, Svc: service.NewContractService(db)}
}

/* =========================
   CREATE / UPDATE
========================= */

// POST /contracts
func (h *ContractController) Create(c *fiber.Ctx) error {
	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	req.Normalize()
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := h.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Contract created", out)
}

// PUT /contracts/:id
func (h *ContractController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := h.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Contract updated", out)
}

// POST /contracts/:id/terminate
func (h *ContractController) Terminate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.TerminateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := h.Svc.Terminate(c.UserContext(), id, req.Reason, req.TerminationDate)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Contract terminated", out)
}

// DELETE /contracts/:id
func (h *ContractController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonNoContent(c)
}

/* =========================
   READ
========================= */

// GET /contracts?status=&room_id=&tenant_id=&q=
func (h *ContractController) List(c *fiber.Ctx) error {
	var q dto.ListContractQuery
	var err error

	if raw := c.Query("status"); raw != "" {
		st := model.ContractStatus(raw)
		if !model.ValidContractStatus(st) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status")
		}
		q.Status = &st
	}
	if q.RoomID, err = helper.ParseUUIDQuery(c, "room_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if q.TenantID, err = helper.ParseUUIDQuery(c, "tenant_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	q.Search = c.Query("q")

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	rows, total, err := h.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /contracts/:id
func (h *ContractController) GetByID(c *fiber.Ctx) error {
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

// GET /contracts/:id/detail
func (h *ContractController) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := h.Svc.Detail(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
