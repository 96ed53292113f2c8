package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/tenancy/tenants/dto"
	"kostku_backend/internals/features/tenancy/tenants/model"
	"kostku_backend/internals/features/tenancy/tenants/service"
	helper "kostku_backend/internals/helpers"
)

type TenantController struct {
	DB  *gorm.DB
	Svc *service.TenantService
}

func NewTenantController(db *gorm.DB) *TenantController {
	return &TenantController{DB: db, Svc: service.NewTenantService(db)}
}

// GET /tenants?status=&q=
func (h *TenantController) List(c *fiber.Ctx) error {
	var status *model.TenantStatus
	if raw := c.Query("status"); raw != "" {
		st := model.TenantStatus(raw)
		if !model.ValidTenantStatus(st) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status")
		}
		status = &st
	}
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	rows, total, err := h.Svc.List(c.UserContext(), status, c.Query("q"), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /tenants/:id
func (h *TenantController) GetByID(c *fiber.Ctx) error {
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

// GET /tenants/user/:userId
func (h *TenantController) GetByUserID(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "userId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := h.Svc.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /tenants/:id/detail
func (h *TenantController) Detail(c *fiber.Ctx) error {
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

// POST /tenants
func (h *TenantController) Create(c *fiber.Ctx) error {
	var req dto.TenantRequest
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
	return helper.JsonCreated(c, "Tenant created", out)
}

// PUT /tenants/:id
func (h *TenantController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.TenantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	req.Normalize()
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	out, err := h.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Tenant updated", out)
}

// DELETE /tenants/:id
func (h *TenantController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonNoContent(c)
}
