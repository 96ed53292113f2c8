package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/catalog/service_types/dto"
	"kostku_backend/internals/features/catalog/service_types/service"
	helper "kostku_backend/internals/helpers"
)

type ServiceTypeController struct {
	DB  *gorm.DB
	Svc *service.ServiceTypeService
}

func NewServiceTypeController(db *gorm.DB) *ServiceTypeController {
	return &ServiceTypeController{DB: db, Svc: service.NewServiceTypeService(db)}
}

// GET /service-types?active=true|false
func (h *ServiceTypeController) List(c *fiber.Ctx) error {
	var active *bool
	if raw := c.Query("active"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid active")
		}
		active = &b
	}
	rows, err := h.Svc.List(c.UserContext(), active)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /service-types/:id
func (h *ServiceTypeController) GetByID(c *fiber.Ctx) error {
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

// POST /service-types
func (h *ServiceTypeController) Create(c *fiber.Ctx) error {
	var req dto.ServiceTypeRequest
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
	return helper.JsonCreated(c, "Service type created", out)
}

// PUT /service-types/:id
func (h *ServiceTypeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ServiceTypeRequest
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
	return helper.JsonUpdated(c, "Service type updated", out)
}

// DELETE /service-types/:id
func (h *ServiceTypeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonNoContent(c)
}
