package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/catalog/boarding_houses/dto"
	"kostku_backend/internals/features/catalog/boarding_houses/service"
	helper "kostku_backend/internals/helpers"
)

type BoardingHouseController struct {
	DB  *gorm.DB
	Svc *service.BoardingHouseService
}

func NewBoardingHouseController(db *gorm.DB) *BoardingHouseController {
	return &BoardingHouseController{DB: db, Svc: service.NewBoardingHouseService(db)}
}

func (h *BoardingHouseController) parseBody(c *fiber.Ctx) (*dto.BoardingHouseRequest, error) {
	var req dto.BoardingHouseRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	req.Normalize()
	if err := helper.Validate.Struct(req); err != nil {
		return nil, helper.ValidationError(c, err)
	}
	return &req, nil
}

// POST /boarding-houses
func (h *BoardingHouseController) Create(c *fiber.Ctx) error {
	req, err := h.parseBody(c)
	if req == nil {
		return err
	}
	out, err := h.Svc.Create(c.UserContext(), *req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Boarding house created", out)
}

// PUT /boarding-houses/:id
func (h *BoardingHouseController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	req, err := h.parseBody(c)
	if req == nil {
		return err
	}
	out, err := h.Svc.Update(c.UserContext(), id, *req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Boarding house updated", out)
}

// DELETE /boarding-houses/:id
func (h *BoardingHouseController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonNoContent(c)
}

// GET /boarding-houses?q=
func (h *BoardingHouseController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	rows, total, err := h.Svc.List(c.UserContext(), c.Query("q"), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /boarding-houses/:id
func (h *BoardingHouseController) GetByID(c *fiber.Ctx) error {
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
