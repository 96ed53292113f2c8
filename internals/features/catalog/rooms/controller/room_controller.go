// file: internals/features/catalog/rooms/controller/room_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/catalog/rooms/dto"
	"kostku_backend/internals/features/catalog/rooms/model"
	"kostku_backend/internals/features/catalog/rooms/service"
	helper "kostku_backend/internals/helpers"
)

type RoomController struct {
	DB  *gorm.DB
	Svc *service.RoomService
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db, Svc: service.NewRoomService(db)}
}

// GET /rooms?boarding_house_id=&status=&q=
func (h *RoomController) List(c *fiber.Ctx) error {
	var q dto.ListRoomQuery
	var err error
	if q.BoardingHouseID, err = helper.ParseUUIDQuery(c, "boarding_house_id"); err != nil {
		return helper.FromFiberError(c, err)
	}
	if raw := c.Query("status"); raw != "" {
		st := model.RoomStatus(raw)
		if !model.ValidRoomStatus(st) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status")
		}
		q.Status = &st
	}
	q.Search = c.Query("q")

	p := helper.ParseFiber(c, "code", "asc", helper.DefaultOpts)
	rows, total, err := h.Svc.List(c.UserContext(), q, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /rooms/:id
func (h *RoomController) GetByID(c *fiber.Ctx) error {
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

// GET /rooms/:id/services
func (h *RoomController) Services(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := h.Svc.ListServices(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /rooms/:id/detail
func (h *RoomController) Detail(c *fiber.Ctx) error {
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

// POST /rooms
func (h *RoomController) Create(c *fiber.Ctx) error {
	var req dto.RoomRequest
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
	return helper.JsonCreated(c, "Room created", out)
}

// PUT /rooms/:id
func (h *RoomController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.RoomRequest
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
	return helper.JsonUpdated(c, "Room updated", out)
}

// DELETE /rooms/:id
func (h *RoomController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonNoContent(c)
}
