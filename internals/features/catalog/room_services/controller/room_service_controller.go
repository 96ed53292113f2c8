package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/catalog/room_services/dto"
	"kostku_backend/internals/features/catalog/room_services/service"
	helper "kostku_backend/internals/helpers"
)

type RoomServiceController struct {
	DB  *gorm.DB
	Svc *service.RoomServiceService
}

func NewRoomServiceController(db *gorm.DB) *RoomServiceController {
	return &RoomServiceController{DB: db, Svc: service.NewRoomServiceService(db)}
}

// GET /room-services/room/:roomId
func (h *RoomServiceController) ListByRoom(c *fiber.Ctx) error {
	roomID, err := helper.ParseUUIDParam(c, "roomId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := h.Svc.ListByRoom(c.UserContext(), roomID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// POST /room-services/room/:roomId
func (h *RoomServiceController) Create(c *fiber.Ctx) error {
	roomID, err := helper.ParseUUIDParam(c, "roomId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateRoomServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	out, err := h.Svc.Create(c.UserContext(), roomID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Service assigned to room", out)
}

// GET /room-services/:id
func (h *RoomServiceController) GetByID(c *fiber.Ctx) error {
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

// PUT /room-services/:id
func (h *RoomServiceController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateRoomServiceRequest
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
	return helper.JsonUpdated(c, "Room service updated", out)
}

// DELETE /room-services/:id
func (h *RoomServiceController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonNoContent(c)
}
