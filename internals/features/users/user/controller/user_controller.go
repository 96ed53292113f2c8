package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "kostku_backend/internals/features/users/auth/service"
	"kostku_backend/internals/features/users/user/dto"
	"kostku_backend/internals/features/users/user/service"
	helper "kostku_backend/internals/helpers"
)

type UserController struct {
	DB   *gorm.DB
	Svc  *service.UserService
	Auth *authService.AuthService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		DB:   db,
		Svc:  service.NewUserService(db),
		Auth: authService.NewAuthService(db),
	}
}

// GET /users/profile
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := uc.Svc.GetProfile(c.UserContext(), userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// PUT /users/profile
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	req.Normalize()
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := uc.Svc.UpdateProfile(c.UserContext(), userID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Profile updated", out)
}

// POST /users/change-password
func (uc *UserController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := uc.Auth.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Password changed successfully", nil)
}

// GET /users?q= (admin)
func (uc *UserController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "user_name", "asc", helper.DefaultOpts)
	rows, total, err := uc.Svc.List(c.UserContext(), c.Query("q"), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// PUT /users/:id/status (admin)
func (uc *UserController) UpdateStatus(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := uc.Svc.SetActive(c.UserContext(), actorID, id, *req.IsActive)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "User status updated", out)
}
