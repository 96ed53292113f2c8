package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kostku_backend/internals/features/users/user/model"
)

// UserResponse: tanpa password
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"username"`
	Email     *string   `json:"email,omitempty"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	Roles     []string  `json:"roles"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserResponse(u model.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Roles:     []string{u.Role},
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UpdateProfileRequest: field nil = tidak diubah; phone/email kosong → kolom di-null-kan
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=150"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
}

func (r *UpdateProfileRequest) Normalize() {
	r.FullName = trim(r.FullName)
	r.Phone = trim(r.Phone)
	r.Email = trim(r.Email)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=100"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func trim(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
