package dto

import (
	"strings"

	"github.com/google/uuid"

	userModel "kostku_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Password string  `json:"password" validate:"required,min=6,max=100"`
	FullName string  `json:"full_name" validate:"required,max=150"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
}

func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = trimOrNil(r.Email)
	r.Phone = trimOrNil(r.Phone)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

// AuthResponse: payload login & register
type AuthResponse struct {
	Token    string    `json:"token"`
	Type     string    `json:"type"`
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Roles    []string  `json:"roles"`
}

func NewAuthResponse(token string, u userModel.UserModel) AuthResponse {
	return AuthResponse{
		Token:    token,
		Type:     "Bearer",
		ID:       u.ID,
		Username: u.UserName,
		FullName: u.FullName,
		Roles:    []string{u.Role},
	}
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
