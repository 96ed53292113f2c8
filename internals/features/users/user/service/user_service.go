package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	authRepo "kostku_backend/internals/features/users/auth/repository"
	"kostku_backend/internals/features/users/user/dto"
	"kostku_backend/internals/features/users/user/model"
	helper "kostku_backend/internals/helpers"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) find(db *gorm.DB, id uuid.UUID) (*model.UserModel, error) {
	u, err := authRepo.FindUserByID(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}
	return u, nil
}

// GetProfile: profil user yang sedang login
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	u, err := s.find(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	out := dto.ToUserResponse(*u)
	return &out, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var out dto.UserResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.find(tx, userID)
		if err != nil {
			return err
		}

		updates := map[string]any{"updated_at": time.Now()}
		if req.FullName != nil {
			updates["full_name"] = *req.FullName
		}
		if req.Phone != nil {
			updates["phone"] = emptyToNil(*req.Phone)
		}
		if req.Email != nil {
			email := emptyToNil(*req.Email)
			if email != nil {
				taken, err := authRepo.IsEmailTaken(tx, *email, userID)
				if err != nil {
					return err
				}
				if taken {
					return fiber.NewError(fiber.StatusBadRequest, "Email is already in use")
				}
			}
			updates["email"] = email
		}

		if err := tx.Model(u).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Email is already in use")
			}
			return err
		}
		fresh, err := s.find(tx, userID)
		if err != nil {
			return err
		}
		out = dto.ToUserResponse(*fresh)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================================================
   ADMIN
========================================================= */

// List: semua akun, filter q (username / nama / email)
func (s *UserService) List(ctx context.Context, search string, p helper.Params) ([]dto.UserResponse, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.UserModel{})
	if kw := strings.ToLower(strings.TrimSpace(search)); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortMap := map[string]string{
		"user_name":  "user_name",
		"full_name":  "full_name",
		"created_at": "created_at",
	}
	var rows []model.UserModel
	if err := q.Order(p.OrderClause(sortMap, "user_name")).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return lo.Map(rows, func(u model.UserModel, _ int) dto.UserResponse { return dto.ToUserResponse(u) }), total, nil
}

// SetActive: admin tidak boleh menonaktifkan akunnya sendiri.
func (s *UserService) SetActive(ctx context.Context, actorID, userID uuid.UUID, active bool) (*dto.UserResponse, error) {
	if actorID == userID && !active {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Cannot deactivate your own account")
	}
	var out dto.UserResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := authRepo.FindUserByID(tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("User not found with id: %s", userID))
			}
			return err
		}
		if err := tx.Model(u).Updates(map[string]any{
			"is_active":  active,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}
		u.IsActive = active
		out = dto.ToUserResponse(*u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
