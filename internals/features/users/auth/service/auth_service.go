package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	"kostku_backend/internals/features/users/auth/dto"
	authHelper "kostku_backend/internals/features/users/auth/helper"
	authRepo "kostku_backend/internals/features/users/auth/repository"
	userModel "kostku_backend/internals/features/users/user/model"
)

type AuthService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db, Now: time.Now}
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

/* ==========================
   REGISTER
========================== */

// Register: akun baru selalu TENANT & aktif, langsung dapat token.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var user userModel.UserModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := authRepo.IsUsernameTaken(tx, req.Username)
		if err != nil {
			return err
		}
		if taken {
			return fiber.NewError(fiber.StatusBadRequest, "Username is already taken")
		}
		if req.Email != nil {
			taken, err := authRepo.IsEmailTaken(tx, *req.Email, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return fiber.NewError(fiber.StatusBadRequest, "Email is already in use")
			}
		}

		hash, err := authHelper.HashPassword(req.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Password hashing failed")
		}
		user = userModel.UserModel{
			UserName: req.Username,
			Email:    req.Email,
			Password: hash,
			FullName: req.FullName,
			Phone:    req.Phone,
			Role:     constants.RoleTenant,
			IsActive: true,
		}
		if err := authRepo.CreateUser(tx, &user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Username is already taken")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := IssueAccessToken(user, s.now())
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] 🆕 user registered: %s", user.UserName)
	out := dto.NewAuthResponse(token, user)
	return &out, nil
}

/* ==========================
   LOGIN
========================== */

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	db := s.DB.WithContext(ctx)

	user, err := authRepo.FindUserByUsername(db, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
		}
		return nil, err
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.Password); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Account is inactive")
	}

	token, err := IssueAccessToken(*user, s.now())
	if err != nil {
		return nil, err
	}
	out := dto.NewAuthResponse(token, *user)
	return &out, nil
}

/* ==========================
   LOGOUT
========================== */

// Logout: token masuk blacklist sampai exp-nya (idempotent).
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		log.Println("[INFO] Logout tanpa access token")
		return nil
	}
	exp := tokenExpiry(accessToken, s.now())
	return authRepo.BlacklistToken(s.DB.WithContext(ctx), accessToken, exp)
}
