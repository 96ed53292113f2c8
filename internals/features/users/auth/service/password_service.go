package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authHelper "kostku_backend/internals/features/users/auth/helper"
	authRepo "kostku_backend/internals/features/users/auth/repository"
)

// ========================== CHANGE PASSWORD ==========================
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := authRepo.FindUserByID(tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return err
		}

		// Cek password lama
		if err := authHelper.CheckPasswordHash(user.Password, currentPassword); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Current password is incorrect")
		}

		newHash, err := authHelper.HashPassword(newPassword)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash new password")
		}
		return authRepo.UpdateUserPassword(tx, userID, newHash)
	})
}
