// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "kostku_backend/internals/features/users/auth/model"
	userModel "kostku_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByUsername(db *gorm.DB, username string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_name = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, newPassword string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", newPassword).Error
}

// IsUsernameTaken: cek apakah username sudah dipakai
func IsUsernameTaken(db *gorm.DB, username string) (bool, error) {
	var n int64
	err := db.Model(&userModel.UserModel{}).Where("user_name = ?", username).Count(&n).Error
	return n > 0, err
}

// IsEmailTaken: exceptID != uuid.Nil → abaikan user itu sendiri (update profil)
func IsEmailTaken(db *gorm.DB, email string, exceptID uuid.UUID) (bool, error) {
	q := db.Model(&userModel.UserModel{}).Where("email = ?", email)
	if exceptID != uuid.Nil {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

/* ====================== BLACKLIST TOKEN ====================== */

func BlacklistToken(db *gorm.DB, token string, expiredAt time.Time) error {
	var n int64
	if err := db.Model(&authModel.TokenBlacklist{}).Where("token = ?", token).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return db.Create(&authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: expiredAt,
	}).Error
}

func IsTokenBlacklisted(db *gorm.DB, token string) (bool, error) {
	var n int64
	err := db.Model(&authModel.TokenBlacklist{}).Where("token = ?", token).Count(&n).Error
	return n > 0, err
}

// CleanupExpiredBlacklist: hapus permanen token yang exp-nya sebelum `before`
func CleanupExpiredBlacklist(db *gorm.DB, before time.Time) (int64, error) {
	res := db.Unscoped().Where("expired_at < ?", before).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
