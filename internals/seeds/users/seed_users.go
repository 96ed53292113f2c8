package users

import (
	"log"

	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	authHelper "kostku_backend/internals/features/users/auth/helper"
	"kostku_backend/internals/features/users/user/model"
)

type UserSeed struct {
	UserName string
	Password string
	FullName string
	Email    string
	Phone    string
	Role     string
}

var defaultUsers = []UserSeed{
	{UserName: "admin", Password: "admin123", FullName: "Admin User", Email: "admin@example.com", Phone: "0123456789", Role: constants.RoleAdmin},
	{UserName: "tenant", Password: "tenant123", FullName: "Tenant User", Email: "tenant@example.com", Phone: "0987654321", Role: constants.RoleTenant},
}

// SeedUsers: buat akun default, dikembalikan per username
func SeedUsers(tx *gorm.DB) (map[string]model.UserModel, error) {
	out := make(map[string]model.UserModel, len(defaultUsers))
	for _, data := range defaultUsers {
		// 🔐 Hash password sebelum disimpan
		hashed, err := authHelper.HashPassword(data.Password)
		if err != nil {
			return nil, err
		}
		email, phone := data.Email, data.Phone
		u := model.UserModel{
			UserName: data.UserName,
			Password: hashed,
			FullName: data.FullName,
			Email:    &email,
			Phone:    &phone,
			Role:     data.Role,
			IsActive: true,
		}
		if err := tx.Create(&u).Error; err != nil {
			return nil, err
		}
		log.Printf("✅ User '%s' (%s) dibuat", u.UserName, u.Role)
		out[u.UserName] = u
	}
	return out, nil
}
