package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
)

// UserModel merepresentasikan tabel users (akun login admin / penyewa)
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName string    `gorm:"size:50;not null;uniqueIndex:uq_users_user_name" json:"user_name"`
	Email    *string   `gorm:"size:255;uniqueIndex:uq_users_email" json:"email,omitempty"`
	Password string    `gorm:"not null" json:"-"`
	FullName string    `gorm:"size:150;not null" json:"full_name"`
	Phone    *string   `gorm:"size:30" json:"phone,omitempty"`
	Role     string    `gorm:"type:varchar(20);not null" json:"role"`
	// tanpa default DB: nilai false harus ikut tersimpan
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleTenant
	}
	return nil
}
