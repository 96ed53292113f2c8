package seeds

import (
	"log"
	"time"

	"gorm.io/gorm"

	userModel "kostku_backend/internals/features/users/user/model"
	"kostku_backend/internals/seeds/rental"
	"kostku_backend/internals/seeds/users"
)

// RunAllSeeds: hanya jalan kalau tabel users masih kosong. true = data demo dibuat.
func RunAllSeeds(db *gorm.DB) (bool, error) {
	var n int64
	if err := db.Model(&userModel.UserModel{}).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		log.Println("ℹ️ Users sudah ada, seed dilewati")
		return false, nil
	}

	log.Println("🌱 Menjalankan seed data demo...")
	err := db.Transaction(func(tx *gorm.DB) error {
		accounts, err := users.SeedUsers(tx)
		if err != nil {
			return err
		}
		return rental.SeedRental(tx, accounts["tenant"].ID, time.Now())
	})
	if err != nil {
		return false, err
	}
	log.Println("✅ Seed selesai")
	return true, nil
}
