package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"kostku_backend/internals/configs"
	authRepo "kostku_backend/internals/features/users/auth/repository"
)

// RunBlacklistCleanup: satu putaran pembersihan; token dihapus setelah exp + TTL hari.
func RunBlacklistCleanup(db *gorm.DB, now time.Time, ttlDays int) (int64, error) {
	deleteBefore := now.Add(-time.Duration(ttlDays) * 24 * time.Hour)
	return authRepo.CleanupExpiredBlacklist(db, deleteBefore)
}

// StartBlacklistCleanupScheduler: jalan tiap 24 jam sampai ctx selesai.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB) {
	// TTL dari env (default: 0 hari → hapus begitu exp lewat)
	ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 0)

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")
			n, err := RunBlacklistCleanup(db.WithContext(ctx), time.Now().UTC(), ttlDays)
			switch {
			case err != nil:
				log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
			case n > 0:
				log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
			default:
				log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
			}

			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] 🛑 scheduler berhenti")
				return
			case <-ticker.C:
			}
		}
	}()
}
