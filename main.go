package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kostku_backend/internals/configs"
	database "kostku_backend/internals/databases"
	scheduler "kostku_backend/internals/features/users/auth/scheduler"
	routes "kostku_backend/internals/route"
	"kostku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("❌ AutoMigrate gagal: %v", err)
		}
	}
	if configs.GetEnvBool("SEED_ON_START", false) {
		if _, err := seeds.RunAllSeeds(database.DB); err != nil {
			log.Printf("[WARN] seed gagal: %v", err)
		}
	}

	// ⏱ scheduler setelah DB siap
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	scheduler.StartBlacklistCleanupScheduler(bgCtx, database.DB)

	app := routes.NewApp(database.DB)

	port := configs.GetEnv("PORT", "3000")

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close(database.DB)
}
