package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kostku_backend/internals/configs"
)

var DB *gorm.DB

// ConnectDB buka koneksi sesuai DB_DRIVER (postgres default, sqlite untuk lokal).
func ConnectDB() {
	db, err := Open(configs.GetEnv("DB_DRIVER", "postgres"))
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func Open(driver string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite":
		path := configs.GetEnv("SQLITE_PATH", "kostku.db")
		log.Printf("🔌 Connecting to SQLite (%s)...", path)
		return gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), cfg)
	case "postgres", "":
		log.Println("🔌 Connecting to PostgreSQL...")
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=kostku&options=-c statement_timeout=5000",
			configs.GetEnv("DB_USER"),
			configs.GetEnv("DB_PASSWORD"),
			configs.GetEnv("DB_HOST", "localhost"),
			configs.GetEnv("DB_PORT", "5432"),
			configs.GetEnv("DB_NAME"),
			configs.GetEnv("DB_SSLMODE", "require"),
		)
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
		}), cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(DB); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
