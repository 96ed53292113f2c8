// kostctl: perintah admin di luar HTTP (migrate, seed, generate invoice).
package main

import (
	"os"

	"gorm.io/gorm"

	"kostku_backend/internals/configs"
	database "kostku_backend/internals/databases"
)

func main() {
	root := newRootCmd(func() (*gorm.DB, error) {
		configs.LoadEnv()
		return database.Open(configs.GetEnv("DB_DRIVER", "postgres"))
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
