// @title           Employee Management Service API
// @version         1.0
// @description     Admin-facing employee records API with JWT authentication, soft deletion and profile picture management

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"employee-management-service/internal/app/routes"
	"employee-management-service/internal/domain/models"
	"employee-management-service/internal/domain/services"
	"employee-management-service/internal/infrastructure/config"
	"employee-management-service/internal/infrastructure/database"
	"employee-management-service/pkg/logger"
)

func main() {
	if err := logger.SetupLogger(); err != nil {
		fmt.Printf("Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		logger.Warning("No .env file loaded: %v", err)
	} else {
		logger.Info("Loaded .env file")
	}

	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrate(pool, cfg); err != nil {
		logger.Error("Database migration failed: %v", err)
		os.Exit(1)
	}

	// the API is unusable without at least one admin account
	adminService := services.NewAdminService(pool.GetDB(), cfg)
	if err := adminService.EnsureDefaultAdmin(); err != nil {
		logger.Error("Failed to seed default administrator: %v", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Join(cfg.UploadDir, "profiles"), 0755); err != nil {
		logger.Error("Failed to create upload directory: %v", err)
		os.Exit(1)
	}

	r := routes.SetupRouter(pool, cfg)

	logger.Info("Server listening on http://0.0.0.0:%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logger.Error("Server exited: %v", err)
		os.Exit(1)
	}
}

// migrate applies the schema according to DB_MIGRATION_MODE. The default
// mode only adds new tables and columns; "drop" rebuilds everything.
func migrate(pool *database.ConnectionPool, cfg *config.Config) error {
	db := pool.GetDB()

	if cfg.DBMigrationMode == "drop" {
		logger.Warning("Running in drop mode, all tables will be rebuilt")
		if err := db.Migrator().DropTable(&models.Admin{}, &models.Employee{}); err != nil {
			return err
		}
	}

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Employee{},
	); err != nil {
		return err
	}

	logger.Info("Database migration completed")
	return nil
}
