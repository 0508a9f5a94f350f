package database

import (
	"fmt"
	"log"

	"github.com/prospecta/prospecta-api/internal/config"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.PasswordResetToken{},

		// Pipeline configuration
		&entity.Stage{},
		&entity.Tag{},
		&entity.Product{},
		&entity.Provider{},

		// Leads
		&entity.Lead{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with the default pipeline stages and,
// when configured, the first admin user.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	stages := []entity.Stage{
		{Name: "Nuevo Prospecto", Position: 1, Type: enum.StageTypeOpen, Color: "#3b82f6"},
		{Name: "Contactado", Position: 2, Type: enum.StageTypeOpen, Color: "#eab308"},
		{Name: "En Negociación", Position: 3, Type: enum.StageTypeOpen, Color: "#f97316"},
		{Name: "Cliente", Position: 4, Type: enum.StageTypeWon, Color: "#22c55e"},
		{Name: "Perdido", Position: 5, Type: enum.StageTypeLost, Color: "#ef4444"},
	}

	var stageCount int64
	if err := db.Model(&entity.Stage{}).Count(&stageCount).Error; err != nil {
		return fmt.Errorf("failed to count stages: %w", err)
	}
	if stageCount == 0 {
		for i := range stages {
			if err := db.Create(&stages[i]).Error; err != nil {
				log.Printf("Warning: failed to create stage %s: %v", stages[i].Name, err)
			}
		}
	}

	// Create the admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Administrador"
				}
				admin := entity.User{
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
					Role:     enum.RoleAdmin,
					Provider: "local",
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Created admin user %s", adminEmail)
				}
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
