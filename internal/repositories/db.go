// Package repositories provides data access layer implementations.
// It handles all database operations and data persistence logic.
package repositories

import (
	"fmt"
	"log"
	"os"
	"time"

	"usercenter/internal/config"
	"usercenter/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the Postgres connection, configures the pool and applies
// the schema.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	// Configure GORM logger to ignore "record not found" errors
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !config.IsProduction(),
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("PostgreSQL connected & migrations applied")
	return db, nil
}

// Migrate creates or updates the tables and the constraints AutoMigrate
// cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Account{}, &models.WithdrawalRequest{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// At most one pending request per user, even if two transactions race
	// past the existence check.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_withdrawal_requests_one_pending
		ON withdrawal_requests (user_id)
		WHERE status = 'pending'`).Error; err != nil {
		return fmt.Errorf("create pending index: %w", err)
	}

	return nil
}

// CloseDB closes the pool behind db.
func CloseDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get database instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}
}
