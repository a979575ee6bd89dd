package database

import (
	"fmt"

	"frontend-gin/internal/config"
	"frontend-gin/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connection.
var DB *gorm.DB

// InitDB opens the draft database and migrates its single table.
func InitDB(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&models.ChecklistDraft{}); err != nil {
		return fmt.Errorf("migrate drafts: %w", err)
	}
	DB = db
	return nil
}
