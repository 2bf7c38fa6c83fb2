package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/wuwenbin0122/userdash/internal/models"
)

// NewGORM opens a gorm.DB connection backed by the configured Postgres instance.
func NewGORM(url string) (*gorm.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("postgres connection url is empty")
	}

	gormDB, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm connection: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return gormDB, nil
}

// SeedUsers migrates the users table and upserts users by id. Running it
// twice with the same input leaves one row per user.
func SeedUsers(gormDB *gorm.DB, users []models.User) (int64, error) {
	if err := gormDB.AutoMigrate(&models.User{}); err != nil {
		return 0, fmt.Errorf("migrate users: %w", err)
	}
	if len(users) == 0 {
		return 0, nil
	}

	result := gormDB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&users)
	if result.Error != nil {
		return 0, fmt.Errorf("seed users: %w", result.Error)
	}

	return result.RowsAffected, nil
}
