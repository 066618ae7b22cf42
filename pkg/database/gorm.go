package database

import (
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/bekawave/pkg/logger"
)

// NewGormConnection layers gorm over an existing pool so the schema
// bootstrap shares the connections the repositories use.
func NewGormConnection(sqlDB *sql.DB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}
	return db, nil
}

// AutoMigrate creates missing tables, columns and unique indexes for models.
func AutoMigrate(sqlDB *sql.DB, models ...any) error {
	db, err := NewGormConnection(sqlDB)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run schema bootstrap: %w", err)
	}
	logger.Logger.Info().Int("tables", len(models)).Msg("Database schema ready")
	return nil
}
