package database

import (
	"log"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Society{},
		&models.SocietyTransp{},
		&models.Camion{},
		&models.User{},
		&models.Booking{},
		&models.BookingTemporisation{},
		&models.Voyage{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: at most one active temporisation per booking.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_temporisation_active
		ON booking_temporisations (booking_id)
		WHERE is_active
	`)

	return db
}

// NewStockDB opens the legacy read-only stock database. Returns nil when no
// DSN is configured; nothing is migrated on it.
func NewStockDB(dsn string) *gorm.DB {
	if dsn == "" {
		return nil
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Printf("stock database unavailable, stock reports disabled: %v", err)
		return nil
	}
	return db
}
