package repository

import (
	"renthub/internal/domain"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&itemModel{},
		&bookingModel{},
		&domain.Payment{},
		&domain.DamageReport{},
		&domain.Notification{},
	)
}
