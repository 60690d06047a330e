package repository

import (
	"context"

	"renthub/internal/domain"

	"gorm.io/gorm"
)

type DamageReportRepository struct {
	db *gorm.DB
}

func NewDamageReportRepository(db *gorm.DB) *DamageReportRepository {
	return &DamageReportRepository{db: db}
}

func (r *DamageReportRepository) Create(ctx context.Context, d *domain.DamageReport) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DamageReportRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.DamageReport, error) {
	var d domain.DamageReport
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
