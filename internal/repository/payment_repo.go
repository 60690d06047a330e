package repository

import (
	"context"
	"time"

	"renthub/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

// MarkSettled finalizes a PENDING payment exactly once; a second settlement
// attempt for the same order affects no rows and returns ErrStaleStatus.
func (r *PaymentRepository) MarkSettled(ctx context.Context, orderID string, status domain.PaymentStatus, txnID, reason string) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("order_id = ? AND status = ?", orderID, domain.PaymentPending).
		Updates(map[string]any{
			"status":         status,
			"transaction_id": txnID,
			"failure_reason": reason,
			"settled_at":     now,
			"updated_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}
