package repository

import (
	"context"
	"errors"
	"time"

	"renthub/internal/domain"

	"gorm.io/gorm"
)

// ErrStaleStatus is returned by conditional status updates when the booking
// was no longer in the expected source status at commit time.
var ErrStaleStatus = errors.New("booking status changed concurrently")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	ItemID          int64      `gorm:"column:item_id;index:idx_bookings_item_status"`
	RenterID        int64      `gorm:"column:renter_id;index"`
	StartDate       time.Time  `gorm:"column:start_date"`
	EndDate         time.Time  `gorm:"column:end_date"`
	TotalPrice      float64    `gorm:"column:total_price"`
	Status          string     `gorm:"column:status;index:idx_bookings_item_status"`
	RejectionReason *string    `gorm:"column:rejection_reason"`
	PickedUpAt      *time.Time `gorm:"column:picked_up_at"`
	ReturnedAt      *time.Time `gorm:"column:returned_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var reason string
	if m.RejectionReason != nil {
		reason = *m.RejectionReason
	}

	return &domain.Booking{
		ID:              m.ID,
		ItemID:          m.ItemID,
		RenterID:        m.RenterID,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		TotalPrice:      m.TotalPrice,
		Status:          domain.BookingStatus(m.Status),
		RejectionReason: reason,
		PickedUpAt:      m.PickedUpAt,
		ReturnedAt:      m.ReturnedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var reason *string
	if b.RejectionReason != "" {
		v := b.RejectionReason
		reason = &v
	}

	return bookingModel{
		ID:              b.ID,
		ItemID:          b.ItemID,
		RenterID:        b.RenterID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		RejectionReason: reason,
		PickedUpAt:      b.PickedUpAt,
		ReturnedAt:      b.ReturnedAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByRenter(ctx context.Context, renterID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// GetByOwner returns bookings against any item owned by ownerID.
func (r *BookingRepository) GetByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	q := `
SELECT b.*
FROM bookings b
JOIN items i ON i.id = b.item_id
WHERE i.owner_id = ?
ORDER BY b.created_at DESC
LIMIT ? OFFSET ?
`
	tx := r.db.WithContext(ctx).Raw(q, ownerID, limit, offset).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// CountOverlapping counts bookings of the item in the given statuses whose
// inclusive date range intersects [start, end]. excludeID is skipped when >0.
func (r *BookingRepository) CountOverlapping(ctx context.Context, itemID int64, start, end time.Time, statuses []domain.BookingStatus, excludeID int64) (int64, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("item_id = ? AND status IN ?", itemID, statusStrings(statuses)).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if tx := q.Count(&cnt); tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *BookingRepository) FindOverlapping(ctx context.Context, itemID int64, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("item_id = ? AND status IN ?", itemID, statusStrings(statuses)).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("id").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// TransitionStatus moves a booking from one status to another as a single
// conditional update. Returns ErrStaleStatus if the booking was not in the
// source status anymore.
func (r *BookingRepository) TransitionStatus(ctx context.Context, bookingID int64, from, to domain.BookingStatus, reason string) error {
	updates := map[string]any{"status": string(to), "updated_at": time.Now().UTC()}
	if reason != "" {
		updates["rejection_reason"] = reason
	}
	switch to {
	case domain.BookingActive:
		updates["picked_up_at"] = time.Now().UTC()
	case domain.BookingCompleted:
		updates["returned_at"] = time.Now().UTC()
	}

	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ?", bookingID, string(from)).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

// ApproveWithCascade commits the whole approval as one transaction: the
// target booking becomes APPROVED, the item is marked unavailable and every
// other PENDING booking for the item becomes REJECTED with the given reason.
// The cascaded bookings are returned with their post-commit status.
func (r *BookingRepository) ApproveWithCascade(ctx context.Context, bookingID, itemID int64, reason string) ([]domain.Booking, error) {
	var cascaded []domain.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status = ?", bookingID, string(domain.BookingPending)).
			Updates(map[string]any{"status": string(domain.BookingApproved), "updated_at": time.Now().UTC()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleStatus
		}

		var losers []bookingModel
		if err := tx.
			Where("item_id = ? AND status = ? AND id <> ?", itemID, string(domain.BookingPending), bookingID).
			Find(&losers).Error; err != nil {
			return err
		}

		if len(losers) > 0 {
			ids := make([]int64, 0, len(losers))
			for _, m := range losers {
				ids = append(ids, m.ID)
			}
			if err := tx.Model(&bookingModel{}).
				Where("id IN ?", ids).
				Updates(map[string]any{
					"status":           string(domain.BookingRejected),
					"rejection_reason": reason,
					"updated_at":       time.Now().UTC(),
				}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&itemModel{}).
			Where("id = ?", itemID).
			Update("is_available", false).Error; err != nil {
			return err
		}

		cascaded = make([]domain.Booking, 0, len(losers))
		for _, m := range losers {
			b := toDomainBooking(m)
			b.Status = domain.BookingRejected
			b.RejectionReason = reason
			cascaded = append(cascaded, *b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cascaded, nil
}

// RejectApprovedAndRelease rolls an APPROVED booking back to REJECTED (used
// when payment settlement fails) and restores item availability when no
// other APPROVED/ACTIVE booking remains.
func (r *BookingRepository) RejectApprovedAndRelease(ctx context.Context, bookingID, itemID int64, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status = ?", bookingID, string(domain.BookingApproved)).
			Updates(map[string]any{
				"status":           string(domain.BookingRejected),
				"rejection_reason": reason,
				"updated_at":       time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleStatus
		}
		return releaseItemIfIdle(tx, itemID)
	})
}

// CompleteAndRelease moves an ACTIVE booking to COMPLETED and restores item
// availability when it was the last APPROVED/ACTIVE booking for the item.
func (r *BookingRepository) CompleteAndRelease(ctx context.Context, bookingID, itemID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status = ?", bookingID, string(domain.BookingActive)).
			Updates(map[string]any{
				"status":      string(domain.BookingCompleted),
				"returned_at": now,
				"updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleStatus
		}
		return releaseItemIfIdle(tx, itemID)
	})
}

func releaseItemIfIdle(tx *gorm.DB, itemID int64) error {
	var busy int64
	if err := tx.Model(&bookingModel{}).
		Where("item_id = ? AND status IN ?", itemID,
			[]string{string(domain.BookingApproved), string(domain.BookingActive)}).
		Count(&busy).Error; err != nil {
		return err
	}
	if busy > 0 {
		return nil
	}
	return tx.Model(&itemModel{}).
		Where("id = ?", itemID).
		Update("is_available", true).Error
}

// UpdateDates rewrites the range and recomputed total of a PENDING booking.
func (r *BookingRepository) UpdateDates(ctx context.Context, bookingID int64, start, end time.Time, total float64) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ?", bookingID, string(domain.BookingPending)).
		Updates(map[string]any{
			"start_date":  start,
			"end_date":    end,
			"total_price": total,
			"updated_at":  time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

// CountByItemStatuses counts the item's bookings currently in any of the
// given statuses, regardless of dates.
func (r *BookingRepository) CountByItemStatuses(ctx context.Context, itemID int64, statuses []domain.BookingStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("item_id = ? AND status IN ?", itemID, statusStrings(statuses)).
		Count(&cnt)
	return cnt, tx.Error
}

// GetPendingByItem returns every PENDING booking of the item.
func (r *BookingRepository) GetPendingByItem(ctx context.Context, itemID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ?", itemID, string(domain.BookingPending)).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// FindOverdueActive returns ACTIVE bookings whose end date has passed.
func (r *BookingRepository) FindOverdueActive(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", string(domain.BookingActive), asOf).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
