package booking

import (
	"context"
	"time"

	"renthub/internal/domain"
)

// BookingRepository is the persistence surface of the arbitrator. The
// multi-row methods (ApproveWithCascade, RejectApprovedAndRelease,
// CompleteAndRelease) must apply all of their writes atomically.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByRenter(ctx context.Context, renterID int64, limit, offset int) ([]domain.Booking, error)
	GetByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error)
	CountOverlapping(ctx context.Context, itemID int64, start, end time.Time, statuses []domain.BookingStatus, excludeID int64) (int64, error)
	FindOverlapping(ctx context.Context, itemID int64, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error)
	TransitionStatus(ctx context.Context, bookingID int64, from, to domain.BookingStatus, reason string) error
	ApproveWithCascade(ctx context.Context, bookingID, itemID int64, reason string) ([]domain.Booking, error)
	RejectApprovedAndRelease(ctx context.Context, bookingID, itemID int64, reason string) error
	CompleteAndRelease(ctx context.Context, bookingID, itemID int64) error
	UpdateDates(ctx context.Context, bookingID int64, start, end time.Time, total float64) error
	FindOverdueActive(ctx context.Context, asOf time.Time) ([]domain.Booking, error)
}

// ItemRepository is the narrow item-catalog view the arbitrator needs.
type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}
