package catalog

import (
	"context"
	"time"

	"renthub/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, i *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context, limit, offset int) ([]domain.Item, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error)
	Update(ctx context.Context, i *domain.Item) error
	SetDelisted(ctx context.Context, id int64, delisted bool) error
	Delete(ctx context.Context, id int64) error
}

// BookingReader is the slice of booking persistence the catalog needs to
// keep listing changes consistent with live bookings.
type BookingReader interface {
	CountByItemStatuses(ctx context.Context, itemID int64, statuses []domain.BookingStatus) (int64, error)
	GetPendingByItem(ctx context.Context, itemID int64) ([]domain.Booking, error)
	UpdateDates(ctx context.Context, bookingID int64, start, end time.Time, total float64) error
}
