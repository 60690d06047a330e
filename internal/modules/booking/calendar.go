package booking

import (
	"context"
	"time"

	"renthub/internal/domain"
)

// blockingStatuses are the statuses that consume item capacity. PENDING
// requests never block availability: any number of them may overlap until
// one is approved.
var blockingStatuses = []domain.BookingStatus{
	domain.BookingApproved,
	domain.BookingActive,
}

var conflictStatuses = []domain.BookingStatus{
	domain.BookingPending,
	domain.BookingApproved,
	domain.BookingActive,
}

// Calendar answers availability questions over current booking state. It is
// a pure read layer with no side effects.
type Calendar struct {
	bookings BookingRepository
}

func NewCalendar(bookings BookingRepository) *Calendar {
	return &Calendar{bookings: bookings}
}

// IsFree reports whether no APPROVED/ACTIVE booking of the item overlaps
// the inclusive range [start, end].
func (c *Calendar) IsFree(ctx context.Context, itemID int64, start, end time.Time) (bool, error) {
	return c.isFreeExcluding(ctx, itemID, start, end, 0)
}

// isFreeExcluding is IsFree with one booking left out of consideration,
// used when deciding whether that booking itself may be approved.
func (c *Calendar) isFreeExcluding(ctx context.Context, itemID int64, start, end time.Time, excludeID int64) (bool, error) {
	cnt, err := c.bookings.CountOverlapping(ctx, itemID, start, end, blockingStatuses, excludeID)
	if err != nil {
		return false, err
	}
	return cnt == 0, nil
}

// Conflicts returns every PENDING/APPROVED/ACTIVE booking of the item
// overlapping the range.
func (c *Calendar) Conflicts(ctx context.Context, itemID int64, start, end time.Time) ([]domain.Booking, error) {
	return c.bookings.FindOverlapping(ctx, itemID, start, end, conflictStatuses)
}
