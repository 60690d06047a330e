package booking

import (
	"context"
	"testing"
	"time"

	"renthub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendar_IsFree(t *testing.T) {
	repo := new(MockBookingRepository)
	cal := NewCalendar(repo)

	repo.On("CountOverlapping", mock.Anything, int64(1),
		date(2027, 1, 1), date(2027, 1, 5), blockingStatuses, int64(0)).
		Return(int64(0), nil).Once()

	free, err := cal.IsFree(context.Background(), 1, date(2027, 1, 1), date(2027, 1, 5))
	assert.NoError(t, err)
	assert.True(t, free)

	repo.On("CountOverlapping", mock.Anything, int64(1),
		date(2027, 1, 1), date(2027, 1, 5), blockingStatuses, int64(0)).
		Return(int64(1), nil).Once()

	free, err = cal.IsFree(context.Background(), 1, date(2027, 1, 1), date(2027, 1, 5))
	assert.NoError(t, err)
	assert.False(t, free)

	repo.AssertExpectations(t)
}

func TestCalendar_Conflicts_IncludesPending(t *testing.T) {
	repo := new(MockBookingRepository)
	cal := NewCalendar(repo)

	pending := []domain.Booking{
		{ID: 7, ItemID: 1, Status: domain.BookingPending},
		{ID: 8, ItemID: 1, Status: domain.BookingApproved},
	}
	repo.On("FindOverlapping", mock.Anything, int64(1),
		date(2027, 1, 1), date(2027, 1, 5), conflictStatuses).
		Return(pending, nil)

	got, err := cal.Conflicts(context.Background(), 1, date(2027, 1, 1), date(2027, 1, 5))
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}

func TestOverlaps_InclusiveBounds(t *testing.T) {
	start, end := date(2027, 1, 3), date(2027, 1, 7)

	assert.True(t, domain.Overlaps(start, end, date(2027, 1, 1), date(2027, 1, 3)), "touching at start")
	assert.True(t, domain.Overlaps(start, end, date(2027, 1, 7), date(2027, 1, 9)), "touching at end")
	assert.True(t, domain.Overlaps(start, end, date(2027, 1, 4), date(2027, 1, 5)), "contained")
	assert.False(t, domain.Overlaps(start, end, date(2027, 1, 1), date(2027, 1, 2)), "before")
	assert.False(t, domain.Overlaps(start, end, date(2027, 1, 8), date(2027, 1, 9)), "after")
}
