package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"renthub/internal/domain"
	"renthub/internal/repository"

	"gorm.io/gorm"
)

const (
	// CascadeReason is recorded on every PENDING booking rejected as a side
	// effect of approving a competitor.
	CascadeReason = "conflicting booking approved"

	renterCancelReason  = "cancelled by renter"
	ownerRejectReason   = "rejected by owner"
	paymentFailedReason = "payment failed"
)

// Service is the booking arbitrator: the only component that creates
// bookings or drives the APPROVED/REJECTED edges. State-changing operations
// on one item are serialized through a per-item lock; events are handed to
// the sink strictly after the lock is released.
type Service struct {
	bookings BookingRepository
	items    ItemRepository
	calendar *Calendar
	sink     EventSink
	locks    *itemLocks
}

func NewService(bookings BookingRepository, items ItemRepository, sink EventSink, lockWait time.Duration) *Service {
	return &Service{
		bookings: bookings,
		items:    items,
		calendar: NewCalendar(bookings),
		sink:     sink,
		locks:    newItemLocks(lockWait),
	}
}

func (s *Service) Calendar() *Calendar { return s.calendar }

// RequestBooking creates a PENDING booking. Overlapping PENDING requests are
// deliberately allowed to coexist; the first approval wins and the rest get
// the cascade. Only a delisted item refuses new requests.
func (s *Service) RequestBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	start := DateOnly(req.StartDate)
	end := DateOnly(req.EndDate)

	if !end.After(start) {
		return nil, ErrDateRange
	}
	if start.Before(DateOnly(time.Now().UTC())) {
		return nil, ErrDateRange
	}

	item, err := s.getItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Delisted {
		return nil, ErrItemUnavailable
	}

	days := int(end.Sub(start).Hours()/24) + 1
	total := math.Round(item.PricePerDay*float64(days)*100) / 100

	b := &domain.Booking{
		ItemID:     item.ID,
		RenterID:   req.RenterID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: total,
		Status:     domain.BookingPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, newEvent(EventRequested, b, item, item.OwnerID, req.RenterID, ""))
	return b, nil
}

// Approve transitions a PENDING booking to APPROVED, marks the item
// unavailable and rejects every other PENDING booking for the item, all in
// one atomic unit under the per-item lock.
func (s *Service) Approve(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, item, err := s.getBookingWithItem(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorID != item.OwnerID {
		return nil, ErrForbidden
	}

	var cascaded []domain.Booking
	err = s.withItemLock(ctx, b.ItemID, func() error {
		cur, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if cur.Status != domain.BookingPending {
			return ErrInvalidTransition
		}

		free, err := s.calendar.isFreeExcluding(ctx, cur.ItemID, cur.StartDate, cur.EndDate, cur.ID)
		if err != nil {
			return err
		}
		if !free {
			return ErrItemUnavailable
		}

		cascaded, err = s.bookings.ApproveWithCascade(ctx, cur.ID, cur.ItemID, CascadeReason)
		if errors.Is(err, repository.ErrStaleStatus) {
			return ErrInvalidTransition
		}
		if err != nil {
			return err
		}
		b = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.Status = domain.BookingApproved
	s.publish(ctx, newEvent(EventApproved, b, item, b.RenterID, actorID, ""))
	for i := range cascaded {
		c := cascaded[i]
		s.publish(ctx, newEvent(EventRejected, &c, item, c.RenterID, actorID, CascadeReason))
	}
	return b, nil
}

// Reject moves a PENDING booking to REJECTED. The owner rejects a request;
// the renter withdraws their own. No cascade either way.
func (s *Service) Reject(ctx context.Context, bookingID, actorID int64, reason string) (*domain.Booking, error) {
	b, item, err := s.getBookingWithItem(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(b, item, actorID, domain.BookingRejected); err != nil {
		return nil, err
	}

	if reason == "" {
		reason = ownerRejectReason
		if actorID == b.RenterID {
			reason = renterCancelReason
		}
	}

	err = s.withItemLock(ctx, b.ItemID, func() error {
		err := s.bookings.TransitionStatus(ctx, b.ID, domain.BookingPending, domain.BookingRejected, reason)
		if errors.Is(err, repository.ErrStaleStatus) {
			return ErrInvalidTransition
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	b.Status = domain.BookingRejected
	b.RejectionReason = reason

	recipient := b.RenterID
	if actorID == b.RenterID {
		recipient = item.OwnerID
	}
	s.publish(ctx, newEvent(EventRejected, b, item, recipient, actorID, reason))
	return b, nil
}

// Cancel is the renter withdrawing their own PENDING request.
func (s *Service) Cancel(ctx context.Context, bookingID, renterID int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, ErrForbidden
	}
	return s.Reject(ctx, bookingID, renterID, renterCancelReason)
}

// UpdateDates lets the renter move a still-PENDING request; the total is
// recomputed from the item's current price. Once APPROVED the price and
// range are frozen.
func (s *Service) UpdateDates(ctx context.Context, bookingID, renterID int64, startDate, endDate time.Time) (*domain.Booking, error) {
	start := DateOnly(startDate)
	end := DateOnly(endDate)
	if !end.After(start) {
		return nil, ErrDateRange
	}
	if start.Before(DateOnly(time.Now().UTC())) {
		return nil, ErrDateRange
	}

	b, item, err := s.getBookingWithItem(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, ErrForbidden
	}

	days := int(end.Sub(start).Hours()/24) + 1
	total := math.Round(item.PricePerDay*float64(days)*100) / 100

	err = s.withItemLock(ctx, b.ItemID, func() error {
		err := s.bookings.UpdateDates(ctx, b.ID, start, end, total)
		if errors.Is(err, repository.ErrStaleStatus) {
			return ErrInvalidTransition
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.getBooking(ctx, bookingID)
}

// OnPaymentSettled reacts to a settlement outcome reported by the payment
// subsystem. Success authorizes pickup (APPROVED -> ACTIVE); failure rolls
// the booking back to REJECTED and frees the item.
func (s *Service) OnPaymentSettled(ctx context.Context, bookingID int64, success bool, reason string) error {
	b, item, err := s.getBookingWithItem(ctx, bookingID)
	if err != nil {
		return err
	}

	if success {
		err = s.withItemLock(ctx, b.ItemID, func() error {
			err := s.bookings.TransitionStatus(ctx, b.ID, domain.BookingApproved, domain.BookingActive, "")
			if errors.Is(err, repository.ErrStaleStatus) {
				return ErrInvalidTransition
			}
			return err
		})
		if err != nil {
			return err
		}
		b.Status = domain.BookingActive
		s.publish(ctx, newEvent(EventPickedUp, b, item, item.OwnerID, SystemActor, ""))
		return nil
	}

	if reason == "" {
		reason = paymentFailedReason
	}
	err = s.withItemLock(ctx, b.ItemID, func() error {
		err := s.bookings.RejectApprovedAndRelease(ctx, b.ID, b.ItemID, reason)
		if errors.Is(err, repository.ErrStaleStatus) {
			return ErrInvalidTransition
		}
		return err
	})
	if err != nil {
		return err
	}
	b.Status = domain.BookingRejected
	b.RejectionReason = reason
	s.publish(ctx, newEvent(EventPaymentFailed, b, item, b.RenterID, SystemActor, reason))
	return nil
}

// Complete closes an ACTIVE rental (item returned) and restores item
// availability when it was the last live booking. Either party may drive
// it; the overdue sweeper uses SystemActor.
func (s *Service) Complete(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, item, err := s.getBookingWithItem(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(b, item, actorID, domain.BookingCompleted); err != nil {
		return nil, err
	}

	err = s.withItemLock(ctx, b.ItemID, func() error {
		err := s.bookings.CompleteAndRelease(ctx, b.ID, b.ItemID)
		if errors.Is(err, repository.ErrStaleStatus) {
			return ErrInvalidTransition
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	b.Status = domain.BookingCompleted

	recipient := item.OwnerID
	if actorID == item.OwnerID {
		recipient = b.RenterID
	}
	s.publish(ctx, newEvent(EventCompleted, b, item, recipient, actorID, ""))
	return b, nil
}

// CompleteOverdue closes every ACTIVE booking whose end date has passed.
// Called by the background sweeper.
func (s *Service) CompleteOverdue(ctx context.Context) (int, error) {
	overdue, err := s.bookings.FindOverdueActive(ctx, DateOnly(time.Now().UTC()))
	if err != nil {
		return 0, err
	}

	done := 0
	for _, b := range overdue {
		if _, err := s.Complete(ctx, b.ID, SystemActor); err != nil {
			// Someone may have returned it concurrently; skip and move on.
			if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrConcurrency) {
				continue
			}
			return done, err
		}
		done++
	}
	return done, nil
}

func (s *Service) GetByID(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, item, err := s.getBookingWithItem(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorID != b.RenterID && actorID != item.OwnerID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) GetMyBookings(ctx context.Context, renterID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.GetByRenter(ctx, renterID, limit, offset)
}

func (s *Service) GetOwnerBookings(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.GetByOwner(ctx, ownerID, limit, offset)
}

func (s *Service) withItemLock(ctx context.Context, itemID int64, fn func() error) error {
	release, err := s.locks.acquire(ctx, itemID)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

func (s *Service) publish(ctx context.Context, ev Event) {
	if s.sink == nil {
		return
	}
	s.sink.Publish(ctx, ev)
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) getItem(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) getBookingWithItem(ctx context.Context, bookingID int64) (*domain.Booking, *domain.Item, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	item, err := s.getItem(ctx, b.ItemID)
	if err != nil {
		return nil, nil, err
	}
	return b, item, nil
}

// DateOnly truncates a timestamp to UTC midnight; bookings are whole-day
// ranges.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
