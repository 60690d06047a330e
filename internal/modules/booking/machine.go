package booking

import "renthub/internal/domain"

// transitions is the closed edge set of the booking lifecycle. REJECTED and
// COMPLETED are terminal; APPROVED->REJECTED exists only for the approval
// cascade and payment failure.
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingPending:  {domain.BookingApproved, domain.BookingRejected},
	domain.BookingApproved: {domain.BookingActive, domain.BookingRejected},
	domain.BookingActive:   {domain.BookingCompleted},
}

// CanTransition reports whether the edge from->to exists in the lifecycle.
func CanTransition(from, to domain.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SystemActor marks transitions driven by external events (payment
// settlement, overdue sweeper) rather than a user.
const SystemActor int64 = 0

// Authorize checks that actor may drive the booking over the given edge.
// The item owner decides PENDING edges; ACTIVE and COMPLETED may be driven
// by either party or by the system.
func Authorize(b *domain.Booking, item *domain.Item, actor int64, to domain.BookingStatus) error {
	if actor == SystemActor {
		return nil
	}
	switch to {
	case domain.BookingApproved, domain.BookingRejected:
		if actor != item.OwnerID && actor != b.RenterID {
			return ErrForbidden
		}
		// Renters may only withdraw their own pending request.
		if actor == b.RenterID && to == domain.BookingApproved {
			return ErrForbidden
		}
	case domain.BookingActive, domain.BookingCompleted:
		if actor != item.OwnerID && actor != b.RenterID {
			return ErrForbidden
		}
	}
	return nil
}
