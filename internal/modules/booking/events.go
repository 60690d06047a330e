package booking

import (
	"context"
	"time"

	"renthub/internal/domain"
)

type EventKind string

const (
	EventRequested     EventKind = "requested"
	EventApproved      EventKind = "approved"
	EventRejected      EventKind = "rejected"
	EventPickedUp      EventKind = "picked_up"
	EventCompleted     EventKind = "completed"
	EventPaymentFailed EventKind = "payment_failed"
)

// Event is the record of one committed booking transition. Exactly one event
// is produced per transition; it is handed to the sink only after the
// per-item lock has been released.
type Event struct {
	Kind        EventKind
	BookingID   int64
	ItemID      int64
	ItemName    string
	RecipientID int64
	ActorID     int64
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
	OccurredAt  time.Time
}

// EventSink receives committed transition events. Implementations must be
// best-effort: a sink failure never affects the transition that produced
// the event.
type EventSink interface {
	Publish(ctx context.Context, ev Event)
}

func newEvent(kind EventKind, b *domain.Booking, item *domain.Item, recipient, actor int64, reason string) Event {
	ev := Event{
		Kind:        kind,
		BookingID:   b.ID,
		ItemID:      b.ItemID,
		RecipientID: recipient,
		ActorID:     actor,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Reason:      reason,
		OccurredAt:  time.Now().UTC(),
	}
	if item != nil {
		ev.ItemName = item.Name
	}
	return ev
}
