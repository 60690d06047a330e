package notification

import (
	"context"
	"fmt"
	"log"

	"renthub/internal/domain"
	"renthub/internal/modules/booking"
)

type template struct {
	kind     domain.NotificationKind
	title    string
	redirect string
}

// templates is the closed mapping from transition kind to notification
// shape. The redirect tells the client where to take the user when the
// notification is tapped.
var templates = map[booking.EventKind]template{
	booking.EventRequested:     {domain.NotifBookingRequested, "New booking request", "/owner/requests"},
	booking.EventApproved:      {domain.NotifBookingApproved, "Booking approved", "/payments"},
	booking.EventRejected:      {domain.NotifBookingRejected, "Booking rejected", "/bookings"},
	booking.EventPickedUp:      {domain.NotifBookingPickedUp, "Rental started", "/bookings"},
	booking.EventCompleted:     {domain.NotifBookingCompleted, "Rental completed", "/bookings"},
	booking.EventPaymentFailed: {domain.NotifPaymentFailed, "Payment failed", "/payments"},
}

// Dispatcher turns committed booking transitions into addressed
// notifications: one persisted inbox row plus a best-effort websocket push.
// Every failure is logged and swallowed — the transition that produced the
// event has already committed and must not be affected.
type Dispatcher struct {
	repo NotificationRepository
	hub  *Hub
}

func NewDispatcher(repo NotificationRepository, hub *Hub) *Dispatcher {
	return &Dispatcher{repo: repo, hub: hub}
}

func (d *Dispatcher) Publish(ctx context.Context, ev booking.Event) {
	tpl, ok := templates[ev.Kind]
	if !ok {
		log.Printf("notification: unmapped event kind %q, booking_id=%d", ev.Kind, ev.BookingID)
		return
	}

	n := &domain.Notification{
		UserID:   ev.RecipientID,
		Kind:     tpl.kind,
		Title:    tpl.title,
		Body:     eventBody(ev),
		Redirect: tpl.redirect,
		Data: map[string]any{
			"booking_id": ev.BookingID,
			"item_id":    ev.ItemID,
		},
	}

	if err := d.repo.Create(ctx, n); err != nil {
		log.Printf("notification: persist failed kind=%s user_id=%d booking_id=%d error=%v",
			ev.Kind, ev.RecipientID, ev.BookingID, err)
	}

	if d.hub != nil {
		d.hub.SendToUser(ev.RecipientID, map[string]any{
			"type":         "notification",
			"notification": n,
		})
	}
}

func eventBody(ev booking.Event) string {
	dates := fmt.Sprintf("%s – %s", ev.StartDate.Format("2006-01-02"), ev.EndDate.Format("2006-01-02"))

	switch ev.Kind {
	case booking.EventRequested:
		return fmt.Sprintf("New request for %q, %s", ev.ItemName, dates)
	case booking.EventApproved:
		return fmt.Sprintf("Your booking of %q (%s) was approved. Complete the payment to start the rental.", ev.ItemName, dates)
	case booking.EventRejected:
		msg := fmt.Sprintf("Your booking of %q (%s) was rejected", ev.ItemName, dates)
		if ev.Reason != "" {
			msg += ". Reason: " + ev.Reason
		}
		return msg
	case booking.EventPickedUp:
		return fmt.Sprintf("Rental of %q has started", ev.ItemName)
	case booking.EventCompleted:
		return fmt.Sprintf("Rental of %q is complete", ev.ItemName)
	case booking.EventPaymentFailed:
		msg := fmt.Sprintf("Payment for %q failed", ev.ItemName)
		if ev.Reason != "" {
			msg += ". Reason: " + ev.Reason
		}
		return msg
	}
	return ""
}
