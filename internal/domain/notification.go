package domain

import "time"

type NotificationKind string

const (
	NotifBookingRequested NotificationKind = "booking_requested"
	NotifBookingApproved  NotificationKind = "booking_approved"
	NotifBookingRejected  NotificationKind = "booking_rejected"
	NotifBookingPickedUp  NotificationKind = "booking_picked_up"
	NotifBookingCompleted NotificationKind = "booking_completed"
	NotifPaymentFailed    NotificationKind = "payment_failed"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `gorm:"index" json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Body      string           `json:"body,omitempty" gorm:"type:text"`
	Redirect  string           `json:"redirect,omitempty"`
	Data      any              `json:"data,omitempty" gorm:"serializer:json"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
