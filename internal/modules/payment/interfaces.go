package payment

import (
	"context"

	"renthub/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	MarkSettled(ctx context.Context, orderID string, status domain.PaymentStatus, txnID, reason string) error
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ItemReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}

// Settler is the booking arbitrator's settlement entry point. Payment never
// writes booking state directly; outcomes flow through this boundary.
type Settler interface {
	OnPaymentSettled(ctx context.Context, bookingID int64, success bool, reason string) error
}
