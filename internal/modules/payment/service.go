package payment

import (
	"context"
	"errors"
	"math"

	"renthub/internal/domain"
	"renthub/internal/modules/booking"
	"renthub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service correlates bookings with payment attempts. Gateway protocol
// details (order signing, webhooks) live outside; Settle is the narrow
// boundary through which outcomes come back.
type Service struct {
	payments   PaymentRepository
	bookings   BookingReader
	items      ItemReader
	settler    Settler
	feePercent float64
}

func NewService(payments PaymentRepository, bookings BookingReader, items ItemReader, settler Settler, feePercent float64) *Service {
	return &Service{
		payments:   payments,
		bookings:   bookings,
		items:      items,
		settler:    settler,
		feePercent: feePercent,
	}
}

// CreateOrder opens a new payment attempt for an APPROVED booking. Each
// attempt gets its own row and order id; earlier failed attempts stay for
// audit.
func (s *Service) CreateOrder(ctx context.Context, bookingID, renterID int64) (*domain.Payment, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingApproved {
		return nil, ErrNotPayable
	}

	item, err := s.items.GetByID(ctx, b.ItemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	fee := round2(b.TotalPrice * s.feePercent / 100)
	p := &domain.Payment{
		BookingID:     b.ID,
		RenterID:      renterID,
		RentalCharge:  b.TotalPrice,
		DepositAmount: item.DepositAmount,
		PlatformFee:   fee,
		Amount:        round2(b.TotalPrice + item.DepositAmount + fee),
		OrderID:       uuid.NewString(),
		Status:        domain.PaymentPending,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Settle records the gateway outcome for an order exactly once, then hands
// the result to the booking arbitrator.
func (s *Service) Settle(ctx context.Context, orderID string, success bool, txnID, reason string) (*domain.Payment, error) {
	p, err := s.payments.GetByOrderID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	status := domain.PaymentSuccess
	if !success {
		status = domain.PaymentFailed
	}

	err = s.payments.MarkSettled(ctx, orderID, status, txnID, reason)
	if errors.Is(err, repository.ErrStaleStatus) {
		return nil, ErrAlreadySettled
	}
	if err != nil {
		return nil, err
	}

	if err := s.settler.OnPaymentSettled(ctx, p.BookingID, success, reason); err != nil {
		// The payment row is already finalized at this point; retrying the
		// callback would only hit ErrAlreadySettled. A refused transition
		// gets its own outcome so the gateway can tell it apart.
		if errors.Is(err, booking.ErrInvalidTransition) {
			return nil, ErrSettlementConflict
		}
		return nil, err
	}

	return s.payments.GetByOrderID(ctx, orderID)
}

func (s *Service) GetBookingPayments(ctx context.Context, bookingID, renterID int64) ([]domain.Payment, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, ErrForbidden
	}
	return s.payments.GetByBookingID(ctx, bookingID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
