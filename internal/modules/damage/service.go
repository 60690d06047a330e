package damage

import (
	"context"
	"errors"
	"time"

	"renthub/internal/domain"

	"gorm.io/gorm"
)

type DamageReportRepository interface {
	Create(ctx context.Context, d *domain.DamageReport) error
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.DamageReport, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ItemReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}

type Service struct {
	reports  DamageReportRepository
	bookings BookingReader
	items    ItemReader
}

func NewService(reports DamageReportRepository, bookings BookingReader, items ItemReader) *Service {
	return &Service{reports: reports, bookings: bookings, items: items}
}

// Report files the single damage report of a booking. Only the item owner
// or the renter may file one, and only once the rental is ACTIVE or
// COMPLETED.
func (s *Service) Report(ctx context.Context, bookingID, reporterID int64, description string) (*domain.DamageReport, error) {
	b, item, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if reporterID != item.OwnerID && reporterID != b.RenterID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingActive && b.Status != domain.BookingCompleted {
		return nil, ErrBookingNotLive
	}

	if _, err := s.reports.GetByBookingID(ctx, bookingID); err == nil {
		return nil, ErrAlreadyReported
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	d := &domain.DamageReport{
		BookingID:   bookingID,
		ReportedBy:  reporterID,
		Description: description,
		ReportedAt:  time.Now().UTC(),
	}
	if err := s.reports.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, bookingID, actorID int64) (*domain.DamageReport, error) {
	b, item, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorID != item.OwnerID && actorID != b.RenterID {
		return nil, ErrForbidden
	}

	d, err := s.reports.GetByBookingID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) load(ctx context.Context, bookingID int64) (*domain.Booking, *domain.Item, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	item, err := s.items.GetByID(ctx, b.ItemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return b, item, nil
}
