package damage

import (
	"context"
	"testing"

	"renthub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockDamageReportRepository struct {
	mock.Mock
}

func (m *MockDamageReportRepository) Create(ctx context.Context, d *domain.DamageReport) error {
	args := m.Called(ctx, d)
	if d != nil {
		d.ID = 777 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockDamageReportRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.DamageReport, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DamageReport), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockItemReader struct {
	mock.Mock
}

func (m *MockItemReader) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func setupMocks(status domain.BookingStatus) (*MockDamageReportRepository, *MockBookingReader, *MockItemReader) {
	reports := new(MockDamageReportRepository)
	bookings := new(MockBookingReader)
	items := new(MockItemReader)

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, ItemID: 5, RenterID: 20, Status: status,
	}, nil)
	items.On("GetByID", mock.Anything, int64(5)).Return(&domain.Item{
		ID: 5, OwnerID: 10,
	}, nil)
	return reports, bookings, items
}

func TestReport_ByOwner(t *testing.T) {
	reports, bookings, items := setupMocks(domain.BookingActive)
	reports.On("GetByBookingID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)
	reports.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(reports, bookings, items)

	d, err := service.Report(context.Background(), 1, 10, "scratch on the lens barrel")

	assert.NoError(t, err)
	assert.Equal(t, int64(777), d.ID)
	assert.Equal(t, int64(10), d.ReportedBy)
	assert.False(t, d.ReportedAt.IsZero())
}

func TestReport_ByRenterOnCompleted(t *testing.T) {
	reports, bookings, items := setupMocks(domain.BookingCompleted)
	reports.On("GetByBookingID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)
	reports.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(reports, bookings, items)

	_, err := service.Report(context.Background(), 1, 20, "dented tripod mount")
	assert.NoError(t, err)
}

func TestReport_ByStranger(t *testing.T) {
	reports, bookings, items := setupMocks(domain.BookingActive)

	service := NewService(reports, bookings, items)

	_, err := service.Report(context.Background(), 1, 99, "nope")
	assert.ErrorIs(t, err, ErrForbidden)
	reports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReport_BeforePickup(t *testing.T) {
	reports, bookings, items := setupMocks(domain.BookingApproved)

	service := NewService(reports, bookings, items)

	_, err := service.Report(context.Background(), 1, 10, "premature")
	assert.ErrorIs(t, err, ErrBookingNotLive)
	reports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReport_SecondReportRefused(t *testing.T) {
	reports, bookings, items := setupMocks(domain.BookingActive)
	reports.On("GetByBookingID", mock.Anything, int64(1)).Return(&domain.DamageReport{
		ID: 777, BookingID: 1,
	}, nil)

	service := NewService(reports, bookings, items)

	_, err := service.Report(context.Background(), 1, 20, "again")
	assert.ErrorIs(t, err, ErrAlreadyReported)
	reports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGet_VisibleToBothParties(t *testing.T) {
	reports, bookings, items := setupMocks(domain.BookingCompleted)
	reports.On("GetByBookingID", mock.Anything, int64(1)).Return(&domain.DamageReport{
		ID: 777, BookingID: 1, ReportedBy: 10,
	}, nil)

	service := NewService(reports, bookings, items)

	for _, actor := range []int64{10, 20} {
		d, err := service.Get(context.Background(), 1, actor)
		assert.NoError(t, err)
		assert.Equal(t, int64(777), d.ID)
	}

	_, err := service.Get(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGet_NoReport(t *testing.T) {
	reports, bookings, items := setupMocks(domain.BookingCompleted)
	reports.On("GetByBookingID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(reports, bookings, items)

	_, err := service.Get(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}
