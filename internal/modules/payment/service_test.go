package payment

import (
	"context"
	"testing"

	"renthub/internal/domain"
	"renthub/internal/modules/booking"
	"renthub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 555 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) MarkSettled(ctx context.Context, orderID string, status domain.PaymentStatus, txnID, reason string) error {
	args := m.Called(ctx, orderID, status, txnID, reason)
	return args.Error(0)
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

type MockSettler struct {
	mock.Mock
}

func (m *MockSettler) OnPaymentSettled(ctx context.Context, bookingID int64, success bool, reason string) error {
	args := m.Called(ctx, bookingID, success, reason)
	return args.Error(0)
}

func TestCreateOrder_Success(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	items := new(MockItemReader)
	settler := new(MockSettler)

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, ItemID: 5, RenterID: 20, TotalPrice: 300,
		Status: domain.BookingApproved,
	}, nil)
	items.On("GetByID", mock.Anything, int64(5)).Return(&domain.Item{
		ID: 5, OwnerID: 10, DepositAmount: 100,
	}, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(payments, bookings, items, settler, 10)

	p, err := service.CreateOrder(context.Background(), 1, 20)

	assert.NoError(t, err)
	assert.NotNil(t, p)
	assert.Equal(t, 300.0, p.RentalCharge)
	assert.Equal(t, 100.0, p.DepositAmount)
	assert.Equal(t, 30.0, p.PlatformFee)
	assert.Equal(t, 430.0, p.Amount)
	assert.NotEmpty(t, p.OrderID)
	assert.Equal(t, domain.PaymentPending, p.Status)
}

func TestCreateOrder_NotApproved(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	items := new(MockItemReader)
	settler := new(MockSettler)

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, ItemID: 5, RenterID: 20, Status: domain.BookingPending,
	}, nil)

	service := NewService(payments, bookings, items, settler, 10)

	_, err := service.CreateOrder(context.Background(), 1, 20)
	assert.ErrorIs(t, err, ErrNotPayable)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_WrongRenter(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	items := new(MockItemReader)
	settler := new(MockSettler)

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, ItemID: 5, RenterID: 20, Status: domain.BookingApproved,
	}, nil)

	service := NewService(payments, bookings, items, settler, 10)

	_, err := service.CreateOrder(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSettle_Success(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	items := new(MockItemReader)
	settler := new(MockSettler)

	p := &domain.Payment{ID: 1, BookingID: 7, OrderID: "ord-1", Status: domain.PaymentPending}
	payments.On("GetByOrderID", mock.Anything, "ord-1").Return(p, nil)
	payments.On("MarkSettled", mock.Anything, "ord-1", domain.PaymentSuccess, "txn-9", "").Return(nil)
	settler.On("OnPaymentSettled", mock.Anything, int64(7), true, "").Return(nil)

	service := NewService(payments, bookings, items, settler, 10)

	got, err := service.Settle(context.Background(), "ord-1", true, "txn-9", "")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	settler.AssertExpectations(t)
}

func TestSettle_AlreadySettled(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	items := new(MockItemReader)
	settler := new(MockSettler)

	p := &domain.Payment{ID: 1, BookingID: 7, OrderID: "ord-1", Status: domain.PaymentSuccess}
	payments.On("GetByOrderID", mock.Anything, "ord-1").Return(p, nil)
	payments.On("MarkSettled", mock.Anything, "ord-1", domain.PaymentSuccess, "txn-9", "").
		Return(repository.ErrStaleStatus)

	service := NewService(payments, bookings, items, settler, 10)

	_, err := service.Settle(context.Background(), "ord-1", true, "txn-9", "")
	assert.ErrorIs(t, err, ErrAlreadySettled)
	settler.AssertNotCalled(t, "OnPaymentSettled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSettle_BookingAlreadyTransitioned(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	items := new(MockItemReader)
	settler := new(MockSettler)

	p := &domain.Payment{ID: 1, BookingID: 7, OrderID: "ord-1", Status: domain.PaymentPending}
	payments.On("GetByOrderID", mock.Anything, "ord-1").Return(p, nil)
	payments.On("MarkSettled", mock.Anything, "ord-1", domain.PaymentSuccess, "txn-9", "").Return(nil)
	settler.On("OnPaymentSettled", mock.Anything, int64(7), true, "").
		Return(booking.ErrInvalidTransition)

	service := NewService(payments, bookings, items, settler, 10)

	_, err := service.Settle(context.Background(), "ord-1", true, "txn-9", "")
	assert.ErrorIs(t, err, ErrSettlementConflict,
		"a refused transition is distinct from both a settle failure and a double settle")
}

func TestSettle_FailureReachesArbitrator(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	items := new(MockItemReader)
	settler := new(MockSettler)

	p := &domain.Payment{ID: 1, BookingID: 7, OrderID: "ord-1", Status: domain.PaymentPending}
	payments.On("GetByOrderID", mock.Anything, "ord-1").Return(p, nil)
	payments.On("MarkSettled", mock.Anything, "ord-1", domain.PaymentFailed, "", "card declined").Return(nil)
	settler.On("OnPaymentSettled", mock.Anything, int64(7), false, "card declined").Return(nil)

	service := NewService(payments, bookings, items, settler, 10)

	_, err := service.Settle(context.Background(), "ord-1", false, "", "card declined")
	assert.NoError(t, err)
	settler.AssertExpectations(t)
}
