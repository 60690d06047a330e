package notification

import (
	"context"
	"errors"
	"testing"

	"renthub/internal/domain"
	"renthub/internal/modules/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestDispatcher_PersistsAddressedNotification(t *testing.T) {
	repo := new(MockNotificationRepository)

	var got *domain.Notification
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			got = args.Get(1).(*domain.Notification)
		}).
		Return(nil)

	d := NewDispatcher(repo, NewHub())

	d.Publish(context.Background(), booking.Event{
		Kind:        booking.EventApproved,
		BookingID:   7,
		ItemID:      3,
		ItemName:    "camera",
		RecipientID: 20,
		ActorID:     10,
	})

	assert.NotNil(t, got)
	assert.Equal(t, int64(20), got.UserID)
	assert.Equal(t, domain.NotifBookingApproved, got.Kind)
	assert.Equal(t, "/payments", got.Redirect)
	assert.Contains(t, got.Body, "camera")
	repo.AssertExpectations(t)
}

func TestDispatcher_RedirectMapping(t *testing.T) {
	cases := []struct {
		kind     booking.EventKind
		redirect string
	}{
		{booking.EventRequested, "/owner/requests"},
		{booking.EventApproved, "/payments"},
		{booking.EventRejected, "/bookings"},
		{booking.EventPickedUp, "/bookings"},
		{booking.EventCompleted, "/bookings"},
		{booking.EventPaymentFailed, "/payments"},
	}

	for _, tc := range cases {
		repo := new(MockNotificationRepository)
		var got *domain.Notification
		repo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				got = args.Get(1).(*domain.Notification)
			}).
			Return(nil)

		d := NewDispatcher(repo, nil)
		d.Publish(context.Background(), booking.Event{Kind: tc.kind, RecipientID: 1})

		assert.NotNil(t, got, string(tc.kind))
		assert.Equal(t, tc.redirect, got.Redirect, string(tc.kind))
	}
}

// A failing store must not panic or propagate: the transition that produced
// the event has already committed.
func TestDispatcher_SwallowsPersistFailure(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	d := NewDispatcher(repo, NewHub())

	assert.NotPanics(t, func() {
		d.Publish(context.Background(), booking.Event{
			Kind:        booking.EventRejected,
			RecipientID: 20,
			Reason:      "conflicting booking approved",
		})
	})
}

func TestDispatcher_UnmappedKindIgnored(t *testing.T) {
	repo := new(MockNotificationRepository)
	d := NewDispatcher(repo, nil)

	d.Publish(context.Background(), booking.Event{Kind: "unknown", RecipientID: 20})

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHub_SendToUser_Offline(t *testing.T) {
	hub := NewHub()
	assert.False(t, hub.SendToUser(42, map[string]any{"type": "notification"}))
}
