package notification

import (
	"context"

	"renthub/internal/domain"
)

// Service is the user-facing inbox over persisted notifications.
type Service struct {
	repo NotificationRepository
}

func NewService(repo NotificationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
