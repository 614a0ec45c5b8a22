package application

import (
	"context"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
)

type NotificationService struct {
	Notifications repo.NotificationRepository
}

func NewNotificationService(notifications repo.NotificationRepository) *NotificationService {
	return &NotificationService{Notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]entity.Notification, error) {
	return s.Notifications.List(ctx, userID, unreadOnly)
}

// MarkRead only touches notifications of userID.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return notFound(s.Notifications.MarkRead(ctx, id, userID))
}
