package repository

import (
	"context"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

type MentorRepository interface {
	ListAvailable(ctx context.Context) ([]entity.Mentor, error)
	ActiveAssignment(ctx context.Context, userID string) (*entity.MentorAssignment, error)
	Messages(ctx context.Context, assignmentID string) ([]entity.MentorMessage, error)
	AddMessage(ctx context.Context, m *entity.MentorMessage) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context, userID string, unreadOnly bool) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}
