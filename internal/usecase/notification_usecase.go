package usecase

import (
	"context"

	"margdarshak/internal/domain/entity"
	"margdarshak/internal/domain/repository"

	"github.com/google/uuid"
)

// NotificationUsecase manages the authenticated user's inbox.
type NotificationUsecase interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, filter repository.NotificationFilter) ([]*entity.Notification, error)
	// MarkRead fails with ErrNotificationNotFound when the notification belongs to someone else.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*entity.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
