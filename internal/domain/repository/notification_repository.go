package repository

import (
	"context"

	"margdarshak/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrNotificationNotFound is returned when a notification does not exist.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationFilter narrows a notification listing.
type NotificationFilter struct {
	UnreadOnly bool
	Page       Page
}

// NotificationRepository persists user notifications.
type NotificationRepository interface {
	// ListNotifications returns the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID uuid.UUID, filter NotificationFilter) ([]*entity.Notification, error)
	FindNotificationByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	CreateNotification(ctx context.Context, notification *entity.Notification) error
	MarkRead(ctx context.Context, id uuid.UUID) error
	// MarkAllRead marks every unread notification of the user and returns how many changed.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}
