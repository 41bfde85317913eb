package memory

import (
	"context"
	"slices"
	"time"

	"margdarshak/internal/domain/entity"
	"margdarshak/internal/domain/repository"

	"github.com/google/uuid"
)

type notificationRepository struct {
	data *state
	now  func() time.Time
}

func (repo *notificationRepository) ListNotifications(_ context.Context, userID uuid.UUID, filter repository.NotificationFilter) ([]*entity.Notification, error) {
	notifications := make([]*entity.Notification, 0)
	for _, notification := range repo.data.notifications {
		if notification.UserID != userID || (filter.UnreadOnly && notification.IsRead) {
			continue
		}
		notifications = append(notifications, &notification)
	}
	slices.SortFunc(notifications, func(a, b *entity.Notification) int {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})

	return page(notifications, filter.Page), nil
}

func (repo *notificationRepository) FindNotificationByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	notification, ok := repo.data.notifications[id]
	if !ok {
		return nil, repository.ErrNotificationNotFound
	}

	return &notification, nil
}

func (repo *notificationRepository) CreateNotification(_ context.Context, notification *entity.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = newID()
	}
	if notification.Type == "" {
		notification.Type = entity.NotificationTypeInfo
	}
	notification.CreatedAt = repo.now()
	repo.data.notifications[notification.ID] = *notification

	return nil
}

func (repo *notificationRepository) MarkRead(_ context.Context, id uuid.UUID) error {
	notification, ok := repo.data.notifications[id]
	if !ok {
		return repository.ErrNotificationNotFound
	}
	notification.IsRead = true
	repo.data.notifications[id] = notification

	return nil
}

func (repo *notificationRepository) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	var changed int64
	for id, notification := range repo.data.notifications {
		if notification.UserID == userID && !notification.IsRead {
			notification.IsRead = true
			repo.data.notifications[id] = notification
			changed++
		}
	}

	return changed, nil
}
