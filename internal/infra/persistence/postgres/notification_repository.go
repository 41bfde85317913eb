package postgres

import (
	"context"

	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"
	"margdarshak/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) ListNotifications(ctx context.Context, userID uuid.UUID, filter repository.NotificationFilter) ([]*entity.Notification, error) {
	query := repo.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notificationMs []model.NotificationModel
	err := query.
		Order("created_at DESC").
		Offset(filter.Page.Offset).
		Limit(filter.Page.Limit).
		Find(&notificationMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list notifications")
	}

	notifications := make([]*entity.Notification, 0, len(notificationMs))
	for i := range notificationMs {
		notifications = append(notifications, toNotificationDomain(&notificationMs[i]))
	}

	return notifications, nil
}

func (repo *notificationRepository) FindNotificationByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var notificationM model.NotificationModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&notificationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotificationNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find notification")
	}

	return toNotificationDomain(&notificationM), nil
}

func (repo *notificationRepository) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	notificationM := &model.NotificationModel{
		ID:      notification.ID,
		UserID:  notification.UserID,
		Title:   notification.Title,
		Message: notification.Message,
		Type:    string(notification.Type),
		IsRead:  notification.IsRead,
	}
	if err := repo.db.WithContext(ctx).Create(notificationM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create notification")
	}

	notification.ID = notificationM.ID
	notification.CreatedAt = notificationM.CreatedAt

	return nil
}

func (repo *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark notification read")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

func (repo *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark notifications read")
	}

	return result.RowsAffected, nil
}

func toNotificationDomain(data *model.NotificationModel) *entity.Notification {
	return &entity.Notification{
		ID:        data.ID,
		UserID:    data.UserID,
		Title:     data.Title,
		Message:   data.Message,
		Type:      entity.NotificationType(data.Type),
		IsRead:    data.IsRead,
		CreatedAt: data.CreatedAt,
	}
}
