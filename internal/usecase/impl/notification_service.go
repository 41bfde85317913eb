package impl

import (
	"context"
	"log/slog"

	deliverycontext "margdarshak/internal/delivery/context"
	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"
	"margdarshak/internal/errors"
	"margdarshak/internal/usecase"

	"github.com/google/uuid"
)

type notificationService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(txManager repository.TransactionManager, logger *slog.Logger) usecase.NotificationUsecase {
	return &notificationService{txManager: txManager, logger: logger}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID, filter repository.NotificationFilter) ([]*entity.Notification, error) {
	var notifications []*entity.Notification
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		notifications, err = repoFactory.NewNotificationRepository().ListNotifications(ctx, userID, filter)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

func (srv *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*entity.Notification, error) {
	var notification *entity.Notification
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewNotificationRepository()

		found, err := repo.FindNotificationByID(ctx, notificationID)
		if err != nil {
			return err
		}
		// Someone else's notification is reported as missing.
		if found.UserID != userID {
			return repository.ErrNotificationNotFound
		}
		if !found.IsRead {
			if err := repo.MarkRead(ctx, notificationID); err != nil {
				return err
			}
			found.IsRead = true
		}
		notification = found

		return nil
	})
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return nil, domainerrors.ErrNotificationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to mark notification read")
	}

	return notification, nil
}

func (srv *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	var changed int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		changed, err = repoFactory.NewNotificationRepository().MarkAllRead(ctx, userID)

		return err
	})
	if err != nil {
		return errors.Wrap(err, "failed to mark notifications read")
	}

	srv.log(ctx).Debug("Notifications marked read", slog.Int64("count", changed))

	return nil
}
