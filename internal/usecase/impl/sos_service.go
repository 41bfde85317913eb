package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "margdarshak/internal/delivery/context"
	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"
	"margdarshak/internal/domain/service"
	"margdarshak/internal/errors"
	"margdarshak/internal/usecase"

	"github.com/google/uuid"
)

const (
	sosNotificationTitle   = "SOS Request Received"
	sosNotificationMessage = "Your SOS request has been received. Emergency contacts have been notified."
)

type sosService struct {
	txManager repository.TransactionManager
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewSOSService is the constructor for sosService.
func NewSOSService(txManager repository.TransactionManager, publisher service.EventPublisher, logger *slog.Logger) usecase.SOSUsecase {
	return &sosService{txManager: txManager, publisher: publisher, logger: logger}
}

func (srv *sosService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateSOS stores the request together with an alert notification, then publishes the alert.
// A publish failure is logged and does not fail the request.
func (srv *sosService) CreateSOS(ctx context.Context, userID uuid.UUID, input *usecase.CreateSOSInput) (*entity.SOSRequest, error) {
	loc := input.Location
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("latitude or longitude out of range")
	}

	request := &entity.SOSRequest{
		UserID:                   userID,
		Location:                 loc,
		Message:                  input.Message,
		ContactEmergencyServices: input.ContactEmergencyServices,
		Status:                   entity.SOSStatusPending,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewSOSRepository().CreateSOSRequest(ctx, request); err != nil {
			return err
		}

		return repoFactory.NewNotificationRepository().CreateNotification(ctx, &entity.Notification{
			UserID:  userID,
			Title:   sosNotificationTitle,
			Message: sosNotificationMessage,
			Type:    entity.NotificationTypeAlert,
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sos request")
	}

	srv.log(ctx).Info("SOS request recorded", slog.Any("sosID", request.ID))

	event := &service.SOSAlertEvent{
		RequestID:                deliverycontext.GetRequestIDFromContext(ctx),
		SOSID:                    request.ID.String(),
		UserID:                   userID.String(),
		Latitude:                 loc.Latitude,
		Longitude:                loc.Longitude,
		Message:                  request.Message,
		ContactEmergencyServices: request.ContactEmergencyServices,
		CreatedAt:                request.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := srv.publisher.PublishSOSAlert(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish SOS alert", slog.Any("sosID", request.ID), slog.Any("error", err))
	}

	return request, nil
}

func (srv *sosService) GetSOS(ctx context.Context, userID, sosID uuid.UUID) (*entity.SOSRequest, error) {
	var request *entity.SOSRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewSOSRepository().FindSOSRequestByID(ctx, sosID)
		if err != nil {
			return err
		}
		if found.UserID != userID {
			return repository.ErrSOSRequestNotFound
		}
		request = found

		return nil
	})
	if errors.Is(err, repository.ErrSOSRequestNotFound) {
		return nil, domainerrors.ErrSOSNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sos request")
	}

	return request, nil
}
