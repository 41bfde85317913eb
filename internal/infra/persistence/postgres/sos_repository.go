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

type sosRepository struct {
	db *gorm.DB
}

// NewSOSRepository is the constructor for sosRepository.
func NewSOSRepository(db *gorm.DB) repository.SOSRepository {
	return &sosRepository{db: db}
}

func (repo *sosRepository) CreateSOSRequest(ctx context.Context, request *entity.SOSRequest) error {
	requestM := &model.SOSRequestModel{
		ID:                       request.ID,
		UserID:                   request.UserID,
		Latitude:                 request.Location.Latitude,
		Longitude:                request.Location.Longitude,
		Message:                  request.Message,
		ContactEmergencyServices: request.ContactEmergencyServices,
		Status:                   string(request.Status),
	}
	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create sos request")
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt
	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

func (repo *sosRepository) FindSOSRequestByID(ctx context.Context, id uuid.UUID) (*entity.SOSRequest, error) {
	var requestM model.SOSRequestModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&requestM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSOSRequestNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find sos request")
	}

	return &entity.SOSRequest{
		ID:                       requestM.ID,
		UserID:                   requestM.UserID,
		Location:                 entity.Location{Latitude: requestM.Latitude, Longitude: requestM.Longitude},
		Message:                  requestM.Message,
		ContactEmergencyServices: requestM.ContactEmergencyServices,
		Status:                   entity.SOSStatus(requestM.Status),
		CreatedAt:                requestM.CreatedAt,
		UpdatedAt:                requestM.UpdatedAt,
	}, nil
}
