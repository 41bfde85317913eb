package memory

import (
	"context"
	"time"

	"margdarshak/internal/domain/entity"
	"margdarshak/internal/domain/repository"

	"github.com/google/uuid"
)

type sosRepository struct {
	data *state
	now  func() time.Time
}

func (repo *sosRepository) CreateSOSRequest(_ context.Context, request *entity.SOSRequest) error {
	if request.ID == uuid.Nil {
		request.ID = newID()
	}
	if request.Status == "" {
		request.Status = entity.SOSStatusPending
	}
	now := repo.now()
	request.CreatedAt = now
	request.UpdatedAt = now
	repo.data.sosRequests[request.ID] = *request

	return nil
}

func (repo *sosRepository) FindSOSRequestByID(_ context.Context, id uuid.UUID) (*entity.SOSRequest, error) {
	request, ok := repo.data.sosRequests[id]
	if !ok {
		return nil, repository.ErrSOSRequestNotFound
	}

	return &request, nil
}
