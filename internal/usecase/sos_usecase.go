package usecase

import (
	"context"

	"margdarshak/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateSOSInput defines an emergency request.
type CreateSOSInput struct {
	Location                 entity.Location
	Message                  string
	ContactEmergencyServices bool
}

// SOSUsecase records emergency requests and raises alerts for them.
type SOSUsecase interface {
	CreateSOS(ctx context.Context, userID uuid.UUID, input *CreateSOSInput) (*entity.SOSRequest, error)
	// GetSOS fails with ErrSOSNotFound when the request belongs to someone else.
	GetSOS(ctx context.Context, userID, sosID uuid.UUID) (*entity.SOSRequest, error)
}
