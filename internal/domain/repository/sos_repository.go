package repository

import (
	"context"

	"margdarshak/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrSOSRequestNotFound is returned when an SOS request does not exist.
var ErrSOSRequestNotFound = errors.New("sos request not found")

// SOSRepository persists emergency requests.
type SOSRepository interface {
	CreateSOSRequest(ctx context.Context, request *entity.SOSRequest) error
	FindSOSRequestByID(ctx context.Context, id uuid.UUID) (*entity.SOSRequest, error)
}
