// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"margdarshak/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// Email and the (provider, subject) pair are unique across users.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their exact email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByProvider retrieves the user linked to an external provider subject.
	FindByProvider(ctx context.Context, provider entity.ProviderType, subject string) (*entity.User, error)

	// Create persists a new user. A duplicate email yields domain ErrEmailTaken.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user. A duplicate provider link yields domain ErrFederationConflict.
	Update(ctx context.Context, user *entity.User) error
}
