// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"margdarshak/internal/domain/entity"
)

// RegisterInput defines the data required to register a local account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// FederateInput carries an identity asserted by an external provider.
type FederateInput struct {
	Provider      entity.ProviderType
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// IdentityUsecase maps presented credentials to a canonical user, creating or linking accounts as needed.
type IdentityUsecase interface {
	// Register creates a password account. Fails with ErrEmailTaken, ErrWeakPassword or ErrInvalidPhone.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)
	// AuthenticateLocal fails with ErrInvalidCredentials whatever the underlying cause.
	AuthenticateLocal(ctx context.Context, email, password string) (*entity.User, error)
	// Federate returns the user linked to the provider subject, linking or creating one by email.
	Federate(ctx context.Context, input *FederateInput) (*entity.User, error)
	// ResolveFromToken fails with ErrInvalidToken or ErrUserNotFound.
	ResolveFromToken(ctx context.Context, token string) (*entity.User, error)
}
