package usecase

import (
	"context"

	"margdarshak/internal/domain/entity"
)

// CompleteFederationInput carries the provider callback parameters.
type CompleteFederationInput struct {
	Provider     string
	Code         string
	CodeVerifier string
}

// CompleteFederationOutput is the outcome of a successful provider callback.
type CompleteFederationOutput struct {
	User        *entity.User
	AccessToken string
	RedirectURL string
}

// FederationUsecase drives the authorization-code flow against registered providers.
type FederationUsecase interface {
	// Begin returns the provider consent URL.
	Begin(ctx context.Context, provider, state, codeVerifier string) (string, error)
	// Complete fails with ErrOAuthFailed carrying the reason.
	Complete(ctx context.Context, input *CompleteFederationInput) (*CompleteFederationOutput, error)
}
