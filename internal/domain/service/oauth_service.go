package service

import (
	"context"

	"margdarshak/internal/domain/entity"
)

// FederatedProfile is the identity asserted by an external provider after a code exchange.
type FederatedProfile struct {
	Provider      entity.ProviderType
	Subject       string // Provider-specific user ID (e.g., Google's 'sub' claim)
	Email         string
	EmailVerified bool
	Name          string
	AvatarURL     string
}

// OAuthService runs the authorization-code flow against one external provider.
type OAuthService interface {
	Provider() entity.ProviderType

	// BuildAuthorizationURL returns the provider consent URL bound to state and the PKCE verifier.
	BuildAuthorizationURL(state, codeVerifier string) string

	// Exchange trades an authorization code for the user's profile.
	Exchange(ctx context.Context, code, codeVerifier string) (*FederatedProfile, error)
}
