package usecase

import (
	"context"
	"time"

	"margdarshak/internal/domain/entity"
)

// TokenTypeBearer is the token_type reported to clients.
const TokenTypeBearer = "bearer"

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput returns the issued session token.
// RefreshToken is empty unless refresh tokens are enabled.
type LoginOutput struct {
	AccessToken  string
	TokenType    string
	ExpiresIn    time.Duration
	RefreshToken string
	User         *entity.User
}

// ValidateOutput reports whether a presented token resolves to an active user.
type ValidateOutput struct {
	Valid bool
	User  *entity.User
}

// RefreshOutput returns a freshly minted access token.
type RefreshOutput struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}

// SessionUsecase is the session boundary between wire credentials and the identity resolver.
type SessionUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	// Validate never fails. Every error collapses to an invalid result.
	Validate(ctx context.Context, token string) *ValidateOutput
	// RequireIdentity fails with ErrUnauthorized when the token does not resolve.
	RequireIdentity(ctx context.Context, token string) (*entity.User, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error)
	// Logout revokes the refresh token when one is presented.
	Logout(ctx context.Context, refreshToken string) error
}
