package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies an external identity provider.
type ProviderType string

const (
	ProviderGoogle ProviderType = "google"
)

// RefreshToken represents a long-lived, revocable session grant.
// Access tokens are verified without consulting these records.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this specific refresh token record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time // The exact time when this refresh token will expire and become invalid.
	Revoked   bool      // Set on logout.
	CreatedAt time.Time // Timestamp of when this session was created (i.e., when the user logged in).
}

// IsUsable reports whether the token can still mint access tokens at now.
func (t *RefreshToken) IsUsable(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
