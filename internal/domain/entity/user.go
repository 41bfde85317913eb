// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the persistent record of a person who can authenticate.
// A user holds a local password, an external provider link, or both.
type User struct {
	ID            uuid.UUID    // The Global Unique Identifier (GUID) for the user.
	Email         string       // Unique login identifier, matched exactly.
	Name          string       // Optional display name.
	Phone         string       // Optional phone number, already validated.
	PasswordHash  string       // bcrypt digest; empty for federated-only users.
	OAuthProvider ProviderType // External identity provider, empty when unlinked.
	OAuthID       string       // The provider's subject identifier, empty when unlinked.
	IsVerified    bool         // Set when the provider vouched for the email address.
	IsActive      bool         // Inactive users cannot resolve a session.
	CreatedAt     time.Time    // Timestamp of when this user account was created.
	UpdatedAt     time.Time    // Timestamp of the last modification to this user's data.
}

// HasPassword reports whether the user can authenticate locally.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// IsFederated reports whether the user is linked to an external provider.
func (u *User) IsFederated() bool {
	return u.OAuthProvider != "" && u.OAuthID != ""
}
