package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token verification failures. Verify wraps exactly one of them.
var (
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token is expired")
)

// Claims defines the claims carried by a session token.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies stateless session tokens and mints opaque refresh tokens.
type TokenService interface {
	// Sign issues a token whose subject is userID and which expires after ttl.
	Sign(userID uuid.UUID, ttl time.Duration) (string, error)

	// Verify checks the signature and expiry at call time and returns the claims.
	Verify(token string) (*Claims, error)

	// NewOpaqueToken returns a random URL-safe token.
	NewOpaqueToken() (string, error)

	// HashToken returns the storage digest of an opaque token.
	HashToken(token string) string

	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}
