package middleware

import (
	"margdarshak/internal/delivery/api/session"
	deliverycontext "margdarshak/internal/delivery/context"
	"margdarshak/internal/errors"
	"margdarshak/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards protected routes with the session boundary.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate resolves the session token from the cookie or Authorization header
// and rejects the request with 401 when it does not resolve to an active user.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.sessions.RequireIdentity(c.Request().Context(), session.TokenFromRequest(c))
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetUser(c, user)

		return next(c)
	}
}

// GetUserID returns the authenticated user's ID. It must be used AFTER Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	user := deliverycontext.GetUser(c)
	if user == nil {
		return uuid.Nil, false
	}

	return user.ID, true
}
