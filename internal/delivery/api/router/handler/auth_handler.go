package handler

import (
	"log/slog"
	"net/http"

	"margdarshak/config"
	"margdarshak/internal/delivery/api/middleware"
	"margdarshak/internal/delivery/api/response"
	"margdarshak/internal/delivery/api/session"
	"margdarshak/internal/delivery/api/validator"
	deliverycontext "margdarshak/internal/delivery/context"
	"margdarshak/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	IdentityUC usecase.IdentityUsecase
	SessionUC  usecase.SessionUsecase
	Cookies    *session.Cookies
	Config     *config.Config
	Logger     *slog.Logger
}

// AuthHandler serves registration and the session endpoints.
// Its bodies are not wrapped in the response envelope.
type AuthHandler struct {
	identityUC usecase.IdentityUsecase
	sessionUC  usecase.SessionUsecase
	cookies    *session.Cookies
	refresh    bool
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		identityUC: params.IdentityUC,
		sessionUC:  params.SessionUC,
		cookies:    params.Cookies,
		refresh:    params.Config.Auth != nil && params.Config.Auth.RefreshTokens,
		logger:     params.Logger,
	}
}

// RegisterRequest represents the request body for a local registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// ValidateResponse reports whether the presented session resolves.
type ValidateResponse struct {
	Valid bool          `json:"valid"`
	User  *UserResponse `json:"user,omitempty"`
}

// RefreshRequest carries an opaque refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" validate:"required"`
}

// LogoutRequest optionally carries a refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// Register creates a password account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_FAILED", "Input validation failed", validator.FieldErrors(err))
	}

	user, err := h.identityUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusCreated, newUserResponse(user))
}

// Login accepts form fields username (the email) and password, and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	output, err := h.sessionUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    c.FormValue("username"),
		Password: c.FormValue("password"),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.cookies.SetSession(c, output.AccessToken, output.ExpiresIn)

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  output.AccessToken,
		TokenType:    output.TokenType,
		RefreshToken: output.RefreshToken,
	})
}

// Validate always answers 200. Any failure reads as an invalid session.
// Only the session cookie is consulted.
func (h *AuthHandler) Validate(c echo.Context) error {
	output := h.sessionUC.Validate(c.Request().Context(), session.TokenFromCookie(c))
	if !output.Valid {
		return c.JSON(http.StatusOK, ValidateResponse{Valid: false})
	}

	return c.JSON(http.StatusOK, ValidateResponse{Valid: true, User: newUserResponse(output.User)})
}

// Logout clears the session cookie and revokes a presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	// A malformed body must not keep the cookie alive
	var req LogoutRequest
	_ = c.Bind(&req)

	if req.RefreshToken != "" {
		if err := h.sessionUC.Logout(c.Request().Context(), req.RefreshToken); err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
				Warn("Failed to revoke refresh token on logout", slog.Any("error", err))
		}
	}

	h.cookies.ClearSession(c)

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Successfully logged out",
	})
}

// Refresh mints a new access token from a refresh token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_FAILED", "Input validation failed", validator.FieldErrors(err))
	}

	output, err := h.sessionUC.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.cookies.SetSession(c, output.AccessToken, output.ExpiresIn)

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		ExpiresIn:   int64(output.ExpiresIn.Seconds()),
	})
}

// RefreshEnabled reports whether the refresh endpoint should be mounted.
func (h *AuthHandler) RefreshEnabled() bool {
	return h.refresh
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	if _, ok := middleware.GetUserID(c); !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Not authenticated")
	}

	return response.Success(c, http.StatusOK, newUserResponse(deliverycontext.GetUser(c)))
}
