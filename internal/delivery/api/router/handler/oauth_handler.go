package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"margdarshak/internal/delivery/api/response"
	"margdarshak/internal/delivery/api/session"
	deliverycontext "margdarshak/internal/delivery/context"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"golang.org/x/oauth2"
)

const (
	stateCookieName    = "__oauth_state"
	verifierCookieName = "__oauth_pkce"
	oauthCookieTTL     = 5 * time.Minute
)

// OAuthHandlerParams holds dependencies for OAuthHandler, injected by Fx.
type OAuthHandlerParams struct {
	fx.In

	FederationUC usecase.FederationUsecase
	Cookies      *session.Cookies
	Logger       *slog.Logger
}

// OAuthHandler drives the browser side of federated sign-in.
type OAuthHandler struct {
	federationUC usecase.FederationUsecase
	cookies      *session.Cookies
	logger       *slog.Logger
}

// NewOAuthHandler is the constructor for OAuthHandler
func NewOAuthHandler(params OAuthHandlerParams) *OAuthHandler {
	return &OAuthHandler{
		federationUC: params.FederationUC,
		cookies:      params.Cookies,
		logger:       params.Logger,
	}
}

// Begin redirects to the provider consent page. The CSRF state and PKCE verifier
// are bound to the browser through short-lived cookies.
func (h *OAuthHandler) Begin(c echo.Context) error {
	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()

	authURL, err := h.federationUC.Begin(c.Request().Context(), c.Param("provider"), state, verifier)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.cookies.Set(c, stateCookieName, state, oauthCookieTTL)
	h.cookies.Set(c, verifierCookieName, verifier, oauthCookieTTL)

	return c.Redirect(http.StatusFound, authURL)
}

// Callback completes the flow and redirects to the frontend with the session token.
func (h *OAuthHandler) Callback(c echo.Context) error {
	provider := c.Param("provider")

	expectedState := cookieValue(c, stateCookieName)
	verifier := cookieValue(c, verifierCookieName)
	h.cookies.Clear(c, stateCookieName)
	h.cookies.Clear(c, verifierCookieName)

	if providerErr := c.QueryParam("error"); providerErr != "" {
		reason := providerErr
		if desc := c.QueryParam("error_description"); desc != "" {
			reason += ": " + desc
		}
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
			Warn("Provider returned an OAuth error", slog.String("provider", provider), slog.String("reason", reason))

		return response.HandleAppError(c, domainerrors.NewOAuthFailure(reason))
	}

	state := c.QueryParam("state")
	if state == "" || expectedState == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expectedState)) != 1 {
		return response.HandleAppError(c, domainerrors.NewOAuthFailure("invalid state"))
	}

	output, err := h.federationUC.Complete(c.Request().Context(), &usecase.CompleteFederationInput{
		Provider:     provider,
		Code:         c.QueryParam("code"),
		CodeVerifier: verifier,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Redirect(http.StatusFound, output.RedirectURL)
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
