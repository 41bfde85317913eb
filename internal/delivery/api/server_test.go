package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"margdarshak/config"
	"margdarshak/internal/delivery/api/middleware"
	"margdarshak/internal/delivery/api/router"
	"margdarshak/internal/delivery/api/router/handler"
	"margdarshak/internal/delivery/api/session"
	"margdarshak/internal/domain/entity"
	"margdarshak/internal/domain/service"
	"margdarshak/internal/infra/auth"
	"margdarshak/internal/infra/persistence/memory"
	"margdarshak/internal/infra/pubsub"
	mockSvc "margdarshak/internal/mocks/service"
	"margdarshak/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	e        *echo.Echo
	provider *mockSvc.MockOAuthService
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "handler-test-signing-secret"},
		Auth: &config.AuthConfig{
			Algorithm:       "HS256",
			AccessTokenTTL:  7 * 24 * time.Hour,
			RefreshTokenTTL: 30 * 24 * time.Hour,
			BcryptCost:      bcrypt.MinCost,
		},
		PasswordStrength: &config.PasswordStrengthConfig{MinLength: 6, MaxLength: 72},
		Frontend: config.FrontendConfig{
			BaseURL:           "https://app.example.com",
			OAuthCallbackPath: "/auth/oauth-callback",
		},
	}
	cfg.HTTP.BasePath = "/api"
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.Auth.Cookie.Path = "/"

	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	txManager := memory.NewTransactionManager(memory.NewStore())
	identity := impl.NewIdentityService(impl.IdentityServiceParams{
		TxManager:    txManager,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Config:       cfg,
		Logger:       logger,
	})
	sessions := impl.NewSessionService(impl.SessionServiceParams{
		Identity:     identity,
		TxManager:    txManager,
		TokenService: tokens,
		Config:       cfg,
		Logger:       logger,
	})

	provider := mockSvc.NewMockOAuthService(t)
	provider.On("Provider").Return(entity.ProviderGoogle).Maybe()
	federation := impl.NewFederationService(impl.FederationServiceParams{
		Identity:     identity,
		TokenService: tokens,
		Providers:    []service.OAuthService{provider},
		Config:       cfg,
		Logger:       logger,
	})

	cookies := session.NewCookies(cfg)
	routerParams := router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			IdentityUC: identity,
			SessionUC:  sessions,
			Cookies:    cookies,
			Config:     cfg,
			Logger:     logger,
		}),
		OAuthHandler: handler.NewOAuthHandler(handler.OAuthHandlerParams{
			FederationUC: federation,
			Cookies:      cookies,
			Logger:       logger,
		}),
		TransportHandler: handler.NewTransportHandler(handler.TransportHandlerParams{
			TransportUC: impl.NewTransportService(txManager, logger),
			Logger:      logger,
		}),
		NotificationHandler: handler.NewNotificationHandler(handler.NotificationHandlerParams{
			NotificationUC: impl.NewNotificationService(txManager, logger),
			Logger:         logger,
		}),
		SOSHandler: handler.NewSOSHandler(handler.SOSHandlerParams{
			SOSUC:  impl.NewSOSService(txManager, pubsub.NewNoopPublisher(logger), logger),
			Logger: logger,
		}),
		AuthMiddleware: middleware.NewAuthMiddleware(sessions),
		Config:         cfg,
	}

	return &testServer{e: newEcho(cfg, logger, routerParams), provider: provider}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	return rec
}

func (s *testServer) postJSON(path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	return s.do(req)
}

func (s *testServer) login(email, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	return s.do(req)
}

func (s *testServer) register(t *testing.T, email string) {
	t.Helper()

	rec := s.postJSON("/api/auth/register", `{"email":"`+email+`","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *testServer) sessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()

	s.register(t, email)
	rec := s.login(email, "secret1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return findCookie(t, rec, session.CookieName)
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	require.Failf(t, "cookie not set", "missing %s", name)

	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	errInfo, ok := decode(t, rec)["error"].(map[string]any)
	require.True(t, ok, rec.Body.String())

	return errInfo["code"].(string)
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	rec := srv.postJSON("/api/auth/register", `{"email":"a@x.com","password":"secret1","name":"Ann","phone":"+11234567890"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode(t, rec)
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "Ann", user["name"])
	assert.NotContains(t, rec.Body.String(), "password")

	rec = srv.login("a@x.com", "secret1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tokens := decode(t, rec)
	assert.Equal(t, "bearer", tokens["token_type"])
	assert.NotEmpty(t, tokens["access_token"])
	assert.NotContains(t, tokens, "refresh_token")

	cookie := findCookie(t, rec, session.CookieName)
	assert.Equal(t, "Bearer "+tokens["access_token"].(string), cookie.Value)
	assert.Equal(t, 604800, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	rec = srv.postJSON("/api/auth/validate", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	validated := decode(t, rec)
	assert.Equal(t, true, validated["valid"])
	assert.Equal(t, "a@x.com", validated["user"].(map[string]any)["email"])

	rec = srv.postJSON("/api/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])
	cleared := findCookie(t, rec, session.CookieName)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
	assert.Equal(t, cookie.HttpOnly, cleared.HttpOnly)
	assert.Equal(t, cookie.Secure, cleared.Secure)
	assert.Equal(t, cookie.SameSite, cleared.SameSite)
	assert.Equal(t, cookie.Path, cleared.Path)

	rec = srv.postJSON("/api/auth/validate", "", cleared)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"valid": false}, decode(t, rec))
}

func TestValidate_NeverErrors(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	for _, value := range []string{"", "Bearer garbage", "garbage"} {
		rec := srv.postJSON("/api/auth/validate", "", &http.Cookie{Name: session.CookieName, Value: value})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, decode(t, rec)["valid"])
	}
}

func TestValidate_ReadsOnlyTheSessionCookie(t *testing.T) {
	srv := newTestServer(t, newTestConfig())
	cookie := srv.sessionCookie(t, "a@x.com")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/validate", nil)
	req.Header.Set(echo.HeaderAuthorization, cookie.Value)
	rec := srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["valid"])

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, cookie.Value)
	assert.Equal(t, http.StatusOK, srv.do(req).Code)
}

func TestRegister_Failures(t *testing.T) {
	srv := newTestServer(t, newTestConfig())
	srv.register(t, "a@x.com")

	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "duplicate email", body: `{"email":"a@x.com","password":"secret1"}`, code: "EMAIL_TAKEN"},
		{name: "short password", body: `{"email":"b@x.com","password":"12345"}`, code: "WEAK_PASSWORD"},
		{name: "short phone", body: `{"email":"c@x.com","password":"secret1","phone":"12345"}`, code: "INVALID_PHONE"},
		{name: "bad email", body: `{"email":"not-an-email","password":"secret1"}`, code: "VALIDATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.postJSON("/api/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}

	rec := srv.postJSON("/api/auth/register", `{"email":"d@x.com","password":"secret1","phone":"+919876543210"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	srv := newTestServer(t, newTestConfig())
	srv.register(t, "a@x.com")

	wrongPassword := srv.login("a@x.com", "wrong-password")
	unknownEmail := srv.login("nobody@x.com", "secret1")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, decode(t, wrongPassword)["error"], decode(t, unknownEmail)["error"])
	assert.Empty(t, wrongPassword.Result().Cookies())
}

func TestProtectedRoutes(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := srv.sessionCookie(t, "a@x.com")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec = srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", decode(t, rec)["data"].(map[string]any)["email"])

	req = httptest.NewRequest(http.MethodGet, "/api/transport/routes", nil)
	req.Header.Set(echo.HeaderAuthorization, cookie.Value)
	rec = srv.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshRouteMountedOnlyWhenEnabled(t *testing.T) {
	srv := newTestServer(t, newTestConfig())
	rec := srv.postJSON("/api/auth/refresh", `{"refresh_token":"x"}`)
	assert.NotEqual(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)

	cfg := newTestConfig()
	cfg.Auth.RefreshTokens = true
	srv = newTestServer(t, cfg)
	srv.register(t, "a@x.com")

	rec = srv.login("a@x.com", "secret1")
	require.Equal(t, http.StatusOK, rec.Code)
	refreshToken, ok := decode(t, rec)["refresh_token"].(string)
	require.True(t, ok)

	rec = srv.postJSON("/api/auth/refresh", `{"refresh_token":"`+refreshToken+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode(t, rec)["access_token"])

	rec = srv.postJSON("/api/auth/logout", `{"refresh_token":"`+refreshToken+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.postJSON("/api/auth/refresh", `{"refresh_token":"`+refreshToken+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOAuthFlow(t *testing.T) {
	srv := newTestServer(t, newTestConfig())
	srv.provider.On("BuildAuthorizationURL", mock.Anything, mock.Anything).
		Return("https://accounts.example.com/o/oauth2/auth").Once()

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/api/auth/google", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://accounts.example.com/o/oauth2/auth", rec.Header().Get(echo.HeaderLocation))
	state := findCookie(t, rec, "__oauth_state")
	verifier := findCookie(t, rec, "__oauth_pkce")
	assert.True(t, state.HttpOnly)

	srv.provider.On("Exchange", mock.Anything, "code-1", verifier.Value).Return(&service.FederatedProfile{
		Provider:      entity.ProviderGoogle,
		Subject:       "sub123",
		Email:         "a@x.com",
		EmailVerified: true,
		Name:          "Ann",
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=code-1&state="+url.QueryEscape(state.Value), nil)
	req.AddCookie(state)
	req.AddCookie(verifier)
	rec = srv.do(req)
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())

	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, "app.example.com", location.Host)
	assert.Equal(t, "/auth/oauth-callback", location.Path)
	assert.Equal(t, "google", location.Query().Get("provider"))

	token := location.Query().Get("token")
	require.NotEmpty(t, token)
	rec = srv.postJSON("/api/auth/validate", "", &http.Cookie{Name: session.CookieName, Value: "Bearer " + token})
	assert.Equal(t, true, decode(t, rec)["valid"])
}

func TestOAuthCallback_Failures(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=code-1&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: "__oauth_state", Value: "expected"})
	rec := srv.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "OAUTH_FAILED", errorCode(t, rec))

	req = httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?error=access_denied", nil)
	rec = srv.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_denied")

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/api/auth/github", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "OAUTH_FAILED", errorCode(t, rec))
}

func TestTransportAndInbox(t *testing.T) {
	srv := newTestServer(t, newTestConfig())
	cookie := srv.sessionCookie(t, "a@x.com")

	rec := srv.postJSON("/api/transport/routes",
		`{"name":"Commute","start_location":{"latitude":12.97,"longitude":77.59},"end_location":{"latitude":12.93,"longitude":77.62}}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	routeID := decode(t, rec)["data"].(map[string]any)["id"].(string)

	rec = srv.postJSON("/api/transport/routes", `{"name":"Missing ends"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.postJSON("/api/transport/favorites", `{"route_id":"`+routeID+`"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.postJSON("/api/transport/favorites", `{"route_id":"`+routeID+`"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "FAVORITE_EXISTS", errorCode(t, rec))

	req := httptest.NewRequest(http.MethodDelete, "/api/transport/favorites/"+routeID, nil)
	req.AddCookie(cookie)
	rec = srv.do(req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/transport/favorites/"+routeID, nil)
	req.AddCookie(cookie)
	rec = srv.do(req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.postJSON("/api/user/sos", `{"location":{"latitude":12.97,"longitude":77.59},"message":"help"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sos := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "pending", sos["status"])

	req = httptest.NewRequest(http.MethodGet, "/api/user/notifications?unread_only=true", nil)
	req.AddCookie(cookie)
	rec = srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	inbox := decode(t, rec)["data"].([]any)
	require.Len(t, inbox, 1)
	assert.Equal(t, "SOS Request Received", inbox[0].(map[string]any)["title"])

	rec = srv.postJSON("/api/user/notifications/read-all", "", cookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/user/notifications?unread_only=true", nil)
	req.AddCookie(cookie)
	rec = srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["data"])

	other := srv.sessionCookie(t, "b@x.com")
	req = httptest.NewRequest(http.MethodGet, "/api/user/sos/"+sos["id"].(string), nil)
	req.AddCookie(other)
	rec = srv.do(req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t, newTestConfig())

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
