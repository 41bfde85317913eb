package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"margdarshak/config"
	"margdarshak/internal/domain/repository"
	"margdarshak/internal/domain/service"
	"margdarshak/internal/infra/auth"
	"margdarshak/internal/infra/persistence/memory"
	"margdarshak/internal/usecase"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "unit-test-signing-secret"},
		Auth: &config.AuthConfig{
			Algorithm:       "HS256",
			AccessTokenTTL:  7 * 24 * time.Hour,
			RefreshTokenTTL: 30 * 24 * time.Hour,
			RefreshTokens:   true,
			BcryptCost:      bcrypt.MinCost,
		},
		PasswordStrength: &config.PasswordStrengthConfig{MinLength: 6, MaxLength: 72},
		Frontend: config.FrontendConfig{
			BaseURL:           "https://app.example.com",
			OAuthCallbackPath: "/auth/oauth-callback",
		},
	}
}

type testDeps struct {
	cfg       *config.Config
	store     *memory.Store
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    service.TokenService
	identity  usecase.IdentityUsecase
}

func newTestDeps(t *testing.T, cfg *config.Config) *testDeps {
	t.Helper()

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	store := memory.NewStore()
	deps := &testDeps{
		cfg:       cfg,
		store:     store,
		txManager: memory.NewTransactionManager(store),
		hasher:    auth.NewBcryptHasher(cfg),
		tokens:    tokens,
	}
	deps.identity = NewIdentityService(IdentityServiceParams{
		TxManager:    deps.txManager,
		Hasher:       deps.hasher,
		TokenService: deps.tokens,
		Config:       cfg,
		Logger:       newDiscardLogger(),
	})

	return deps
}

func (d *testDeps) sessions() usecase.SessionUsecase {
	return NewSessionService(SessionServiceParams{
		Identity:     d.identity,
		TxManager:    d.txManager,
		TokenService: d.tokens,
		Config:       d.cfg,
		Logger:       newDiscardLogger(),
	})
}
