package impl

import (
	"context"
	"testing"
	"time"

	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"
	"margdarshak/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerAnn(t *testing.T, deps *testDeps) *entity.User {
	t.Helper()

	user, err := deps.identity.Register(context.Background(), &usecase.RegisterInput{
		Email:    "a@x.com",
		Password: "secret1",
		Name:     "Ann",
		Phone:    "+11234567890",
	})
	require.NoError(t, err)

	return user
}

func TestSessionService_LoginValidate(t *testing.T) {
	deps := newTestDeps(t, newTestConfig())
	sessions := deps.sessions()
	ctx := context.Background()
	user := registerAnn(t, deps)

	out, err := sessions.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, usecase.TokenTypeBearer, out.TokenType)
	assert.Equal(t, 7*24*time.Hour, out.ExpiresIn)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, user.ID, out.User.ID)

	claims, err := deps.tokens.Verify(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	validated := sessions.Validate(ctx, out.AccessToken)
	require.True(t, validated.Valid)
	assert.Equal(t, "a@x.com", validated.User.Email)
}

func TestSessionService_Login_InvalidCredentials(t *testing.T) {
	deps := newTestDeps(t, newTestConfig())
	sessions := deps.sessions()
	registerAnn(t, deps)

	_, err := sessions.Login(context.Background(), &usecase.LoginInput{Email: "a@x.com", Password: "nope-nope"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestSessionService_Login_WithoutRefreshTokens(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth.RefreshTokens = false
	deps := newTestDeps(t, cfg)
	sessions := deps.sessions()
	registerAnn(t, deps)

	out, err := sessions.Login(context.Background(), &usecase.LoginInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Empty(t, out.RefreshToken)

	_, err = sessions.Refresh(context.Background(), "anything")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	assert.NoError(t, sessions.Logout(context.Background(), "anything"))
}

func TestSessionService_Validate_NeverFails(t *testing.T) {
	deps := newTestDeps(t, newTestConfig())
	sessions := deps.sessions()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		out := sessions.Validate(context.Background(), token)
		assert.False(t, out.Valid, token)
		assert.Nil(t, out.User, token)
	}
}

func TestSessionService_RequireIdentity(t *testing.T) {
	deps := newTestDeps(t, newTestConfig())
	sessions := deps.sessions()
	ctx := context.Background()
	user := registerAnn(t, deps)

	_, err := sessions.RequireIdentity(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = sessions.RequireIdentity(ctx, "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode())

	token, err := deps.tokens.Sign(user.ID, time.Minute)
	require.NoError(t, err)
	resolved, err := sessions.RequireIdentity(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestSessionService_RefreshAndLogout(t *testing.T) {
	deps := newTestDeps(t, newTestConfig())
	sessions := deps.sessions()
	ctx := context.Background()
	user := registerAnn(t, deps)

	out, err := sessions.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	refreshed, err := sessions.Refresh(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, usecase.TokenTypeBearer, refreshed.TokenType)
	claims, err := deps.tokens.Verify(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	require.NoError(t, sessions.Logout(ctx, out.RefreshToken))
	// Revocation is idempotent.
	require.NoError(t, sessions.Logout(ctx, out.RefreshToken))

	_, err = sessions.Refresh(ctx, out.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)

	// The access token is not revoked by logout.
	assert.True(t, sessions.Validate(ctx, out.AccessToken).Valid)
}

func TestSessionService_Refresh_Rejections(t *testing.T) {
	deps := newTestDeps(t, newTestConfig())
	ctx := context.Background()
	user := registerAnn(t, deps)

	sessions := deps.sessions().(*sessionService)

	_, err := sessions.Refresh(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)

	_, err = sessions.Refresh(ctx, "never-issued")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)

	raw, err := sessions.issueRefreshToken(ctx, user.ID)
	require.NoError(t, err)

	sessions.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
	_, err = sessions.Refresh(ctx, raw)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestSessionService_RefreshTokenStoredHashed(t *testing.T) {
	deps := newTestDeps(t, newTestConfig())
	ctx := context.Background()
	registerAnn(t, deps)

	out, err := deps.sessions().Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	err = deps.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		repo := f.NewRefreshTokenRepository()
		_, err := repo.FindRefreshTokenByHash(ctx, out.RefreshToken)
		assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)

		record, err := repo.FindRefreshTokenByHash(ctx, deps.tokens.HashToken(out.RefreshToken))
		if err != nil {
			return err
		}
		assert.False(t, record.Revoked)

		return nil
	})
	require.NoError(t, err)
}
