package impl

import (
	"context"
	"log/slog"
	"time"

	"margdarshak/config"
	deliverycontext "margdarshak/internal/delivery/context"
	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"
	"margdarshak/internal/domain/service"
	"margdarshak/internal/errors"
	"margdarshak/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	identity      usecase.IdentityUsecase
	txManager     repository.TransactionManager
	tokenService  service.TokenService
	refreshTokens bool
	now           func() time.Time
	logger        *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Identity     usecase.IdentityUsecase
	TxManager    repository.TransactionManager
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		identity:      params.Identity,
		txManager:     params.TxManager,
		tokenService:  params.TokenService,
		refreshTokens: params.Config.Auth != nil && params.Config.Auth.RefreshTokens,
		now:           time.Now,
		logger:        params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login authenticates the password pair and mints an access token.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.identity.AuthenticateLocal(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	ttl := srv.tokenService.AccessTokenTTL()
	accessToken, err := srv.tokenService.Sign(user.ID, ttl)
	if err != nil {
		return nil, errors.Join(domainerrors.ErrTokenIssueFailed, err)
	}

	output := &usecase.LoginOutput{
		AccessToken: accessToken,
		TokenType:   usecase.TokenTypeBearer,
		ExpiresIn:   ttl,
		User:        user,
	}

	if srv.refreshTokens {
		refreshToken, err := srv.issueRefreshToken(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		output.RefreshToken = refreshToken
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return output, nil
}

func (srv *sessionService) issueRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	raw, err := srv.tokenService.NewOpaqueToken()
	if err != nil {
		return "", errors.Join(domainerrors.ErrTokenIssueFailed, err)
	}

	record := &entity.RefreshToken{
		UserID:    userID,
		TokenHash: srv.tokenService.HashToken(raw),
		ExpiresAt: srv.now().Add(srv.tokenService.RefreshTokenTTL()),
	}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewRefreshTokenRepository().CreateRefreshToken(ctx, record)
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to persist refresh token")
	}

	return raw, nil
}

// Validate collapses every failure to an invalid result.
func (srv *sessionService) Validate(ctx context.Context, token string) *usecase.ValidateOutput {
	if token == "" {
		return &usecase.ValidateOutput{Valid: false}
	}

	user, err := srv.identity.ResolveFromToken(ctx, token)
	if err != nil {
		srv.log(ctx).Debug("Session token rejected", slog.Any("error", err))

		return &usecase.ValidateOutput{Valid: false}
	}

	return &usecase.ValidateOutput{Valid: true, User: user}
}

// RequireIdentity resolves the token or fails with ErrUnauthorized.
func (srv *sessionService) RequireIdentity(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "missing session token")
	}

	user, err := srv.identity.ResolveFromToken(ctx, token)
	if err != nil {
		return nil, errors.Join(domainerrors.ErrUnauthorized, err)
	}

	return user, nil
}

// Refresh exchanges a usable refresh token for a new access token. The refresh token itself is not rotated.
func (srv *sessionService) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	if !srv.refreshTokens {
		return nil, domainerrors.ErrRefreshTokenInvalid.WithDetails("refresh tokens are disabled")
	}
	if refreshToken == "" {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "missing refresh token")
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		record, err := repoFactory.NewRefreshTokenRepository().FindRefreshTokenByHash(ctx, srv.tokenService.HashToken(refreshToken))
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "unknown refresh token")
		}
		if err != nil {
			return err
		}
		if !record.IsUsable(srv.now()) {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token expired or revoked")
		}

		found, err := repoFactory.NewUserRepository().FindByID(ctx, record.UserID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token owner not found")
		}
		if err != nil {
			return err
		}
		if !found.IsActive {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token owner is inactive")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to refresh session")
	}

	ttl := srv.tokenService.AccessTokenTTL()
	accessToken, err := srv.tokenService.Sign(user.ID, ttl)
	if err != nil {
		return nil, errors.Join(domainerrors.ErrTokenIssueFailed, err)
	}

	return &usecase.RefreshOutput{
		AccessToken: accessToken,
		TokenType:   usecase.TokenTypeBearer,
		ExpiresIn:   ttl,
	}, nil
}

// Logout revokes a presented refresh token. Unknown tokens are ignored.
// Access tokens stay valid until they expire.
func (srv *sessionService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" || !srv.refreshTokens {
		return nil
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewRefreshTokenRepository()
		record, err := repo.FindRefreshTokenByHash(ctx, srv.tokenService.HashToken(refreshToken))
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if record.Revoked {
			return nil
		}

		return repo.RevokeRefreshToken(ctx, record.ID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to revoke refresh token")
	}

	return nil
}
