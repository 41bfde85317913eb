package memory

import (
	"context"
	"time"

	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"

	"github.com/google/uuid"
)

type refreshTokenRepository struct {
	data *state
	now  func() time.Time
}

func (repo *refreshTokenRepository) CreateRefreshToken(_ context.Context, token *entity.RefreshToken) error {
	if _, ok := repo.data.users[token.UserID]; !ok {
		return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
	}
	for _, existing := range repo.data.refreshTokens {
		if existing.TokenHash == token.TokenHash {
			return domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token already exists")
		}
	}

	if token.ID == uuid.Nil {
		token.ID = newID()
	}
	token.CreatedAt = repo.now()
	repo.data.refreshTokens[token.ID] = *token

	return nil
}

func (repo *refreshTokenRepository) FindRefreshTokenByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	for _, token := range repo.data.refreshTokens {
		if token.TokenHash == tokenHash {
			return &token, nil
		}
	}

	return nil, repository.ErrRefreshTokenNotFound
}

func (repo *refreshTokenRepository) RevokeRefreshToken(_ context.Context, id uuid.UUID) error {
	token, ok := repo.data.refreshTokens[id]
	if !ok {
		return repository.ErrRefreshTokenNotFound
	}
	token.Revoked = true
	repo.data.refreshTokens[id] = token

	return nil
}
