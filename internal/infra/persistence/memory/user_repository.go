package memory

import (
	"context"
	"time"

	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	data *state
	now  func() time.Time
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := repo.data.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range repo.data.users {
		if user.Email == email {
			return &user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *userRepository) FindByProvider(_ context.Context, provider entity.ProviderType, subject string) (*entity.User, error) {
	for _, user := range repo.data.users {
		if user.OAuthProvider == provider && user.OAuthID == subject {
			return &user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	if user.Email == "" {
		return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
	}
	if err := repo.checkUnique(user); err != nil {
		return err
	}

	if user.ID == uuid.Nil {
		user.ID = newID()
	}
	now := repo.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	repo.data.users[user.ID] = *user

	return nil
}

func (repo *userRepository) Update(_ context.Context, user *entity.User) error {
	stored, ok := repo.data.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if user.Email == "" {
		return domainerrors.ErrUserUpdateFailed.WrapMessage("missing required user information")
	}
	if err := repo.checkUnique(user); err != nil {
		return err
	}

	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = repo.now()
	repo.data.users[user.ID] = *user

	return nil
}

func (repo *userRepository) checkUnique(user *entity.User) error {
	for id, other := range repo.data.users {
		if id == user.ID {
			continue
		}
		if other.Email == user.Email {
			return domainerrors.ErrEmailTaken.WrapMessage("duplicate email")
		}
		if user.IsFederated() && other.OAuthProvider == user.OAuthProvider && other.OAuthID == user.OAuthID {
			return domainerrors.ErrFederationConflict.WrapMessage("provider identity already linked")
		}
	}

	return nil
}
