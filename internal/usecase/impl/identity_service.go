// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"unicode/utf8"

	"margdarshak/config"
	deliverycontext "margdarshak/internal/delivery/context"
	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"
	"margdarshak/internal/domain/service"
	"margdarshak/internal/errors"
	"margdarshak/internal/usecase"

	"go.uber.org/fx"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	txManager         repository.TransactionManager
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	passwordMinLength int
	passwordMaxLength int
	decoyHash         func() string
	logger            *slog.Logger
}

// IdentityServiceParams holds dependencies for IdentityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	srv := &identityService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
	// Checked when no stored hash exists so unknown emails cost one bcrypt run too.
	srv.decoyHash = sync.OnceValue(func() string {
		hash, err := srv.hasher.Hash("margdarshak-decoy-password")
		if err != nil {
			srv.logger.Error("Failed to prepare decoy password hash", slog.Any("error", err))
		}

		return hash
	})
	if ps := params.Config.PasswordStrength; ps != nil {
		srv.passwordMinLength = ps.MinLength
		srv.passwordMaxLength = ps.MaxLength
	}

	return srv
}

func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a password account after validating the password and phone.
func (srv *identityService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	if err := srv.validateRegistration(input); err != nil {
		srv.log(ctx).Warn("Registration rejected", slog.Any("error", err))

		return nil, err
	}

	// Hash before the transaction so bcrypt does not hold a connection.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Join(domainerrors.ErrPasswordHashFailed, err)
	}

	newUser := &entity.User{
		Email:        input.Email,
		Name:         input.Name,
		Phone:        input.Phone,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrEmailTaken
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up email")
		}

		// The unique index settles concurrent registrations for the same email.
		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register user")
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", newUser.ID))

	return newUser, nil
}

func (srv *identityService) validateRegistration(input *usecase.RegisterInput) error {
	if input.Email == "" {
		return domainerrors.ErrValidationFailed.WithDetails("email is required")
	}
	if utf8.RuneCountInString(input.Password) < srv.passwordMinLength {
		return domainerrors.ErrWeakPassword.WithDetails(
			fmt.Sprintf("password must be at least %d characters", srv.passwordMinLength))
	}
	if srv.passwordMaxLength > 0 && len(input.Password) > srv.passwordMaxLength {
		return domainerrors.ErrWeakPassword.WithDetails(
			fmt.Sprintf("password must be at most %d bytes", srv.passwordMaxLength))
	}
	if input.Phone != "" && !phonePattern.MatchString(input.Phone) {
		return domainerrors.ErrInvalidPhone.WithDetails("phone must be 10 to 15 digits with an optional leading +")
	}

	return nil
}

// AuthenticateLocal returns the same error for an unknown email, a missing password, a wrong password
// and an inactive account.
func (srv *identityService) AuthenticateLocal(ctx context.Context, email, password string) (*entity.User, error) {
	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewUserRepository().FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		user = found

		return nil
	})
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to load user for authentication")
	}

	// bcrypt runs outside the transaction, once on every path.
	if user == nil || !user.HasPassword() {
		srv.hasher.Check(password, srv.decoyHash())
		srv.log(ctx).Warn("Local authentication failed")

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
	}
	if !srv.hasher.Check(password, user.PasswordHash) || !user.IsActive {
		srv.log(ctx).Warn("Local authentication failed")

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
	}

	return user, nil
}

// Federate is idempotent for a given provider subject.
func (srv *identityService) Federate(ctx context.Context, input *usecase.FederateInput) (*entity.User, error) {
	if input.Provider == "" || input.Subject == "" || input.Email == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("provider, subject and email are required")
	}

	user, err := srv.federateOnce(ctx, input)
	if errors.Is(err, domainerrors.ErrEmailTaken) {
		// A concurrent request created the account first; the retry links to it.
		srv.log(ctx).Debug("Retrying federation after losing create race", slog.String("provider", string(input.Provider)))
		user, err = srv.federateOnce(ctx, input)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to federate identity")
	}

	return user, nil
}

func (srv *identityService) federateOnce(ctx context.Context, input *usecase.FederateInput) (*entity.User, error) {
	var result *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		linked, err := userRepo.FindByProvider(ctx, input.Provider, input.Subject)
		if err == nil {
			result = linked

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up provider link")
		}

		existing, err := userRepo.FindByEmail(ctx, input.Email)
		if errors.Is(err, repository.ErrUserNotFound) {
			newUser := &entity.User{
				Email:         input.Email,
				Name:          input.Name,
				OAuthProvider: input.Provider,
				OAuthID:       input.Subject,
				IsVerified:    input.EmailVerified,
				IsActive:      true,
			}
			if err := userRepo.Create(ctx, newUser); err != nil {
				return err
			}
			srv.log(ctx).Info("Created federated user", slog.Any("userID", newUser.ID), slog.String("provider", string(input.Provider)))
			result = newUser

			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to look up email")
		}

		if existing.IsFederated() {
			// An existing link is never overwritten.
			srv.log(ctx).Warn("Email already linked to a different provider identity",
				slog.Any("userID", existing.ID),
				slog.String("linkedProvider", string(existing.OAuthProvider)),
				slog.String("provider", string(input.Provider)),
			)
			result = existing

			return nil
		}

		existing.OAuthProvider = input.Provider
		existing.OAuthID = input.Subject
		existing.IsVerified = existing.IsVerified || input.EmailVerified
		if existing.Name == "" {
			existing.Name = input.Name
		}
		if err := userRepo.Update(ctx, existing); err != nil {
			return err
		}
		srv.log(ctx).Info("Linked provider identity to existing user", slog.Any("userID", existing.ID), slog.String("provider", string(input.Provider)))
		result = existing

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ResolveFromToken keeps the token failure kind reachable through errors.Is.
func (srv *identityService) ResolveFromToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		return nil, errors.Join(domainerrors.ErrInvalidToken, err)
	}

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewUserRepository().FindByID(ctx, claims.UserID)
		if err != nil {
			return err
		}
		user = found

		return nil
	})
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, "token subject not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load token subject")
	}
	if !user.IsActive {
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user is inactive")
	}

	return user, nil
}
