package impl

import (
	"context"
	"log/slog"
	"net/url"

	"margdarshak/config"
	deliverycontext "margdarshak/internal/delivery/context"
	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/service"
	"margdarshak/internal/errors"
	"margdarshak/internal/usecase"

	"go.uber.org/fx"
)

// federationService implements the FederationUsecase interface.
type federationService struct {
	identity     usecase.IdentityUsecase
	tokenService service.TokenService
	providers    map[entity.ProviderType]service.OAuthService
	callbackURL  string
	logger       *slog.Logger
}

// FederationServiceParams holds dependencies for FederationService, injected by Fx.
type FederationServiceParams struct {
	fx.In

	Identity     usecase.IdentityUsecase
	TokenService service.TokenService
	Providers    []service.OAuthService `group:"oauth_providers"`
	Config       *config.Config
	Logger       *slog.Logger
}

// NewFederationService is the constructor for federationService. Nil providers are skipped.
func NewFederationService(params FederationServiceParams) usecase.FederationUsecase {
	providers := make(map[entity.ProviderType]service.OAuthService, len(params.Providers))
	for _, p := range params.Providers {
		if p != nil {
			providers[p.Provider()] = p
		}
	}

	return &federationService{
		identity:     params.Identity,
		tokenService: params.TokenService,
		providers:    providers,
		callbackURL:  params.Config.Frontend.BaseURL + params.Config.Frontend.OAuthCallbackPath,
		logger:       params.Logger,
	}
}

func (srv *federationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *federationService) provider(name string) (service.OAuthService, error) {
	p, ok := srv.providers[entity.ProviderType(name)]
	if !ok {
		return nil, domainerrors.NewOAuthFailure("unsupported provider: " + name)
	}

	return p, nil
}

// Begin returns the consent URL of the named provider.
func (srv *federationService) Begin(_ context.Context, provider, state, codeVerifier string) (string, error) {
	p, err := srv.provider(provider)
	if err != nil {
		return "", err
	}

	return p.BuildAuthorizationURL(state, codeVerifier), nil
}

// Complete exchanges the code, federates the profile and mints a session token.
// The token travels to the frontend as a query parameter.
func (srv *federationService) Complete(ctx context.Context, input *usecase.CompleteFederationInput) (*usecase.CompleteFederationOutput, error) {
	p, err := srv.provider(input.Provider)
	if err != nil {
		return nil, err
	}
	if input.Code == "" {
		return nil, domainerrors.NewOAuthFailure("missing authorization code")
	}

	profile, err := p.Exchange(ctx, input.Code, input.CodeVerifier)
	if err != nil {
		srv.log(ctx).Warn("OAuth code exchange failed", slog.String("provider", input.Provider), slog.Any("error", err))

		return nil, domainerrors.NewOAuthFailure(err.Error())
	}
	if profile.Email == "" || !profile.EmailVerified {
		return nil, domainerrors.NewOAuthFailure("no verified email")
	}

	user, err := srv.identity.Federate(ctx, &usecase.FederateInput{
		Provider:      p.Provider(),
		Subject:       profile.Subject,
		Email:         profile.Email,
		EmailVerified: profile.EmailVerified,
		Name:          profile.Name,
	})
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domainerrors.NewOAuthFailure("account is disabled")
	}

	accessToken, err := srv.tokenService.Sign(user.ID, srv.tokenService.AccessTokenTTL())
	if err != nil {
		return nil, errors.Join(domainerrors.ErrTokenIssueFailed, err)
	}

	redirectURL, err := srv.redirectURL(accessToken, p.Provider())
	if err != nil {
		return nil, err
	}

	return &usecase.CompleteFederationOutput{
		User:        user,
		AccessToken: accessToken,
		RedirectURL: redirectURL,
	}, nil
}

func (srv *federationService) redirectURL(token string, provider entity.ProviderType) (string, error) {
	target, err := url.Parse(srv.callbackURL)
	if err != nil {
		return "", errors.Wrap(err, "invalid frontend callback url")
	}

	query := target.Query()
	query.Set("token", token)
	query.Set("provider", string(provider))
	target.RawQuery = query.Encode()

	return target.String(), nil
}
