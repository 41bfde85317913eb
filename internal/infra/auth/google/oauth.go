// Package google implements the authorization-code federation flow against Google.
package google

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"margdarshak/config"
	"margdarshak/internal/domain/entity"
	"margdarshak/internal/domain/service"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	defaultIssuer      = "https://accounts.google.com"
	defaultJWKSURL     = "https://www.googleapis.com/oauth2/v3/certs"
	defaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

	maxUserInfoBody = 1 << 20
)

// OAuthService handles Google OAuth infrastructure operations
type OAuthService struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
	userInfoURL string
	logger      *slog.Logger
}

// NewOAuthService creates a Google adapter from configuration.
func NewOAuthService(cfg *config.Config, logger *slog.Logger) (service.OAuthService, error) {
	gcfg := cfg.GoogleOAuth
	if gcfg == nil || gcfg.ClientID == "" || gcfg.ClientSecret == "" || gcfg.RedirectURI == "" {
		return nil, errors.New("google oauth config missing required fields")
	}

	endpoint := endpoints.Google
	if gcfg.AuthURL != "" {
		endpoint.AuthURL = gcfg.AuthURL
	}
	if gcfg.TokenURL != "" {
		endpoint.TokenURL = gcfg.TokenURL
	}

	issuer := firstNonEmpty(gcfg.Issuer, defaultIssuer)
	keySet := oidc.NewRemoteKeySet(context.Background(), firstNonEmpty(gcfg.JWKSURL, defaultJWKSURL))
	verifier := oidc.NewVerifier(issuer, keySet, &oidc.Config{ClientID: gcfg.ClientID})

	oauthConfig := &oauth2.Config{
		ClientID:     gcfg.ClientID,
		ClientSecret: gcfg.ClientSecret,
		RedirectURL:  gcfg.RedirectURI,
		Endpoint:     endpoint,
		Scopes:       strings.Fields(gcfg.Scopes),
	}

	return newOAuthService(oauthConfig, verifier, firstNonEmpty(gcfg.UserInfoURL, defaultUserInfoURL), logger), nil
}

func newOAuthService(oauthConfig *oauth2.Config, verifier *oidc.IDTokenVerifier, userInfoURL string, logger *slog.Logger) *OAuthService {
	return &OAuthService{
		oauthConfig: oauthConfig,
		verifier:    verifier,
		userInfoURL: userInfoURL,
		logger:      logger,
	}
}

// Provider returns the OAuth provider type
func (s *OAuthService) Provider() entity.ProviderType {
	return entity.ProviderGoogle
}

// BuildAuthorizationURL constructs the consent URL carrying state and, when given, a PKCE challenge.
func (s *OAuthService) BuildAuthorizationURL(state, codeVerifier string) string {
	opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOnline}
	if codeVerifier != "" {
		opts = append(opts, oauth2.S256ChallengeOption(codeVerifier))
	}

	return s.oauthConfig.AuthCodeURL(state, opts...)
}

// Exchange trades the code for tokens and reads the profile, preferring a verified id_token.
func (s *OAuthService) Exchange(ctx context.Context, code, codeVerifier string) (*service.FederatedProfile, error) {
	var opts []oauth2.AuthCodeOption
	if codeVerifier != "" {
		opts = append(opts, oauth2.VerifierOption(codeVerifier))
	}

	token, err := s.oauthConfig.Exchange(ctx, code, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "google token exchange failed")
	}

	var profile *service.FederatedProfile
	if rawIDToken, ok := token.Extra("id_token").(string); ok && rawIDToken != "" && s.verifier != nil {
		profile, err = s.profileFromIDToken(ctx, rawIDToken)
	} else {
		profile, err = s.profileFromUserInfo(ctx, token)
	}
	if err != nil {
		return nil, err
	}

	if profile.Subject == "" {
		return nil, errors.New("google profile missing subject")
	}

	s.logger.Debug("google profile resolved",
		slog.Bool("email_present", profile.Email != ""),
		slog.Bool("email_verified", profile.EmailVerified),
	)

	return profile, nil
}

type googleClaims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (c *googleClaims) toProfile() *service.FederatedProfile {
	return &service.FederatedProfile{
		Provider:      entity.ProviderGoogle,
		Subject:       c.Subject,
		Email:         c.Email,
		EmailVerified: c.EmailVerified,
		Name:          c.Name,
		AvatarURL:     c.Picture,
	}
}

func (s *OAuthService) profileFromIDToken(ctx context.Context, rawIDToken string) (*service.FederatedProfile, error) {
	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.Wrap(err, "google id_token verification failed")
	}

	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.Wrap(err, "google id_token claims parse failed")
	}

	return claims.toProfile(), nil
}

func (s *OAuthService) profileFromUserInfo(ctx context.Context, token *oauth2.Token) (*service.FederatedProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}

	resp, err := s.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUserInfoBody))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read user info response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("user info request failed with status %d", resp.StatusCode)
	}

	var claims googleClaims
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	return claims.toProfile(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
