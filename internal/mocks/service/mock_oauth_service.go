// Package service holds testify mocks of the domain service interfaces.
package service

import (
	"context"

	"margdarshak/internal/domain/entity"
	"margdarshak/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockOAuthService is a mock type for the OAuthService type
type MockOAuthService struct {
	mock.Mock
}

// NewMockOAuthService creates a new instance of MockOAuthService. It also registers a cleanup
// function to assert the mocks expectations.
func NewMockOAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOAuthService {
	m := &MockOAuthService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOAuthService) Provider() entity.ProviderType {
	args := m.Called()

	return args.Get(0).(entity.ProviderType)
}

func (m *MockOAuthService) BuildAuthorizationURL(state, codeVerifier string) string {
	args := m.Called(state, codeVerifier)

	return args.String(0)
}

func (m *MockOAuthService) Exchange(ctx context.Context, code, codeVerifier string) (*service.FederatedProfile, error) {
	args := m.Called(ctx, code, codeVerifier)

	var profile *service.FederatedProfile
	if v := args.Get(0); v != nil {
		profile = v.(*service.FederatedProfile)
	}

	return profile, args.Error(1)
}

var _ service.OAuthService = (*MockOAuthService)(nil)
