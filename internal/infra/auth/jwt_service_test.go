package auth

import (
	"strings"
	"testing"
	"time"

	"margdarshak/config"
	"margdarshak/internal/domain/service"
	"margdarshak/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestTokenConfig(secret, algorithm string) *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: secret},
		Auth: &config.AuthConfig{
			Algorithm:       algorithm,
			AccessTokenTTL:  7 * 24 * time.Hour,
			RefreshTokenTTL: 30 * 24 * time.Hour,
		},
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestJWTService(t *testing.T, clock *fakeClock) *jwtService {
	t.Helper()

	svc, err := newJWTService(newTestTokenConfig(testSecret, "HS256"), clock.Now)
	require.NoError(t, err)

	return svc
}

func TestJWTService_SignAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestJWTService(t, clock)
	userID := uuid.New()

	token, err := svc.Sign(userID, svc.AccessTokenTTL())
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.True(t, clock.now.Equal(claims.IssuedAt.Time))
	assert.True(t, clock.now.Add(7*24*time.Hour).Equal(claims.ExpiresAt.Time))
}

func TestJWTService_VerifyExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestJWTService(t, clock)
	issuedAt := clock.now

	token, err := svc.Sign(uuid.New(), time.Hour)
	require.NoError(t, err)

	clock.now = issuedAt.Add(time.Hour - time.Second)
	_, err = svc.Verify(token)
	require.NoError(t, err)

	clock.now = issuedAt.Add(time.Hour + time.Second)
	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))
	assert.False(t, errors.Is(err, service.ErrTokenBadSignature))
}

func TestJWTService_VerifyBadSignature(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestJWTService(t, clock)

	other, err := newJWTService(newTestTokenConfig("another_secret_of_reasonable_length", "HS256"), clock.Now)
	require.NoError(t, err)

	token, err := other.Sign(uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrTokenBadSignature))
}

func TestJWTService_VerifyBadSignatureTakesPrecedenceOverExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestJWTService(t, clock)

	other, err := newJWTService(newTestTokenConfig("another_secret_of_reasonable_length", "HS256"), clock.Now)
	require.NoError(t, err)
	token, err := other.Sign(uuid.New(), time.Minute)
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Hour)
	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, service.ErrTokenBadSignature))
}

func TestJWTService_VerifyRejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestJWTService(t, clock)

	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.True(t, errors.Is(err, service.ErrTokenBadSignature))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(unsigned)
	assert.True(t, errors.Is(err, service.ErrTokenBadSignature))
}

func TestJWTService_VerifyMalformed(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestJWTService(t, clock)

	for _, token := range []string{"", "clearly-not-a-jwt-token-format", "a.b.c"} {
		_, err := svc.Verify(token)
		require.Error(t, err, token)
		assert.True(t, errors.Is(err, service.ErrTokenMalformed), token)
	}
}

func TestJWTService_VerifyRejectsNonUUIDSubject(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestJWTService(t, clock)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice@example.com",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, service.ErrTokenMalformed))
}

func TestJWTService_VerifyRequiresExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestJWTService(t, clock)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: uuid.NewString(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_SignRejectsNonPositiveTTL(t *testing.T) {
	svc := newTestJWTService(t, &fakeClock{now: time.Now()})

	_, err := svc.Sign(uuid.New(), 0)
	assert.Error(t, err)
}

func TestNewJWTService_Configuration(t *testing.T) {
	_, err := NewJWTService(newTestTokenConfig("", "HS256"))
	assert.Error(t, err)

	_, err = NewJWTService(newTestTokenConfig(testSecret, "RS256"))
	assert.Error(t, err)

	svc, err := NewJWTService(newTestTokenConfig(testSecret, "HS384"))
	require.NoError(t, err)
	token, err := svc.Sign(uuid.New(), time.Minute)
	require.NoError(t, err)
	_, err = svc.Verify(token)
	assert.NoError(t, err)
}

func TestJWTService_OpaqueTokens(t *testing.T) {
	svc := newTestJWTService(t, &fakeClock{now: time.Now()})

	first, err := svc.NewOpaqueToken()
	require.NoError(t, err)
	second, err := svc.NewOpaqueToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 43)
	assert.Equal(t, svc.HashToken(first), svc.HashToken(first))
	assert.NotEqual(t, svc.HashToken(first), svc.HashToken(second))
	assert.Len(t, svc.HashToken(first), 64)
}
