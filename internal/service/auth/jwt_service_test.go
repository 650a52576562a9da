package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AymanChabbaki/tutor-MVP/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
		BcryptCost:                  10,
	}
}

func newTestService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = "short"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tokenTypeRefresh, claims.TokenType)
}

func TestTokenTypeCrossUseRejected(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	access, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	// Issue a token in the past, beyond lifetime plus clock skew.
	issued := time.Now().Add(-2 * time.Hour)
	svc.timeFunc = func() time.Time { return issued }
	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestClockSkewTolerated(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	// Token expired one minute ago; within the two-minute skew allowance.
	issued := time.Now().Add(-61 * time.Minute)
	svc.timeFunc = func() time.Time { return issued }
	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(context.Background(), token)
	assert.NoError(t, err)
}

func TestMalformedAndTamperedTokensRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)

	// Token signed with a different key.
	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "ffffffffffffffffffffffffffffffff"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)
	foreign, err := other.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptVerifier(t *testing.T) {
	verifier := NewBcryptVerifier()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	hash := string(hashed)
	assert.NoError(t, verifier.Compare(hash, "password"))
	assert.Error(t, verifier.Compare(hash, "wrong-password"))
	assert.Error(t, verifier.Compare("not-a-bcrypt-hash", "password"))
}
