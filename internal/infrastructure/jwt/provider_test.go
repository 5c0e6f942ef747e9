package jwtinfra

import (
	"testing"
	"time"

	"github.com/go-notes-api/internal/config"
	"github.com/go-notes-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	}
}

func testUser() *domain.User {
	return &domain.User{UserID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Email: "a@x.com", Name: "Alice"}
}

func TestNewProvider_MissingSecrets(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenSecret = ""
	_, err := NewProvider(cfg)
	assert.ErrorContains(t, err, "ACCESS_TOKEN_SECRET")

	cfg = testConfig()
	cfg.RefreshTokenSecret = ""
	_, err = NewProvider(cfg)
	assert.ErrorContains(t, err, "REFRESH_TOKEN_SECRET")
}

func TestIssuePair_RoundTrip(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	pair, err := p.IssuePair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	access, err := p.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", access.UserID)
	assert.Equal(t, "a@x.com", access.Email)

	refresh, err := p.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, access.UserID, refresh.UserID)
}

func TestVerify_SecretsAreNotInterchangeable(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	pair, err := p.IssuePair(testUser())
	require.NoError(t, err)

	_, err = p.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = p.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = -time.Minute
	p, err := NewProvider(cfg)
	require.NoError(t, err)

	pair, err := p.IssuePair(testUser())
	require.NoError(t, err)

	_, err = p.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.ErrorContains(t, err, "expired")
}

func TestVerify_Garbage(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	_, err = p.VerifyAccess("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignAccess_DoesNotTouchRefresh(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	token, err := p.SignAccess(testUser())
	require.NoError(t, err)
	_, err = p.VerifyAccess(token)
	require.NoError(t, err)
	_, err = p.VerifyRefresh(token)
	assert.Error(t, err)
}
