package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-notes-api/internal/config"
	"github.com/go-notes-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields. The same subject payload is used
// for both access and refresh tokens; only the secret and expiry differ.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	GoogleSub string `json:"google_sub,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is a freshly signed access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Provider signs and verifies HS256 access and refresh tokens with
// separate secrets. Tokens are stateless: validity is signature + expiry
// only, nothing is stored server-side.
type Provider struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewProvider fails when either signing secret is missing. Callers must
// treat that as a fatal configuration error — the service never runs
// with unsigned or weakly-signed tokens.
func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.AccessTokenSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET is not set")
	}
	if cfg.RefreshTokenSecret == "" {
		return nil, errors.New("REFRESH_TOKEN_SECRET is not set")
	}
	return &Provider{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}, nil
}

// IssuePair signs an access and a refresh token for the given user.
func (p *Provider) IssuePair(u *domain.User) (*TokenPair, error) {
	access, err := p.sign(u, p.accessSecret, p.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := p.sign(u, p.refreshSecret, p.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// SignAccess signs a standalone access token; used by refresh rotation,
// which must not extend the refresh token's own validity window.
func (p *Provider) SignAccess(u *domain.User) (string, error) {
	return p.sign(u, p.accessSecret, p.accessTTL)
}

func (p *Provider) sign(u *domain.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		GoogleSub: u.GoogleSub,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (p *Provider) VerifyAccess(tokenStr string) (*Claims, error) {
	return p.verify(tokenStr, p.accessSecret)
}

func (p *Provider) VerifyRefresh(tokenStr string) (*Claims, error) {
	return p.verify(tokenStr, p.refreshSecret)
}

func (p *Provider) verify(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token expired: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}
