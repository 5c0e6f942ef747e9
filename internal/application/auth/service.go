package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-notes-api/internal/domain"
	"github.com/go-notes-api/internal/infrastructure/google"
	jwtinfra "github.com/go-notes-api/internal/infrastructure/jwt"
	"github.com/go-notes-api/internal/infrastructure/ses"
	"github.com/go-notes-api/internal/pkg/id"
)

// emailSendTimeout bounds the synchronous delivery call so a slow mail
// provider cannot hang the request.
const emailSendTimeout = 10 * time.Second

// UserDirectory is the identity lookup/create contract.
type UserDirectory interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// OTPStore issues and verifies one-time codes.
type OTPStore interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) error
}

// RateLimiter gates OTP issuance per identifier.
type RateLimiter interface {
	Admit(ctx context.Context, identifier string) error
}

// CredentialIssuer mints and checks token pairs.
type CredentialIssuer interface {
	IssuePair(u *domain.User) (*jwtinfra.TokenPair, error)
	SignAccess(u *domain.User) (string, error)
	VerifyRefresh(token string) (*jwtinfra.Claims, error)
}

// LoginResult is a successful credential exchange.
type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type Service interface {
	RequestOTP(ctx context.Context, email string) error
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	GoogleLogin(ctx context.Context, idToken string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type service struct {
	users    UserDirectory
	otps     OTPStore
	limiter  RateLimiter
	issuer   CredentialIssuer
	verifier google.TokenVerifier
	mailer   ses.Mailer
}

func NewService(users UserDirectory, otps OTPStore, limiter RateLimiter, issuer CredentialIssuer, verifier google.TokenVerifier, mailer ses.Mailer) Service {
	return &service{
		users:    users,
		otps:     otps,
		limiter:  limiter,
		issuer:   issuer,
		verifier: verifier,
		mailer:   mailer,
	}
}

// RequestOTP admits the caller through the rate limiter, issues a code
// and delivers it by email. The persistence write is detached from the
// request's cancellation so a client disconnect cannot leave a
// half-written flow; a delivery failure after the record is stored
// surfaces as an upstream error and the caller simply requests again.
func (s *service) RequestOTP(ctx context.Context, email string) error {
	if err := s.limiter.Admit(ctx, email); err != nil {
		return err
	}

	code, err := s.otps.Issue(context.WithoutCancel(ctx), email)
	if err != nil {
		return err
	}

	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emailSendTimeout)
	defer cancel()
	body := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
	if err := s.mailer.SendEmail(mailCtx, email, "Your verification code", body); err != nil {
		return fmt.Errorf("send verification email: %v: %w", err, domain.ErrUpstream)
	}
	return nil
}

// Register creates a verified identity. The duplicate check runs before
// the OTP is touched, so a conflicting registration never consumes a
// pending code.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("user already exists: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return nil, fmt.Errorf("dob must be YYYY-MM-DD: %w", domain.ErrBadRequest)
	}

	if err := s.otps.Verify(ctx, req.Email, req.OTP); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:    id.New(),
		Email:     req.Email,
		Name:      req.Name,
		Birthday:  &dob,
		Verified:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Put(context.WithoutCancel(ctx), u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login exchanges a fresh OTP for a token pair. Identity existence is
// checked before the code so an unknown email is reported without
// consuming anything.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	if err := s.otps.Verify(ctx, req.Email, req.OTP); err != nil {
		return nil, err
	}

	pair, err := s.issuer.IssuePair(u)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.users.Update(context.WithoutCancel(ctx), u.UserID, map[string]interface{}{"last_login_at": now}); err != nil {
		slog.Warn("failed to record last login", "user_id", u.UserID, "err", err)
	}
	u.LastLoginAt = &now

	return &LoginResult{User: u, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// GoogleLogin exchanges a Google ID token for a token pair, creating
// the identity on first login. A stored google_sub that differs from
// the provider's (including a previously absent one) is updated, so an
// email-registered account picks up its federated id post-hoc.
func (s *service) GoogleLogin(ctx context.Context, idToken string) (*LoginResult, error) {
	payload, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if payload.Email == "" {
		return nil, fmt.Errorf("google token carries no email: %w", domain.ErrBadRequest)
	}

	u, err := s.users.GetByEmail(ctx, payload.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		name := payload.Name
		if name == "" {
			name = "User"
		}
		now := time.Now().UTC()
		u = &domain.User{
			UserID:    id.New(),
			Email:     payload.Email,
			Name:      name,
			GoogleSub: payload.Sub,
			Verified:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.users.Put(context.WithoutCancel(ctx), u); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case u.GoogleSub != payload.Sub:
		if err := s.users.Update(context.WithoutCancel(ctx), u.UserID, map[string]interface{}{"google_sub": payload.Sub}); err != nil {
			return nil, err
		}
		u.GoogleSub = payload.Sub
	}

	pair, err := s.issuer.IssuePair(u)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.users.Update(context.WithoutCancel(ctx), u.UserID, map[string]interface{}{"last_login_at": now}); err != nil {
		slog.Warn("failed to record last login", "user_id", u.UserID, "err", err)
	}
	u.LastLoginAt = &now

	return &LoginResult{User: u, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Refresh mints a new access token from a valid refresh token. Identity
// state is re-read so a changed name or verification status is
// reflected in the new token. The refresh token itself is not rotated
// or extended; previously issued refresh tokens stay valid until their
// natural expiry (no server-side revocation list).
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", fmt.Errorf("no refresh token: %w", domain.ErrUnauthorized)
	}
	claims, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	u, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return "", err
	}
	return s.issuer.SignAccess(u)
}
