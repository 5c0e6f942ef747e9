package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/go-notes-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Verification outcomes. All wrap domain.ErrBadRequest — the boundary
// reports a bad code as a 400, unlike token failures which are 401 —
// while callers can still tell them apart with errors.Is.
var (
	ErrCodeNotFound = fmt.Errorf("otp not found or expired: %w", domain.ErrBadRequest)
	ErrCodeInvalid  = fmt.Errorf("invalid otp: %w", domain.ErrBadRequest)
	ErrCodeExpired  = fmt.Errorf("otp expired: %w", domain.ErrBadRequest)
)

// Repository is the minimal persistence contract the store requires.
// Put must be an upsert keyed by email.
type Repository interface {
	Put(ctx context.Context, o *domain.Otp) error
	Get(ctx context.Context, email string) (*domain.Otp, error)
	Delete(ctx context.Context, email string) error
}

// Store issues and verifies one-time codes. Codes are bcrypt-hashed at
// issue time; the plaintext exists only in the return value of Issue,
// on its way to the mail collaborator, and is never logged.
type Store struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewStore(repo Repository, ttl time.Duration) *Store {
	return &Store{repo: repo, ttl: ttl, now: time.Now}
}

// Issue generates a 6-digit code for email and persists its hash with
// expiry now+ttl. The upsert overwrites any earlier record, so at most
// one code per email is ever live; concurrent issues race and the last
// written hash wins.
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}

	now := s.now().UTC()
	rec := &domain.Otp{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(s.ttl).Unix(),
		CreatedAt: now,
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify checks submitted against the pending code for email.
// A hash mismatch keeps the record so the caller may retry within rate
// limits; a match or a detected expiry consumes it. The submitted value
// is always run against the stored hash, never the other way round.
func (s *Store) Verify(ctx context.Context, email, submitted string) error {
	rec, err := s.repo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrCodeNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(submitted)) != nil {
		return ErrCodeInvalid
	}

	if rec.ExpiresAt < s.now().Unix() {
		if err := s.repo.Delete(ctx, email); err != nil {
			// The record is already dead: expiry blocks reuse even if
			// this delete never lands.
			slog.Warn("failed to delete expired otp", "err", err)
		}
		return ErrCodeExpired
	}

	// A matched record must not survive: deleting is what makes the
	// code single-use, so a failure here fails the verification.
	if err := s.repo.Delete(ctx, email); err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	return nil
}
