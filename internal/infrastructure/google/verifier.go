package google

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-notes-api/internal/domain"
	"google.golang.org/api/idtoken"
)

// Payload holds the verified claims extracted from a Google ID token.
type Payload struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
}

// TokenVerifier exchanges a provider ID token for a verified identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Payload, error)
}

// Verifier verifies Google ID tokens against a specific client ID.
type Verifier struct {
	clientID string
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID}
}

// Verify validates the Google ID token and returns the extracted payload.
// A token the provider rejects is the caller's fault and wraps
// domain.ErrBadRequest; only a failure to reach Google at all wraps
// domain.ErrUpstream.
func (v *Verifier) Verify(ctx context.Context, token string) (*Payload, error) {
	p, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		if isTransportErr(err) {
			return nil, fmt.Errorf("google verification unreachable: %v: %w", err, domain.ErrUpstream)
		}
		return nil, fmt.Errorf("google token rejected: %v: %w", err, domain.ErrBadRequest)
	}
	email, _ := p.Claims["email"].(string)
	emailVerified, _ := p.Claims["email_verified"].(bool)
	name, _ := p.Claims["name"].(string)
	return &Payload{
		Sub:           p.Subject,
		Email:         email,
		EmailVerified: emailVerified,
		Name:          name,
	}, nil
}

// isTransportErr reports whether the validation failed before Google
// could judge the token: the certificate fetch errored or the context
// ran out. Everything else is a verdict on the token itself.
func isTransportErr(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
