package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtinfra "github.com/go-notes-api/internal/infrastructure/jwt"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// AccessTokenCookie is the cookie the login endpoints set alongside the
// Authorization header flow.
const AccessTokenCookie = "accessToken"

// AccessVerifier checks access tokens.
type AccessVerifier interface {
	VerifyAccess(token string) (*jwtinfra.Claims, error)
}

// Auth returns middleware that validates the access token and injects
// claims into context. The Authorization Bearer header takes precedence;
// the accessToken cookie is the fallback.
func Auth(verifier AccessVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				if c, err := r.Cookie(AccessTokenCookie); err == nil {
					tokenStr = c.Value
				}
			}
			if tokenStr == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing access token")
				return
			}
			claims, err := verifier.VerifyAccess(tokenStr)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts access token claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.Claims)
	return c, ok
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
