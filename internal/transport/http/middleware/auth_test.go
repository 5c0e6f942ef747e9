package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	jwtinfra "github.com/go-notes-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	wantToken string
	claims    *jwtinfra.Claims
}

func (s *stubVerifier) VerifyAccess(token string) (*jwtinfra.Claims, error) {
	if token != s.wantToken {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

func authedHandler(t *testing.T, gotUser *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		*gotUser = claims.UserID
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_BearerHeader(t *testing.T) {
	v := &stubVerifier{wantToken: "good", claims: &jwtinfra.Claims{UserID: "u-1"}}
	var gotUser string
	h := Auth(v)(authedHandler(t, &gotUser))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", gotUser)
}

func TestAuth_CookieFallback(t *testing.T) {
	v := &stubVerifier{wantToken: "good", claims: &jwtinfra.Claims{UserID: "u-1"}}
	var gotUser string
	h := Auth(v)(authedHandler(t, &gotUser))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", gotUser)
}

func TestAuth_HeaderTakesPrecedenceOverCookie(t *testing.T) {
	v := &stubVerifier{wantToken: "header-token", claims: &jwtinfra.Claims{UserID: "u-1"}}
	var gotUser string
	h := Auth(v)(authedHandler(t, &gotUser))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_MissingToken(t *testing.T) {
	v := &stubVerifier{wantToken: "good"}
	h := Auth(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	v := &stubVerifier{wantToken: "good"}
	h := Auth(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer tampered")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
