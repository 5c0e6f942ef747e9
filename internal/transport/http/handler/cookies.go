package handler

import (
	"net/http"
	"time"

	"github.com/go-notes-api/internal/transport/http/middleware"
)

const refreshTokenCookie = "refreshToken"

const (
	refreshCookieMaxAge = 7 * 24 * time.Hour
	accessCookieMaxAge  = 24 * time.Hour
)

// setAuthCookies installs the refresh and access token cookies. Both
// are httpOnly and SameSite=Strict; Secure tracks the environment so
// local development over plain HTTP still works.
func setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(refreshCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(accessCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookies expires both token cookies. Logout is cookie-side
// only: an already-issued refresh token stays cryptographically valid
// until its natural expiry.
func clearAuthCookies(w http.ResponseWriter, secure bool) {
	for _, name := range []string{refreshTokenCookie, middleware.AccessTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
