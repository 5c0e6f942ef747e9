package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-notes-api/internal/application/auth"
	"github.com/go-notes-api/internal/application/note"
	"github.com/go-notes-api/internal/application/otp"
	"github.com/go-notes-api/internal/application/user"
	"github.com/go-notes-api/internal/config"
	"github.com/go-notes-api/internal/transport/http/handler"
	appmiddleware "github.com/go-notes-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // refresh/access token cookies
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — coarse per-IP guard on sensitive
	// public endpoints. The per-email OTP policy lives in the auth service.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpStore := otp.NewStore(deps.OtpRepo, cfg.OtpTTL)
	authSvc := auth.NewService(deps.UserRepo, otpStore, deps.OtpLimiter, deps.JWTProvider, deps.TokenVerifier, deps.Mailer)
	userSvc := user.NewService(deps.UserRepo)
	noteSvc := note.NewService(deps.NoteRepo)

	secureCookies := cfg.AppEnv == "production"
	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(authSvc, userSvc, secureCookies)
	noteH := handler.NewNoteHandler(noteSvc)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health-check", healthH.Ping)
	r.With(sensitiveRL.Limit).Post("/users/generateotp", userH.GenerateOTP)
	r.With(sensitiveRL.Limit).Post("/users/register", userH.Register)
	r.With(sensitiveRL.Limit).Post("/users/login", userH.Login)
	r.With(sensitiveRL.Limit).Post("/users/auth/google", userH.GoogleAuth)
	r.Get("/users/refresh", userH.Refresh)

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Post("/users/logout", userH.Logout)
		r.Get("/users/me", userH.Me)

		r.Get("/notes", noteH.List)
		r.Post("/notes", noteH.Create)
		r.Delete("/notes/{id}", noteH.Delete)
	})

	return r
}
