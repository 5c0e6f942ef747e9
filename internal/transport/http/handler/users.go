package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-notes-api/internal/application/auth"
	"github.com/go-notes-api/internal/application/user"
	"github.com/go-notes-api/internal/domain"
	"github.com/go-notes-api/internal/pkg/validate"
	"github.com/go-notes-api/internal/transport/http/middleware"
)

// UserHandler handles the auth and profile endpoints.
type UserHandler struct {
	authSvc       auth.Service
	userSvc       user.Service
	secureCookies bool
}

func NewUserHandler(authSvc auth.Service, userSvc user.Service, secureCookies bool) *UserHandler {
	return &UserHandler{authSvc: authSvc, userSvc: userSvc, secureCookies: secureCookies}
}

func (h *UserHandler) GenerateOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.authSvc.RequestOTP(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP sent to email"})
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.authSvc.Register(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "user registered successfully"})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.authSvc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	setAuthCookies(w, res.AccessToken, res.RefreshToken, h.secureCookies)
	writeJSON(w, http.StatusOK, AuthEnvelope{AccessToken: res.AccessToken, Message: "login successful"})
}

func (h *UserHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req domain.GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.authSvc.GoogleLogin(r.Context(), req.IDToken)
	if err != nil {
		httpError(w, err)
		return
	}
	setAuthCookies(w, res.AccessToken, res.RefreshToken, h.secureCookies)
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Email:       res.User.Email,
		AccessToken: res.AccessToken,
		Message:     "google authentication successful",
	})
}

func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if c, err := r.Cookie(refreshTokenCookie); err == nil {
		refreshToken = c.Value
	}
	accessToken, err := h.authSvc.Refresh(r.Context(), refreshToken)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{AccessToken: accessToken})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	clearAuthCookies(w, h.secureCookies)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out successfully"})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.userSvc.Get(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
