package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/grovebook/mentor-sessions/internal/domain"
	"github.com/grovebook/mentor-sessions/internal/http/middleware"
	"github.com/grovebook/mentor-sessions/internal/http/response"
	"github.com/grovebook/mentor-sessions/internal/service"
	"github.com/grovebook/mentor-sessions/pkg/logger"
)

type AuthHandler struct {
	Svc          service.AuthService
	Validate     *validator.Validate
	SecureCookie bool
}

func NewAuthHandler(svc service.AuthService, v *validator.Validate, secureCookie bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Validate: v, SecureCookie: secureCookie}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/me", h.me)
	return r
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if err := h.Validate.Struct(&in); err != nil {
		response.BadRequest(w, "invalid input")
		return
	}

	u, err := h.Svc.Register(r.Context(), &in)
	if err != nil {
		response.Domain(w, err)
		return
	}

	logger.InfoContext(r.Context(), "user registered", "user_id", u.ID, "role", u.Role)
	respondJSON(w, http.StatusCreated, u)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if err := h.Validate.Struct(&in); err != nil {
		response.BadRequest(w, "invalid input")
		return
	}

	u, token, expiresAt, err := h.Svc.Login(r.Context(), &in)
	if err != nil {
		response.Domain(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.SecureCookie,
	})
	respondJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.CookieName); err == nil {
		if err := h.Svc.Logout(r.Context(), c.Value); err != nil {
			logger.ErrorContext(r.Context(), "failed to delete session", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.SecureCookie,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	ident := middleware.Identity(r)
	if ident == nil {
		response.Unauthorized(w, "authentication required")
		return
	}
	respondJSON(w, http.StatusOK, ident)
}
