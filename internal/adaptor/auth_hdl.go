package adaptor

import (
	"errors"
	"net/http"
	"net/url"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	pages   *Pages
	config  *utils.Config
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, pages *Pages, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		pages:   pages,
		config:  config,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.pages.render(w, r, http.StatusOK, "login", "Log in", &request.LoginRequest{
		Next: r.URL.Query().Get("next"),
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var req request.LoginRequest
	if errs := parseForm(r, &req); len(errs) > 0 {
		utils.RedirectWithFlash(w, r, "/login", "error", "Invalid username or password")
		return
	}

	auth, err := h.service.Login(r.Context(), &req, r.UserAgent(), r.RemoteAddr)
	if err != nil {
		h.pages.handleServiceError(w, r, err, loginURL(req.Next), "login")
		return
	}

	utils.SetSessionCookie(w, auth.Token, auth.ExpiresAt, h.config.Session.CookieSecure)

	target := "/"
	switch {
	case auth.IsAdmin:
		target = "/admin"
	case utils.IsLocalPath(req.Next):
		target = req.Next
	}

	utils.RedirectWithFlash(w, r, target, "success", "Login successful!")
}

func loginURL(next string) string {
	if utils.IsLocalPath(next) {
		return "/login?next=" + url.QueryEscape(next)
	}
	return "/login"
}

// RegisterForm handles GET /register
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.pages.render(w, r, http.StatusOK, "register", "Register", &request.RegisterRequest{})
}

// Register handles POST /register. Rejected input re-shows the form with the entered values.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var req request.RegisterRequest
	if errs := parseForm(r, &req); len(errs) > 0 {
		utils.RedirectWithFlash(w, r, "/register", "error", utils.FormatValidationErrors(errs))
		return
	}

	_, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			h.log.Warn("Registration rejected", zap.Error(err))
			req.Password, req.ConfirmPassword = "", ""
			h.pages.renderFormError(w, r, "register", "Register", &req, err)
			return
		}
		h.pages.handleServiceError(w, r, err, "/register", "register")
		return
	}

	utils.RedirectWithFlash(w, r, "/login", "success", "Registration successful! Please login.")
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if identity := currentUser(r); identity != nil {
		if err := h.service.Logout(r.Context(), identity.Token); err != nil {
			h.log.Error("Failed to revoke session", zap.Error(err), zap.Int64("user_id", identity.UserID))
		}
	}

	utils.ClearSessionCookie(w)
	utils.RedirectWithFlash(w, r, "/", "info", "You have been logged out")
}
