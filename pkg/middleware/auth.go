package middleware

import (
	"net/http"
	"net/url"

	"rental-booking/internal/data/repository"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoadSession resolves the session cookie into an identity on the request context.
// Requests without a valid session continue anonymously.
func LoadSession(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(utils.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := uuid.Parse(cookie.Value)
			if err != nil {
				utils.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if session == nil {
				utils.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to load session user", zap.Error(err), zap.Int64("user_id", session.UserID))
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				utils.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetIdentity(r.Context(), &utils.Identity{
				UserID:   user.ID,
				Username: user.Username,
				Email:    user.Email,
				IsAdmin:  user.IsAdmin,
				Token:    session.Token,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin sends anonymous requests to the login page, remembering where they were going.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetIdentity(r.Context()); !ok {
			target := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
			utils.RedirectWithFlash(w, r, target, "info", "Please log in to access this page.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Admin - gate for the admin panel. Must run after LoadSession.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentity(r.Context())
			if !ok {
				target := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
				utils.RedirectWithFlash(w, r, target, "info", "Please log in to access this page.")
				return
			}

			if !identity.IsAdmin {
				logger.Warn("Admin check: non-admin access attempt",
					zap.Int64("user_id", identity.UserID),
					zap.String("path", r.URL.Path))
				utils.RedirectWithFlash(w, r, "/", "error", "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
