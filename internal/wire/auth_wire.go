package wire

import (
	"rental-booking/internal/adaptor"
	"rental-booking/pkg/middleware"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	limit := middleware.RateLimit(config.Security.LoginRatePerMinute, config.Security.LoginBurst, log)

	r.Get("/login", authHandler.LoginForm)
	r.With(limit).Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterForm)
	r.With(limit).Post("/register", authHandler.Register)
	r.Get("/logout", authHandler.Logout)
}
