package wire

import (
	"net/http"

	"rental-booking/internal/adaptor"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/usecase"
	"rental-booking/internal/view"
	"rental-booking/pkg/middleware"
	"rental-booking/pkg/notify"
	"rental-booking/pkg/payment"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the services the background jobs need.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Collaborators are the external integrations the services depend on.
type Collaborators struct {
	Gateway  payment.Gateway
	Notifier notify.Notifier
	Maps     usecase.MapRenderer
	Views    *view.Renderer
}

// Wiring builds services and handlers and mounts every route.
func Wiring(repo *repository.Repository, deps Collaborators, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, deps.Gateway, deps.Notifier, deps.Maps, config, logger)
	handler := adaptor.NewHandler(service, deps.Views, config, logger)

	return &App{
		Router:  setupRouter(handler, repo, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger, handler.Pages.ServerError))
	r.Use(middleware.LoadSession(repo.Session, repo.User, logger))

	r.NotFound(handler.Pages.NotFound)
	r.Handle("/static/*", http.StripPrefix("/static/", view.Static()))

	wireAuth(r, handler.Auth, config, logger)
	wireProperty(r, handler.Property)
	wireBooking(r, handler.Booking)
	wireUser(r, handler.User)
	wireAdmin(r, handler.Admin, logger)
	wireAPI(r, handler.API)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
