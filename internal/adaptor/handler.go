package adaptor

import (
	"rental-booking/internal/usecase"
	"rental-booking/internal/view"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Pages    *Pages
	Auth     *AuthHandler
	User     *UserHandler
	Property *PropertyHandler
	Booking  *BookingHandler
	Admin    *AdminHandler
	API      *APIHandler
}

func NewHandler(service *usecase.Service, renderer *view.Renderer, config *utils.Config, log *zap.Logger) *Handler {
	pages := NewPages(renderer, log)

	return &Handler{
		Pages:    pages,
		Auth:     NewAuthHandler(service.Auth, pages, config, log),
		User:     NewUserHandler(service.User, pages, log),
		Property: NewPropertyHandler(service.Property, service.Inquiry, pages, log),
		Booking:  NewBookingHandler(service.Booking, service.Property, pages, log),
		Admin:    NewAdminHandler(service.Admin, service.Property, service.Booking, service.Inquiry, pages, log),
		API:      NewAPIHandler(service.Property, log),
	}
}
