package wire

import (
	"rental-booking/internal/adaptor"
	"rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireProperty(r chi.Router, propertyHandler *adaptor.PropertyHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/", propertyHandler.Home)
	r.Get("/search", propertyHandler.SearchForm)
	r.Post("/search", propertyHandler.Search)
	r.Get("/property/{id}", propertyHandler.Detail)
	r.Get("/property/{id}/virtual-tour", propertyHandler.VirtualTour)

	// ==================== LOGGED-IN ROUTES ====================
	r.With(middleware.RequireLogin).Post("/property/{id}/inquire", propertyHandler.Inquire)
}
