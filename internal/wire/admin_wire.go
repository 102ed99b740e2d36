package wire

import (
	"rental-booking/internal/adaptor"
	"rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, log *zap.Logger) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Admin(log))

		r.Get("/", adminHandler.Dashboard)

		r.Get("/properties", adminHandler.Properties)
		r.Get("/properties/add", adminHandler.AddPropertyForm)
		r.Post("/properties/add", adminHandler.AddProperty)

		r.Get("/bookings", adminHandler.Bookings)
		r.Post("/bookings/{id}/update", adminHandler.UpdateBooking)

		r.Get("/users", adminHandler.Users)
		r.Get("/payments", adminHandler.Payments)

		r.Get("/inquiries", adminHandler.Inquiries)
		r.Post("/inquiries/{id}/update", adminHandler.UpdateInquiry)
	})
}
