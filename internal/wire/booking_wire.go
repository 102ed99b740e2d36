package wire

import (
	"rental-booking/internal/adaptor"
	"rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireLogin)

		r.Get("/property/{id}/book", bookingHandler.BookForm)
		r.Post("/property/{id}/book", bookingHandler.Book)

		r.Get("/booking/{id}/payment-options", bookingHandler.PaymentOptions)
		r.Get("/booking/{id}/pay-deposit", bookingHandler.PayDeposit)

		// Return leg of the hosted checkout
		r.Get("/payment/success/{id}", bookingHandler.PaymentSuccess)
	})
}
