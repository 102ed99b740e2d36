package adaptor

import (
	"errors"
	"fmt"
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service  usecase.BookingService
	property usecase.PropertyService
	pages    *Pages
	log      *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, property usecase.PropertyService, pages *Pages, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:  service,
		property: property,
		pages:    pages,
		log:      log.With(zap.String("handler", "booking")),
	}
}

// BookForm handles GET /property/{id}/book
func (h *BookingHandler) BookForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pages.pathID(w, r)
	if !ok {
		return
	}

	property, err := h.property.GetProperty(r.Context(), id)
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/", "load booking form")
		return
	}
	if property.IsBooked {
		utils.RedirectWithFlash(w, r, fmt.Sprintf("/property/%d", id), "error", "This property is already booked")
		return
	}

	h.pages.render(w, r, http.StatusOK, "booking_form", "Book "+property.Title, property)
}

// Book handles POST /property/{id}/book
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pages.pathID(w, r)
	if !ok {
		return
	}
	back := fmt.Sprintf("/property/%d/book", id)

	var req request.CreateBookingRequest
	if errs := parseForm(r, &req); len(errs) > 0 {
		utils.RedirectWithFlash(w, r, back, "error", utils.FormatValidationErrors(errs))
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), currentUser(r).UserID, id, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyBooked) {
			utils.RedirectWithFlash(w, r, fmt.Sprintf("/property/%d", id), "error", "This property is already booked")
			return
		}
		h.pages.handleServiceError(w, r, err, back, "create booking")
		return
	}

	utils.RedirectWithFlash(w, r, fmt.Sprintf("/booking/%d/payment-options", booking.ID),
		"success", "Booking request submitted! Please pay deposit to confirm.")
}

// PaymentOptions handles GET /booking/{id}/payment-options
func (h *BookingHandler) PaymentOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pages.pathID(w, r)
	if !ok {
		return
	}

	options, err := h.service.GetPaymentOptions(r.Context(), currentUser(r), id)
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/profile", "get payment options")
		return
	}

	h.pages.render(w, r, http.StatusOK, "payment_options", "Pay deposit", options)
}

// PayDeposit handles GET /booking/{id}/pay-deposit by redirecting to the hosted checkout.
func (h *BookingHandler) PayDeposit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pages.pathID(w, r)
	if !ok {
		return
	}

	checkoutURL, err := h.service.InitiateDeposit(r.Context(), currentUser(r).UserID, id)
	if err != nil {
		h.pages.handleServiceError(w, r, err, fmt.Sprintf("/booking/%d/payment-options", id), "initiate deposit")
		return
	}

	http.Redirect(w, r, checkoutURL, http.StatusSeeOther)
}

// PaymentSuccess handles GET /payment/success/{id}?session_id=...
func (h *BookingHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pages.pathID(w, r)
	if !ok {
		return
	}

	result, err := h.service.HandlePaymentSuccess(r.Context(), currentUser(r).UserID, id, r.URL.Query().Get("session_id"))
	if err != nil {
		h.pages.handleServiceError(w, r, err, fmt.Sprintf("/booking/%d/payment-options", id), "confirm payment")
		return
	}

	h.pages.renderPage(w, r, http.StatusOK, "booking_success", pageWithFlash("Booking confirmed", result,
		"success", "Payment successful! Your booking is now confirmed."))
}
