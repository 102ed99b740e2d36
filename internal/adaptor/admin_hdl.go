package adaptor

import (
	"errors"
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service  usecase.AdminService
	property usecase.PropertyService
	booking  usecase.BookingService
	inquiry  usecase.InquiryService
	pages    *Pages
	log      *zap.Logger
}

func NewAdminHandler(
	service usecase.AdminService,
	property usecase.PropertyService,
	booking usecase.BookingService,
	inquiry usecase.InquiryService,
	pages *Pages,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		service:  service,
		property: property,
		booking:  booking,
		inquiry:  inquiry,
		pages:    pages,
		log:      log.With(zap.String("handler", "admin")),
	}
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/", "load dashboard")
		return
	}

	h.pages.render(w, r, http.StatusOK, "admin/dashboard", "Admin dashboard", dashboard)
}

// Properties handles GET /admin/properties
func (h *AdminHandler) Properties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.service.ListProperties(r.Context())
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/admin", "list properties")
		return
	}

	h.pages.render(w, r, http.StatusOK, "admin/properties", "Properties", properties)
}

// AddPropertyForm handles GET /admin/properties/add
func (h *AdminHandler) AddPropertyForm(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, r, http.StatusOK, "admin/add_property", "Add property", (*request.PropertyRequest)(nil))
}

// AddProperty handles POST /admin/properties/add. Bad input re-shows the form as submitted.
func (h *AdminHandler) AddProperty(w http.ResponseWriter, r *http.Request) {
	var req request.PropertyRequest
	if errs := parseForm(r, &req); len(errs) > 0 {
		h.log.Warn("Add property form rejected", zap.Any("errors", errs))
		h.pages.renderPage(w, r, http.StatusOK, "admin/add_property", pageWithFlash("Add property", &req,
			"error", "Error adding property: "+utils.FormatValidationErrors(errs)))
		return
	}

	_, err := h.property.CreateProperty(r.Context(), currentUser(r).UserID, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			h.pages.renderFormError(w, r, "admin/add_property", "Add property", &req, err)
			return
		}
		h.pages.handleServiceError(w, r, err, "/admin/properties/add", "add property")
		return
	}

	utils.RedirectWithFlash(w, r, "/admin/properties", "success", "Property added successfully!")
}

// Bookings handles GET /admin/bookings
func (h *AdminHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListBookings(r.Context())
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/admin", "list bookings")
		return
	}

	h.pages.render(w, r, http.StatusOK, "admin/bookings", "Bookings", bookings)
}

// UpdateBooking handles POST /admin/bookings/{id}/update
func (h *AdminHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pages.pathID(w, r)
	if !ok {
		return
	}

	var req request.StatusRequest
	if errs := parseForm(r, &req); len(errs) > 0 {
		utils.RedirectWithFlash(w, r, "/admin/bookings", "error", utils.FormatValidationErrors(errs))
		return
	}

	if err := h.booking.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.pages.handleServiceError(w, r, err, "/admin/bookings", "update booking status")
		return
	}

	utils.RedirectWithFlash(w, r, "/admin/bookings", "success", "Booking status updated")
}

// Users handles GET /admin/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/admin", "list users")
		return
	}

	h.pages.render(w, r, http.StatusOK, "admin/users", "Users", users)
}

// Payments handles GET /admin/payments
func (h *AdminHandler) Payments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListPayments(r.Context())
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/admin", "list payments")
		return
	}

	h.pages.render(w, r, http.StatusOK, "admin/payments", "Payments", payments)
}

// Inquiries handles GET /admin/inquiries
func (h *AdminHandler) Inquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.inquiry.ListInquiries(r.Context())
	if err != nil {
		h.pages.handleServiceError(w, r, err, "/admin", "list inquiries")
		return
	}

	h.pages.render(w, r, http.StatusOK, "admin/inquiries", "Inquiries", inquiries)
}

// UpdateInquiry handles POST /admin/inquiries/{id}/update
func (h *AdminHandler) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pages.pathID(w, r)
	if !ok {
		return
	}

	var req request.StatusRequest
	if errs := parseForm(r, &req); len(errs) > 0 {
		utils.RedirectWithFlash(w, r, "/admin/inquiries", "error", utils.FormatValidationErrors(errs))
		return
	}

	if err := h.inquiry.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.pages.handleServiceError(w, r, err, "/admin/inquiries", "update inquiry status")
		return
	}

	utils.RedirectWithFlash(w, r, "/admin/inquiries", "success", "Inquiry status updated")
}
