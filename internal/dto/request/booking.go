package request

// Dates use the yyyy-mm-dd layout of <input type="date">.
type CreateBookingRequest struct {
	CheckIn         string `schema:"check_in" validate:"omitempty,datetime=2006-01-02"`
	CheckOut        string `schema:"check_out" validate:"omitempty,datetime=2006-01-02"`
	SpecialRequests string `schema:"special_requests" validate:"max=1000"`
}

// StatusRequest carries the admin status change for bookings and inquiries.
type StatusRequest struct {
	Status string `schema:"status" validate:"required"`
}
