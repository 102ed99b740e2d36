package response

import (
	"time"

	"rental-booking/internal/data/entity"
)

type BookingResponse struct {
	ID              int64                `json:"id"`
	UserID          int64                `json:"user_id"`
	PropertyID      int64                `json:"property_id"`
	PropertyTitle   string               `json:"property_title,omitempty"`
	Username        string               `json:"username,omitempty"`
	BookingDate     time.Time            `json:"booking_date"`
	CheckInDate     *time.Time           `json:"check_in_date,omitempty"`
	CheckOutDate    *time.Time           `json:"check_out_date,omitempty"`
	Status          entity.BookingStatus `json:"status"`
	DepositPaid     bool                 `json:"deposit_paid"`
	TotalAmount     float64              `json:"total_amount"`
	SpecialRequests string               `json:"special_requests,omitempty"`
}

type PaymentResponse struct {
	ID              int64                  `json:"id"`
	BookingID       int64                  `json:"booking_id"`
	PropertyID      int64                  `json:"property_id"`
	PropertyTitle   string                 `json:"property_title,omitempty"`
	Username        string                 `json:"username,omitempty"`
	Amount          float64                `json:"amount"`
	PaymentMethod   string                 `json:"payment_method"`
	TransactionRef  string                 `json:"transaction_ref,omitempty"`
	Status          entity.PaymentStatus   `json:"status"`
	TransactionType entity.TransactionType `json:"transaction_type"`
	CreatedAt       time.Time              `json:"created_at"`
}

type PaymentOptionsResponse struct {
	Booking   BookingResponse
	Property  PropertyResponse
	PublicKey string
}

// PaymentResultResponse is shown after a verified checkout.
type PaymentResultResponse struct {
	Booking  BookingResponse
	Property PropertyResponse
	Payment  *PaymentResponse
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		PropertyID:      b.PropertyID,
		BookingDate:     b.BookingDate,
		CheckInDate:     b.CheckInDate,
		CheckOutDate:    b.CheckOutDate,
		Status:          b.Status,
		DepositPaid:     b.DepositPaid,
		TotalAmount:     b.TotalAmount,
		SpecialRequests: b.SpecialRequests,
	}
}

func BookingDetailsToResponse(details []*entity.BookingDetail) []BookingResponse {
	result := make([]BookingResponse, 0, len(details))
	for _, d := range details {
		resp := BookingToResponse(&d.Booking)
		resp.PropertyTitle = d.PropertyTitle
		resp.Username = d.Username
		result = append(result, resp)
	}
	return result
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:              p.ID,
		BookingID:       p.BookingID,
		PropertyID:      p.PropertyID,
		Amount:          p.Amount,
		PaymentMethod:   p.PaymentMethod,
		Status:          p.Status,
		TransactionType: p.TransactionType,
		CreatedAt:       p.CreatedAt,
	}
	if p.TransactionRef != nil {
		resp.TransactionRef = *p.TransactionRef
	}
	return resp
}

func PaymentDetailsToResponse(details []*entity.PaymentDetail) []PaymentResponse {
	result := make([]PaymentResponse, 0, len(details))
	for _, d := range details {
		resp := PaymentToResponse(&d.Payment)
		resp.PropertyTitle = d.PropertyTitle
		resp.Username = d.Username
		result = append(result, resp)
	}
	return result
}
