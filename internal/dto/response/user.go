package response

import (
	"time"

	"rental-booking/internal/data/entity"
)

type AuthResponse struct {
	UserID    int64
	Username  string
	IsAdmin   bool
	Token     string
	ExpiresAt time.Time
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileResponse struct {
	User     UserResponse
	Bookings []BookingResponse
	Payments []PaymentResponse
}

type DashboardResponse struct {
	TotalProperties     int64
	AvailableProperties int64
	TotalBookings       int64
	PendingBookings     int64
	TotalUsers          int64
	Revenue             float64
	RecentBookings      []BookingResponse
	RecentPayments      []PaymentResponse
}

type InquiryResponse struct {
	ID                int64                `json:"id"`
	PropertyID        int64                `json:"property_id"`
	PropertyTitle     string               `json:"property_title"`
	Username          string               `json:"username"`
	Email             string               `json:"email"`
	Message           string               `json:"message"`
	ContactPreference string               `json:"contact_preference"`
	Status            entity.InquiryStatus `json:"status"`
	CreatedAt         time.Time            `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
	if user.Phone != nil {
		resp.Phone = *user.Phone
	}
	return resp
}

func UsersToResponse(users []*entity.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, UserToResponse(u))
	}
	return result
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	resp := AuthResponse{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}

func InquiriesToResponse(details []*entity.InquiryDetail) []InquiryResponse {
	result := make([]InquiryResponse, 0, len(details))
	for _, d := range details {
		result = append(result, InquiryResponse{
			ID:                d.ID,
			PropertyID:        d.PropertyID,
			PropertyTitle:     d.PropertyTitle,
			Username:          d.Username,
			Email:             d.Email,
			Message:           d.Message,
			ContactPreference: d.ContactPreference,
			Status:            d.Status,
			CreatedAt:         d.CreatedAt,
		})
	}
	return result
}
