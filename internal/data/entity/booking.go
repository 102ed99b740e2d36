package entity

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID              int64         `db:"id"`
	UserID          int64         `db:"user_id"`
	PropertyID      int64         `db:"property_id"`
	BookingDate     time.Time     `db:"booking_date"`
	CheckInDate     *time.Time    `db:"check_in_date"`
	CheckOutDate    *time.Time    `db:"check_out_date"`
	Status          BookingStatus `db:"status"`
	DepositPaid     bool          `db:"deposit_paid"`
	TotalAmount     float64       `db:"total_amount"` // deposit only
	SpecialRequests string        `db:"special_requests"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

// HoldsProperty reports whether this booking is the one that keeps its property booked.
func (b *Booking) HoldsProperty() bool {
	return HoldsProperty(b.Status, b.DepositPaid)
}

func HoldsProperty(status BookingStatus, depositPaid bool) bool {
	return status == BookingStatusConfirmed && depositPaid
}

// BookingDetail is a booking joined with the names shown in lists.
type BookingDetail struct {
	Booking
	PropertyTitle string `db:"property_title"`
	Username      string `db:"username"`
}
