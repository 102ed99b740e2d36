package entity

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeRent        TransactionType = "rent"
	TransactionTypeFullPayment TransactionType = "full_payment"
)

type Payment struct {
	BaseSimple
	UserID          int64           `db:"user_id"`
	PropertyID      int64           `db:"property_id"`
	BookingID       int64           `db:"booking_id"`
	Amount          float64         `db:"amount"`
	PaymentMethod   string          `db:"payment_method"`
	TransactionRef  *string         `db:"transaction_ref"`
	Status          PaymentStatus   `db:"status"`
	TransactionType TransactionType `db:"transaction_type"`
}

// PaymentDetail is a payment joined with the names shown in lists.
type PaymentDetail struct {
	Payment
	PropertyTitle string `db:"property_title"`
	Username      string `db:"username"`
}
