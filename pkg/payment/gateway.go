package payment

import "context"

// CheckoutRequest describes one hosted checkout for a fixed amount.
type CheckoutRequest struct {
	Amount      int64 // minor units
	Currency    string
	ProductName string
	Description string
	SuccessURL  string
	CancelURL   string
	ReferenceID string
	Metadata    map[string]string
}

// CheckoutSession is the created session and the page to redirect the payer to.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutResult is the provider's view of a session after the payer returns.
type CheckoutResult struct {
	ID          string
	Paid        bool
	AmountTotal int64
	Currency    string
	Metadata    map[string]string
	PaymentRef  string
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutResult, error)
}

// Error carries a provider message that is safe to show to the payer.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
