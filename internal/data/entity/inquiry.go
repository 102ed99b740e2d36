package entity

type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "pending"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusClosed    InquiryStatus = "closed"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusPending, InquiryStatusContacted, InquiryStatusClosed:
		return true
	}
	return false
}

type Inquiry struct {
	BaseSimple
	PropertyID        int64         `db:"property_id"`
	UserID            int64         `db:"user_id"`
	Message           string        `db:"message"`
	ContactPreference string        `db:"contact_preference"`
	Status            InquiryStatus `db:"status"`
}

// InquiryDetail is an inquiry joined with the names shown in the admin list.
type InquiryDetail struct {
	Inquiry
	PropertyTitle string `db:"property_title"`
	Username      string `db:"username"`
	Email         string `db:"email"`
}
