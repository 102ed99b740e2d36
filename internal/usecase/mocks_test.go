package usecase

import (
	"context"
	"html/template"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/pkg/mapview"
	"rental-booking/pkg/notify"
	"rental-booking/pkg/payment"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.User), args.Error(1)
}
func (m *MockUserRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepo
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}
func (m *MockSessionRepo) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}
func (m *MockSessionRepo) Revoke(ctx context.Context, token uuid.UUID) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *MockSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(ctx context.Context, property *entity.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockPropertyRepo) FindByID(ctx context.Context, id int64) (*entity.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}
func (m *MockPropertyRepo) FindAll(ctx context.Context) ([]*entity.Property, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.Property), args.Error(1)
}
func (m *MockPropertyRepo) Search(ctx context.Context, filter repository.PropertyFilter, limit int) ([]*entity.Property, error) {
	args := m.Called(ctx, filter, limit)
	return args.Get(0).([]*entity.Property), args.Error(1)
}
func (m *MockPropertyRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPropertyRepo) CountListedByType(ctx context.Context) (map[entity.PropertyType]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[entity.PropertyType]int64), args.Error(1)
}
func (m *MockPropertyRepo) CountListed(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}
func (m *MockBookingRepo) FindByUserID(ctx context.Context, userID int64) ([]*entity.BookingDetail, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*entity.BookingDetail), args.Error(1)
}
func (m *MockBookingRepo) FindAll(ctx context.Context) ([]*entity.BookingDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.BookingDetail), args.Error(1)
}
func (m *MockBookingRepo) FindRecent(ctx context.Context, limit int) ([]*entity.BookingDetail, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*entity.BookingDetail), args.Error(1)
}
func (m *MockBookingRepo) FindConfirmedByUserAndProperty(ctx context.Context, userID, propertyID int64) (*entity.Booking, error) {
	args := m.Called(ctx, userID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}
func (m *MockBookingRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) ConfirmDeposit(ctx context.Context, bookingID int64, p *entity.Payment) (bool, error) {
	args := m.Called(ctx, bookingID, p)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, bookingID int64, status entity.BookingStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}
func (m *MockBookingRepo) ExpireStalePending(ctx context.Context, createdBefore time.Time) (int64, error) {
	args := m.Called(ctx, createdBefore)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) FindDepositByBooking(ctx context.Context, bookingID int64) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}
func (m *MockPaymentRepo) FindByUserID(ctx context.Context, userID int64) ([]*entity.PaymentDetail, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*entity.PaymentDetail), args.Error(1)
}
func (m *MockPaymentRepo) FindAll(ctx context.Context) ([]*entity.PaymentDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.PaymentDetail), args.Error(1)
}
func (m *MockPaymentRepo) FindRecent(ctx context.Context, limit int) ([]*entity.PaymentDetail, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*entity.PaymentDetail), args.Error(1)
}
func (m *MockPaymentRepo) SumCompleted(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

// MockInquiryRepo
type MockInquiryRepo struct {
	mock.Mock
}

func (m *MockInquiryRepo) Create(ctx context.Context, inquiry *entity.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}
func (m *MockInquiryRepo) FindAll(ctx context.Context) ([]*entity.InquiryDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.InquiryDetail), args.Error(1)
}
func (m *MockInquiryRepo) UpdateStatus(ctx context.Context, id int64, status entity.InquiryStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}
func (m *MockGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*payment.CheckoutResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutResult), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, msg notify.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// stubMaps records how many markers it was asked to draw.
type stubMaps struct {
	markers []mapview.Marker
}

func (s *stubMaps) Render(id string, markers []mapview.Marker) template.HTML {
	s.markers = markers
	return template.HTML(`<div id="` + id + `"></div>`)
}

type testRepos struct {
	user     *MockUserRepo
	session  *MockSessionRepo
	property *MockPropertyRepo
	booking  *MockBookingRepo
	payment  *MockPaymentRepo
	inquiry  *MockInquiryRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	m := &testRepos{
		user:     new(MockUserRepo),
		session:  new(MockSessionRepo),
		property: new(MockPropertyRepo),
		booking:  new(MockBookingRepo),
		payment:  new(MockPaymentRepo),
		inquiry:  new(MockInquiryRepo),
	}
	return &repository.Repository{
		User:     m.user,
		Session:  m.session,
		Property: m.property,
		Booking:  m.booking,
		Payment:  m.payment,
		Inquiry:  m.inquiry,
	}, m
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			Name:    "rental-booking",
			BaseURL: "http://localhost:8080",
		},
		Session: utils.SessionConfig{
			Lifetime: 24 * time.Hour,
		},
		Payment: utils.PaymentConfig{
			StripePublicKey: "pk_test",
			Currency:        "kes",
		},
		Booking: utils.BookingConfig{
			PendingTTL: 48 * time.Hour,
		},
	}
}

func float(v float64) *float64 { return &v }

// kilimaniBedsitter is the listing used across the booking scenarios.
func kilimaniBedsitter() *entity.Property {
	return &entity.Property{
		Base:         entity.Base{ID: 1},
		Title:        "Modern Bedsitter in Kilimani",
		PropertyType: entity.PropertyTypeBedsitter,
		Price:        15000,
		Deposit:      30000,
		Location:     "Kilimani, Nairobi",
		Latitude:     float(-1.286389),
		Longitude:    float(36.817223),
		Amenities:    `["WiFi","Parking"]`,
		Images:       `[]`,
		IsAvailable:  true,
	}
}
