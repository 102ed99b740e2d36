package usecase

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/notify"
	"rental-booking/pkg/payment"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

const notifyTimeout = 10 * time.Second

type BookingService interface {
	CreateBooking(ctx context.Context, userID, propertyID int64, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetPaymentOptions(ctx context.Context, viewer *utils.Identity, bookingID int64) (*response.PaymentOptionsResponse, error)

	// Deposit payment
	InitiateDeposit(ctx context.Context, userID, bookingID int64) (string, error)
	HandlePaymentSuccess(ctx context.Context, userID, bookingID int64, sessionID string) (*response.PaymentResultResponse, error)

	// Admin and scheduler
	UpdateStatus(ctx context.Context, bookingID int64, status string) error
	ExpireStalePending(ctx context.Context) (int64, error)
}

type bookingService struct {
	repo     *repository.Repository // bookings, properties, payments, users
	gateway  payment.Gateway
	notifier notify.Notifier
	config   *utils.Config
	log      *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	gateway payment.Gateway,
	notifier notify.Notifier,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier,
		config:   config,
		log:      log.With(zap.String("service", "booking")),
	}
}

// CreateBooking records a pending booking whose total is the property's deposit.
func (s *bookingService) CreateBooking(ctx context.Context, userID, propertyID int64, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, withDetail(ErrValidation, "%s", utils.FormatValidationErrors(errs))
	}

	property, err := s.repo.Property.FindByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("find property: %w", err)
	}
	if property == nil {
		return nil, withDetail(ErrNotFound, "Property not found")
	}
	if property.IsBooked {
		return nil, ErrAlreadyBooked
	}
	if !property.IsAvailable {
		return nil, withDetail(ErrValidation, "This property is not available for booking")
	}

	checkIn, err := utils.ParseOptionalDate(req.CheckIn)
	if err != nil {
		return nil, withDetail(ErrValidation, "check_in: Must be a date in format %s", utils.DateLayout)
	}
	checkOut, err := utils.ParseOptionalDate(req.CheckOut)
	if err != nil {
		return nil, withDetail(ErrValidation, "check_out: Must be a date in format %s", utils.DateLayout)
	}
	if checkIn != nil && checkOut != nil && !checkOut.After(*checkIn) {
		return nil, withDetail(ErrValidation, "Check-out date must be after check-in date")
	}

	now := time.Now()
	booking := &entity.Booking{
		UserID:          userID,
		PropertyID:      propertyID,
		BookingDate:     now,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Status:          entity.BookingStatusPending,
		DepositPaid:     false,
		TotalAmount:     property.Deposit,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		UpdatedAt:       now,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
		zap.Int64("property_id", propertyID),
		zap.Float64("total_amount", booking.TotalAmount))

	resp := response.BookingToResponse(booking)
	resp.PropertyTitle = property.Title
	return &resp, nil
}

// GetPaymentOptions is open to the booking's owner and to admins.
func (s *bookingService) GetPaymentOptions(ctx context.Context, viewer *utils.Identity, bookingID int64) (*response.PaymentOptionsResponse, error) {
	booking, property, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != viewer.UserID && !viewer.IsAdmin {
		s.log.Warn("Payment options access denied",
			zap.Int64("booking_id", bookingID),
			zap.Int64("user_id", viewer.UserID))
		return nil, ErrForbidden
	}

	bookingResp := response.BookingToResponse(booking)
	bookingResp.PropertyTitle = property.Title

	return &response.PaymentOptionsResponse{
		Booking:   bookingResp,
		Property:  response.PropertyToResponse(property),
		PublicKey: s.config.Payment.StripePublicKey,
	}, nil
}

// InitiateDeposit creates a hosted checkout for the deposit and returns its URL.
func (s *bookingService) InitiateDeposit(ctx context.Context, userID, bookingID int64) (string, error) {
	booking, property, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if booking.UserID != userID {
		return "", ErrForbidden
	}
	if booking.DepositPaid {
		return "", withDetail(ErrValidation, "The deposit for this booking has already been paid")
	}
	if booking.Status != entity.BookingStatusPending {
		return "", withDetail(ErrValidation, "This booking is %s and cannot be paid", booking.Status)
	}
	if property.IsBooked {
		return "", ErrAlreadyBooked
	}

	bookingRef := strconv.FormatInt(booking.ID, 10)
	baseURL := strings.TrimRight(s.config.App.BaseURL, "/")

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		Amount:      utils.ToMinorUnits(property.Deposit),
		Currency:    s.config.Payment.Currency,
		ProductName: "Deposit for " + property.Title,
		Description: "Booking #" + bookingRef,
		SuccessURL:  fmt.Sprintf("%s/payment/success/%d?session_id={CHECKOUT_SESSION_ID}", baseURL, booking.ID),
		CancelURL:   fmt.Sprintf("%s/booking/%d/payment-options", baseURL, booking.ID),
		ReferenceID: bookingRef,
		Metadata: map[string]string{
			"booking_id":  bookingRef,
			"user_id":     strconv.FormatInt(booking.UserID, 10),
			"property_id": strconv.FormatInt(property.ID, 10),
		},
	})
	if err != nil {
		s.log.Warn("Checkout session creation failed", zap.Error(err), zap.Int64("booking_id", bookingID))
		return "", withDetail(ErrPaymentInit, "Error creating payment session: %s", err.Error())
	}

	s.log.Info("Checkout session created",
		zap.Int64("booking_id", bookingID),
		zap.String("session_id", session.ID))

	return session.URL, nil
}

// HandlePaymentSuccess verifies the checkout with the provider, then confirms
// the booking, books the property and records the deposit atomically.
// Repeated calls for a confirmed booking return the existing result.
func (s *bookingService) HandlePaymentSuccess(ctx context.Context, userID, bookingID int64, sessionID string) (*response.PaymentResultResponse, error) {
	booking, property, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}

	if booking.HoldsProperty() {
		return s.paymentResult(ctx, bookingID)
	}

	checkout, err := s.verifyCheckout(ctx, booking, property, sessionID)
	if err != nil {
		return nil, err
	}

	ref := checkout.PaymentRef
	deposit := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			CreatedAt: time.Now(),
		},
		Amount:          property.Deposit,
		PaymentMethod:   "stripe",
		TransactionRef:  &ref,
		Status:          entity.PaymentStatusCompleted,
		TransactionType: entity.TransactionTypeDeposit,
	}

	applied, err := s.repo.Booking.ConfirmDeposit(ctx, bookingID, deposit)
	switch {
	case errors.Is(err, repository.ErrPropertyBooked):
		s.log.Warn("Deposit confirmation lost the property",
			zap.Int64("booking_id", bookingID),
			zap.Int64("property_id", property.ID))
		return nil, withDetail(ErrConflict, "This property was booked by someone else before your payment completed")
	case errors.Is(err, repository.ErrBookingNotPending):
		return nil, withDetail(ErrConflict, "This booking is no longer pending")
	case errors.Is(err, repository.ErrBookingNotFound):
		return nil, withDetail(ErrNotFound, "Booking not found")
	case err != nil:
		return nil, fmt.Errorf("confirm deposit: %w", err)
	}

	if applied {
		s.log.Info("Deposit confirmed",
			zap.Int64("booking_id", bookingID),
			zap.Int64("payment_id", deposit.ID),
			zap.Float64("amount", deposit.Amount))
		s.notifyConfirmed(ctx, booking, property)
	}

	return s.paymentResult(ctx, bookingID)
}

func (s *bookingService) verifyCheckout(ctx context.Context, booking *entity.Booking, property *entity.Property, sessionID string) (*payment.CheckoutResult, error) {
	if sessionID == "" {
		return nil, withDetail(ErrPaymentNotVerified, "Payment could not be verified: missing checkout session")
	}

	result, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, withDetail(ErrPaymentNotVerified, "Payment could not be verified: %s", err.Error())
	}

	expected := utils.ToMinorUnits(property.Deposit)
	switch {
	case !result.Paid:
		return nil, withDetail(ErrPaymentNotVerified, "Payment has not been completed")
	case result.Metadata["booking_id"] != strconv.FormatInt(booking.ID, 10):
		s.log.Warn("Checkout session belongs to another booking",
			zap.Int64("booking_id", booking.ID),
			zap.String("session_id", sessionID),
			zap.String("session_booking_id", result.Metadata["booking_id"]))
		return nil, withDetail(ErrPaymentNotVerified, "Payment does not match this booking")
	case result.AmountTotal != expected:
		s.log.Warn("Checkout amount mismatch",
			zap.Int64("booking_id", booking.ID),
			zap.Int64("expected", expected),
			zap.Int64("paid", result.AmountTotal))
		return nil, withDetail(ErrPaymentNotVerified, "Payment amount does not match the deposit")
	}

	if result.PaymentRef == "" {
		result.PaymentRef = result.ID
	}
	return result, nil
}

func (s *bookingService) paymentResult(ctx context.Context, bookingID int64) (*response.PaymentResultResponse, error) {
	booking, property, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	result := &response.PaymentResultResponse{
		Booking:  response.BookingToResponse(booking),
		Property: response.PropertyToResponse(property),
	}
	result.Booking.PropertyTitle = property.Title

	deposit, err := s.repo.Payment.FindDepositByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find deposit: %w", err)
	}
	if deposit != nil {
		resp := response.PaymentToResponse(deposit)
		resp.PropertyTitle = property.Title
		result.Payment = &resp
	}

	return result, nil
}

// notifyConfirmed emails the tenant. Failures are logged, never returned.
func (s *bookingService) notifyConfirmed(ctx context.Context, booking *entity.Booking, property *entity.Property) {
	user, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil || user == nil {
		s.log.Warn("Skipping confirmation email, user lookup failed",
			zap.Error(err),
			zap.Int64("user_id", booking.UserID))
		return
	}

	amount := utils.FormatMoney(s.config.Payment.Currency, property.Deposit)
	msg := notify.Message{
		ToEmail: user.Email,
		ToName:  user.Username,
		Subject: fmt.Sprintf("Booking #%d confirmed: %s", booking.ID, property.Title),
		PlainText: fmt.Sprintf("Hi %s, we received your deposit of %s for %s (%s). Your booking #%d is confirmed.",
			user.Username, amount, property.Title, property.Location, booking.ID),
		HTML: fmt.Sprintf("<p>Hi %s,</p><p>We received your deposit of <strong>%s</strong> for <strong>%s</strong> (%s).</p><p>Your booking #%d is confirmed.</p>",
			template.HTMLEscapeString(user.Username), amount,
			template.HTMLEscapeString(property.Title), template.HTMLEscapeString(property.Location), booking.ID),
	}

	sendCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := s.notifier.Send(sendCtx, msg); err != nil {
		s.log.Warn("Failed to send confirmation email", zap.Error(err), zap.Int64("booking_id", booking.ID))
	}
}

// UpdateStatus is the admin override. Unknown statuses are rejected.
func (s *bookingService) UpdateStatus(ctx context.Context, bookingID int64, status string) error {
	newStatus := entity.BookingStatus(strings.TrimSpace(status))
	if !newStatus.Valid() {
		return withDetail(ErrValidation, "Invalid booking status %q", status)
	}

	err := s.repo.Booking.UpdateStatus(ctx, bookingID, newStatus)
	switch {
	case errors.Is(err, repository.ErrBookingNotFound):
		return withDetail(ErrNotFound, "Booking not found")
	case errors.Is(err, repository.ErrPropertyBooked):
		return withDetail(ErrConflict, "The property is already held by another confirmed booking")
	case err != nil:
		return fmt.Errorf("update booking status: %w", err)
	}

	s.log.Info("Booking status updated",
		zap.Int64("booking_id", bookingID),
		zap.String("status", string(newStatus)))
	return nil
}

// ExpireStalePending cancels unpaid bookings older than the configured TTL.
func (s *bookingService) ExpireStalePending(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.config.Booking.PendingTTL)

	n, err := s.repo.Booking.ExpireStalePending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire pending bookings: %w", err)
	}
	if n > 0 {
		s.log.Info("Expired unpaid bookings", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}

func (s *bookingService) loadBooking(ctx context.Context, bookingID int64) (*entity.Booking, *entity.Property, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, nil, withDetail(ErrNotFound, "Booking not found")
	}

	property, err := s.repo.Property.FindByID(ctx, booking.PropertyID)
	if err != nil {
		return nil, nil, fmt.Errorf("find property: %w", err)
	}
	if property == nil {
		return nil, nil, withDetail(ErrNotFound, "Property not found")
	}

	return booking, property, nil
}
