package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// bookingStore serializes confirmations the way the row locks in
// ConfirmDeposit do.
type bookingStore struct {
	mu         sync.Mutex
	bookings   map[int64]*entity.Booking
	properties map[int64]*entity.Property
	payments   int
}

func (s *bookingStore) booking(id int64) *entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil
	}
	cp := *b
	return &cp
}

func (s *bookingStore) property(id int64) *entity.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

type fakeBookings struct {
	repository.BookingRepository
	store *bookingStore
}

func (f *fakeBookings) FindByID(_ context.Context, id int64) (*entity.Booking, error) {
	return f.store.booking(id), nil
}

func (f *fakeBookings) ConfirmDeposit(_ context.Context, bookingID int64, _ *entity.Payment) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	b, ok := f.store.bookings[bookingID]
	if !ok {
		return false, repository.ErrBookingNotFound
	}
	if b.HoldsProperty() {
		return false, nil
	}
	if b.Status != entity.BookingStatusPending {
		return false, repository.ErrBookingNotPending
	}
	p := f.store.properties[b.PropertyID]
	if p.IsBooked {
		return false, repository.ErrPropertyBooked
	}

	p.IsBooked = true
	b.Status = entity.BookingStatusConfirmed
	b.DepositPaid = true
	f.store.payments++
	return true, nil
}

type fakeProperties struct {
	repository.PropertyRepository
	store *bookingStore
}

func (f *fakeProperties) FindByID(_ context.Context, id int64) (*entity.Property, error) {
	return f.store.property(id), nil
}

func TestBookingService_ConcurrentDepositsForOneProperty(t *testing.T) {
	ctx := context.Background()

	store := &bookingStore{
		bookings: map[int64]*entity.Booking{
			5: pendingBooking(5, 7),
			6: pendingBooking(6, 8),
		},
		properties: map[int64]*entity.Property{
			1: kilimaniBedsitter(),
		},
	}

	repo, m := newTestRepos()
	repo.Booking = &fakeBookings{store: store}
	repo.Property = &fakeProperties{store: store}
	m.user.On("FindByID", mock.Anything, mock.Anything).Return(&entity.User{Email: "tenant@example.com"}, nil)
	m.payment.On("FindDepositByBooking", mock.Anything, mock.Anything).Return(nil, nil)

	gateway := new(MockGateway)
	gateway.On("GetCheckoutSession", mock.Anything, "cs_5").Return(paidCheckout("5"), nil)
	gateway.On("GetCheckoutSession", mock.Anything, "cs_6").Return(paidCheckout("6"), nil)

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, mock.Anything).Return(nil)

	svc := NewBookingService(repo, gateway, notifier, testConfig(), zap.NewNop())

	attempts := []struct {
		userID    int64
		bookingID int64
		sessionID string
	}{
		{7, 5, "cs_5"},
		{8, 6, "cs_6"},
	}

	errs := make([]error, len(attempts))
	var wg sync.WaitGroup
	for i, a := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.HandlePaymentSuccess(ctx, a.userID, a.bookingID, a.sessionID)
		}()
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Equal(t, 1, store.payments)
	assert.True(t, store.properties[1].IsBooked)

	var holders int
	for _, b := range store.bookings {
		if b.HoldsProperty() {
			holders++
		}
	}
	assert.Equal(t, 1, holders)
	notifier.AssertNumberOfCalls(t, "Send", 1)
}
