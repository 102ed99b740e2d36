package usecase

import (
	"context"
	"errors"
	"testing"

	"rental-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdminService_Dashboard(t *testing.T) {
	ctx := context.Background()
	repo, m := newTestRepos()
	svc := NewAdminService(repo, zap.NewNop())

	m.property.On("CountAll", ctx).Return(int64(6), nil)
	m.property.On("CountListed", ctx).Return(int64(5), nil)
	m.booking.On("CountAll", ctx).Return(int64(4), nil)
	m.booking.On("CountByStatus", ctx, entity.BookingStatusPending).Return(int64(2), nil)
	m.user.On("CountAll", ctx).Return(int64(9), nil)
	m.payment.On("SumCompleted", ctx).Return(60000.0, nil)
	m.booking.On("FindRecent", ctx, 10).Return([]*entity.BookingDetail{
		{Booking: *pendingBooking(5, 7), PropertyTitle: "Modern Bedsitter in Kilimani", Username: "wanjiku"},
	}, nil)
	m.payment.On("FindRecent", ctx, 10).Return([]*entity.PaymentDetail{}, nil)

	dash, err := svc.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(6), dash.TotalProperties)
	assert.Equal(t, int64(5), dash.AvailableProperties)
	assert.Equal(t, int64(2), dash.PendingBookings)
	assert.Equal(t, 60000.0, dash.Revenue)
	require.Len(t, dash.RecentBookings, 1)
	assert.Equal(t, "wanjiku", dash.RecentBookings[0].Username)
	assert.Empty(t, dash.RecentPayments)
}

func TestAdminService_DashboardError(t *testing.T) {
	ctx := context.Background()
	repo, m := newTestRepos()
	svc := NewAdminService(repo, zap.NewNop())

	m.property.On("CountAll", ctx).Return(int64(0), errors.New("connection reset"))

	_, err := svc.Dashboard(ctx)

	assert.Error(t, err)
	m.booking.AssertNotCalled(t, "CountAll", ctx)
}
