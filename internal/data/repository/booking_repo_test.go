package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-booking/internal/data/entity"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	selectBookingForConfirm = `SELECT status, property_id, user_id, deposit_paid FROM bookings WHERE id = \$1 FOR UPDATE`
	selectBookingForUpdate  = `SELECT status, property_id, deposit_paid FROM bookings WHERE id = \$1 FOR UPDATE`
	lockPropertyPattern     = `UPDATE properties p\s+SET is_booked = TRUE`
	releasePropertyPattern  = `UPDATE properties\s+SET is_booked = FALSE`
)

func newBookingRepo(t *testing.T) (BookingRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewBookingRepository(mock, zap.NewNop()), mock
}

func depositPayment() *entity.Payment {
	ref := "pi_test_123"
	return &entity.Payment{
		Amount:          30000,
		PaymentMethod:   "stripe",
		TransactionRef:  &ref,
		Status:          entity.PaymentStatusCompleted,
		TransactionType: entity.TransactionTypeDeposit,
		BaseSimple: entity.BaseSimple{
			CreatedAt: time.Now(),
		},
	}
}

func TestBookingRepository_ConfirmDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newBookingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectBookingForConfirm).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"status", "property_id", "user_id", "deposit_paid"}).
				AddRow(entity.BookingStatusPending, int64(9), int64(3), false))
		mock.ExpectExec(lockPropertyPattern).
			WithArgs(int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE bookings\s+SET status = 'confirmed', deposit_paid = TRUE`).
			WithArgs(int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(`INSERT INTO payments`).
			WithArgs(int64(3), int64(9), int64(5), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
		mock.ExpectCommit()

		payment := depositPayment()
		applied, err := repo.ConfirmDeposit(ctx, 5, payment)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, int64(42), payment.ID)
		assert.Equal(t, int64(3), payment.UserID)
		assert.Equal(t, int64(9), payment.PropertyID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyConfirmedIsNoOp", func(t *testing.T) {
		repo, mock := newBookingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectBookingForConfirm).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"status", "property_id", "user_id", "deposit_paid"}).
				AddRow(entity.BookingStatusConfirmed, int64(9), int64(3), true))
		mock.ExpectCommit()

		applied, err := repo.ConfirmDeposit(ctx, 5, depositPayment())

		require.NoError(t, err)
		assert.False(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("PropertyTakenRollsBack", func(t *testing.T) {
		repo, mock := newBookingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectBookingForConfirm).
			WithArgs(int64(6)).
			WillReturnRows(pgxmock.NewRows([]string{"status", "property_id", "user_id", "deposit_paid"}).
				AddRow(entity.BookingStatusPending, int64(9), int64(4), false))
		mock.ExpectExec(lockPropertyPattern).
			WithArgs(int64(6)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		applied, err := repo.ConfirmDeposit(ctx, 6, depositPayment())

		assert.ErrorIs(t, err, ErrPropertyBooked)
		assert.False(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CancelledBookingRejected", func(t *testing.T) {
		repo, mock := newBookingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectBookingForConfirm).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows([]string{"status", "property_id", "user_id", "deposit_paid"}).
				AddRow(entity.BookingStatusCancelled, int64(9), int64(4), false))
		mock.ExpectRollback()

		_, err := repo.ConfirmDeposit(ctx, 7, depositPayment())

		assert.ErrorIs(t, err, ErrBookingNotPending)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		repo, mock := newBookingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectBookingForConfirm).
			WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows([]string{"status", "property_id", "user_id", "deposit_paid"}))
		mock.ExpectRollback()

		_, err := repo.ConfirmDeposit(ctx, 99, depositPayment())

		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("PaymentInsertFailureRollsBack", func(t *testing.T) {
		repo, mock := newBookingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectBookingForConfirm).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"status", "property_id", "user_id", "deposit_paid"}).
				AddRow(entity.BookingStatusPending, int64(9), int64(3), false))
		mock.ExpectExec(lockPropertyPattern).
			WithArgs(int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE bookings\s+SET status = 'confirmed'`).
			WithArgs(int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(`INSERT INTO payments`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errors.New("duplicate key value violates unique constraint"))
		mock.ExpectRollback()

		applied, err := repo.ConfirmDeposit(ctx, 5, depositPayment())

		assert.Error(t, err)
		assert.False(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("CancellingConfirmedReleasesProperty", func(t *testing.T) {
		repo, mock := newBookingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectBookingForUpdate).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"status", "property_id", "deposit_paid"}).
				AddRow(entity.BookingStatusConfirmed, int64(9), true))
		mock.ExpectExec(releasePropertyPattern).
			WithArgs(int64(9)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE bookings SET status = \$2`).
			WithArgs(int64(5), entity.BookingStatusCancelled).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		err := repo.UpdateStatus(ctx, 5, entity.BookingStatusCancelled)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("PendingToCompletedLeavesPropertyAlone", func(t *testing.T) {
		repo, mock := newBookingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectBookingForUpdate).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"status", "property_id", "deposit_paid"}).
				AddRow(entity.BookingStatusPending, int64(9), false))
		mock.ExpectExec(`UPDATE bookings SET status = \$2`).
			WithArgs(int64(5), entity.BookingStatusCompleted).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		err := repo.UpdateStatus(ctx, 5, entity.BookingStatusCompleted)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReconfirmingWhenPropertyTaken", func(t *testing.T) {
		repo, mock := newBookingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectBookingForUpdate).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"status", "property_id", "deposit_paid"}).
				AddRow(entity.BookingStatusCancelled, int64(9), true))
		mock.ExpectExec(lockPropertyPattern).
			WithArgs(int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		err := repo.UpdateStatus(ctx, 5, entity.BookingStatusConfirmed)

		assert.ErrorIs(t, err, ErrPropertyBooked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		repo, mock := newBookingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectBookingForUpdate).
			WithArgs(int64(404)).
			WillReturnRows(pgxmock.NewRows([]string{"status", "property_id", "deposit_paid"}))
		mock.ExpectRollback()

		err := repo.UpdateStatus(ctx, 404, entity.BookingStatusCancelled)

		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_ExpireStalePending(t *testing.T) {
	repo, mock := newBookingRepo(t)
	cutoff := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(`SET status = 'cancelled'`).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := repo.ExpireStalePending(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectQuery(`FROM bookings b WHERE b.id = \$1`).
		WithArgs(int64(12)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	booking, err := repo.FindByID(context.Background(), 12)

	assert.NoError(t, err)
	assert.Nil(t, booking)
	assert.NoError(t, mock.ExpectationsWereMet())
}
