package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.BookingDetail, error)
	FindAll(ctx context.Context) ([]*entity.BookingDetail, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.BookingDetail, error)
	FindConfirmedByUserAndProperty(ctx context.Context, userID, propertyID int64) (*entity.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error)

	// State changes
	ConfirmDeposit(ctx context.Context, bookingID int64, payment *entity.Payment) (bool, error)
	UpdateStatus(ctx context.Context, bookingID int64, status entity.BookingStatus) error
	ExpireStalePending(ctx context.Context, createdBefore time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.user_id, b.property_id, b.booking_date, b.check_in_date, b.check_out_date,
	b.status, b.deposit_paid, b.total_amount, COALESCE(b.special_requests, ''), b.updated_at`

const bookingDetailQuery = `SELECT ` + bookingColumns + `, p.title, u.username
	FROM bookings b
	JOIN properties p ON p.id = b.property_id
	JOIN users u ON u.id = b.user_id`

// lockPropertyForBooking flips is_booked only while it is still false.
const lockPropertyForBooking = `
	UPDATE properties p
	SET is_booked = TRUE, booked_until = b.check_out_date, updated_at = NOW()
	FROM bookings b
	WHERE b.id = $1 AND p.id = b.property_id AND p.is_booked = FALSE
`

const releaseProperty = `
	UPDATE properties
	SET is_booked = FALSE, booked_until = NULL, updated_at = NOW()
	WHERE id = $1
`

func bookingFields(b *entity.Booking) []any {
	return []any{
		&b.ID,
		&b.UserID,
		&b.PropertyID,
		&b.BookingDate,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.Status,
		&b.DepositPaid,
		&b.TotalAmount,
		&b.SpecialRequests,
		&b.UpdatedAt,
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (user_id, property_id, booking_date, check_in_date, check_out_date,
		                      status, deposit_paid, total_amount, special_requests, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		booking.UserID,
		booking.PropertyID,
		booking.BookingDate,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.Status,
		booking.DepositPaid,
		booking.TotalAmount,
		booking.SpecialRequests,
		booking.UpdatedAt,
	).Scan(&booking.ID)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("user_id", booking.UserID),
			zap.Int64("property_id", booking.PropertyID),
		)
		return fmt.Errorf("create booking for property %d: %w", booking.PropertyID, err)
	}

	return nil
}

// FindByID returns nil, nil when the booking does not exist.
func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(bookingFields(&booking)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}

	return &booking, nil
}

// FindConfirmedByUserAndProperty returns the user's paid, confirmed booking for a property, or nil.
func (r *bookingRepository) FindConfirmedByUserAndProperty(ctx context.Context, userID, propertyID int64) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.user_id = $1 AND b.property_id = $2
		  AND b.status = 'confirmed' AND b.deposit_paid = TRUE
		ORDER BY b.booking_date DESC
		LIMIT 1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, userID, propertyID).Scan(bookingFields(&booking)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find confirmed booking",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("property_id", propertyID),
		)
		return nil, fmt.Errorf("find confirmed booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailQuery+` WHERE b.user_id = $1 ORDER BY b.booking_date DESC, b.id DESC`, userID)
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailQuery+` ORDER BY b.booking_date DESC, b.id DESC`)
}

func (r *bookingRepository) FindRecent(ctx context.Context, limit int) ([]*entity.BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailQuery+` ORDER BY b.booking_date DESC, b.id DESC LIMIT $1`, limit)
}

func (r *bookingRepository) listDetails(ctx context.Context, query string, args ...any) ([]*entity.BookingDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.BookingDetail
	for rows.Next() {
		var detail entity.BookingDetail
		fields := append(bookingFields(&detail.Booking), &detail.PropertyTitle, &detail.Username)
		if err := rows.Scan(fields...); err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &detail)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by status", zap.Error(err), zap.String("status", string(status)))
		return 0, fmt.Errorf("count %s bookings: %w", status, err)
	}
	return count, nil
}

// ConfirmDeposit marks a pending booking confirmed and paid, books its property
// and records the completed deposit payment, all in one transaction.
//
// It returns false without writing anything when the booking is already
// confirmed and paid. ErrPropertyBooked means another booking holds the property.
func (r *bookingRepository) ConfirmDeposit(ctx context.Context, bookingID int64, payment *entity.Payment) (bool, error) {
	applied := false

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var (
			status      entity.BookingStatus
			propertyID  int64
			userID      int64
			depositPaid bool
		)
		err := tx.QueryRow(ctx,
			`SELECT status, property_id, user_id, deposit_paid FROM bookings WHERE id = $1 FOR UPDATE`,
			bookingID,
		).Scan(&status, &propertyID, &userID, &depositPaid)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("lock booking %d: %w", bookingID, err)
		}

		if entity.HoldsProperty(status, depositPaid) {
			return nil
		}
		if status != entity.BookingStatusPending {
			return ErrBookingNotPending
		}

		tag, err := tx.Exec(ctx, lockPropertyForBooking, bookingID)
		if err != nil {
			return fmt.Errorf("book property %d: %w", propertyID, err)
		}
		if tag.RowsAffected() == 0 {
			return ErrPropertyBooked
		}

		_, err = tx.Exec(ctx, `
			UPDATE bookings
			SET status = 'confirmed', deposit_paid = TRUE, updated_at = NOW()
			WHERE id = $1
		`, bookingID)
		if err != nil {
			return fmt.Errorf("confirm booking %d: %w", bookingID, err)
		}

		payment.UserID = userID
		payment.PropertyID = propertyID
		payment.BookingID = bookingID
		err = tx.QueryRow(ctx, `
			INSERT INTO payments (user_id, property_id, booking_id, amount, payment_method,
			                      transaction_ref, status, transaction_type, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`,
			payment.UserID,
			payment.PropertyID,
			payment.BookingID,
			payment.Amount,
			payment.PaymentMethod,
			payment.TransactionRef,
			payment.Status,
			payment.TransactionType,
			payment.CreatedAt,
		).Scan(&payment.ID)
		if err != nil {
			return fmt.Errorf("record deposit payment for booking %d: %w", bookingID, err)
		}

		applied = true
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrPropertyBooked) && !errors.Is(err, ErrBookingNotPending) && !errors.Is(err, ErrBookingNotFound) {
			r.log.Error("Failed to confirm deposit", zap.Error(err), zap.Int64("booking_id", bookingID))
		}
		return false, err
	}

	return applied, nil
}

// UpdateStatus sets any defined status and keeps the property's booked flag in
// step: leaving confirmed+paid releases it, entering confirmed+paid books it.
func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status entity.BookingStatus) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var (
			current     entity.BookingStatus
			propertyID  int64
			depositPaid bool
		)
		err := tx.QueryRow(ctx,
			`SELECT status, property_id, deposit_paid FROM bookings WHERE id = $1 FOR UPDATE`,
			bookingID,
		).Scan(&current, &propertyID, &depositPaid)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("lock booking %d: %w", bookingID, err)
		}

		wasHolding := entity.HoldsProperty(current, depositPaid)
		willHold := entity.HoldsProperty(status, depositPaid)

		switch {
		case wasHolding && !willHold:
			if _, err := tx.Exec(ctx, releaseProperty, propertyID); err != nil {
				return fmt.Errorf("release property %d: %w", propertyID, err)
			}
		case !wasHolding && willHold:
			tag, err := tx.Exec(ctx, lockPropertyForBooking, bookingID)
			if err != nil {
				return fmt.Errorf("book property %d: %w", propertyID, err)
			}
			if tag.RowsAffected() == 0 {
				return ErrPropertyBooked
			}
		}

		_, err = tx.Exec(ctx,
			`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`,
			bookingID, status,
		)
		if err != nil {
			return fmt.Errorf("update booking %d status: %w", bookingID, err)
		}
		return nil
	})

	if err != nil && !errors.Is(err, ErrPropertyBooked) && !errors.Is(err, ErrBookingNotFound) {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
			zap.String("status", string(status)),
		)
	}
	return err
}

// ExpireStalePending cancels unpaid pending bookings made before createdBefore.
func (r *bookingRepository) ExpireStalePending(ctx context.Context, createdBefore time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', updated_at = NOW()
		WHERE status = 'pending' AND deposit_paid = FALSE AND booking_date < $1
	`

	tag, err := r.db.Exec(ctx, query, createdBefore)
	if err != nil {
		r.log.Error("Failed to expire pending bookings", zap.Error(err))
		return 0, fmt.Errorf("expire pending bookings: %w", err)
	}

	return tag.RowsAffected(), nil
}
