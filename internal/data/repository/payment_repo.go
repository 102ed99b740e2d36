package repository

import (
	"context"
	"errors"
	"fmt"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Payments are written only by BookingRepository.ConfirmDeposit.
type PaymentRepository interface {
	FindDepositByBooking(ctx context.Context, bookingID int64) (*entity.Payment, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.PaymentDetail, error)
	FindAll(ctx context.Context) ([]*entity.PaymentDetail, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.PaymentDetail, error)
	SumCompleted(ctx context.Context) (float64, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `pm.id, pm.user_id, pm.property_id, pm.booking_id, pm.amount,
	COALESCE(pm.payment_method, ''), pm.transaction_ref, pm.status, pm.transaction_type, pm.created_at`

const paymentDetailQuery = `SELECT ` + paymentColumns + `, p.title, u.username
	FROM payments pm
	JOIN properties p ON p.id = pm.property_id
	JOIN users u ON u.id = pm.user_id`

func paymentFields(p *entity.Payment) []any {
	return []any{
		&p.ID,
		&p.UserID,
		&p.PropertyID,
		&p.BookingID,
		&p.Amount,
		&p.PaymentMethod,
		&p.TransactionRef,
		&p.Status,
		&p.TransactionType,
		&p.CreatedAt,
	}
}

// FindDepositByBooking returns the completed deposit for a booking, or nil.
func (r *paymentRepository) FindDepositByBooking(ctx context.Context, bookingID int64) (*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments pm
		WHERE pm.booking_id = $1 AND pm.transaction_type = 'deposit' AND pm.status = 'completed'
	`

	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, bookingID).Scan(paymentFields(&payment)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find deposit payment", zap.Error(err), zap.Int64("booking_id", bookingID))
		return nil, fmt.Errorf("find deposit for booking %d: %w", bookingID, err)
	}

	return &payment, nil
}

func (r *paymentRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.PaymentDetail, error) {
	return r.listDetails(ctx, paymentDetailQuery+` WHERE pm.user_id = $1 ORDER BY pm.created_at DESC, pm.id DESC`, userID)
}

func (r *paymentRepository) FindAll(ctx context.Context) ([]*entity.PaymentDetail, error) {
	return r.listDetails(ctx, paymentDetailQuery+` ORDER BY pm.created_at DESC, pm.id DESC`)
}

func (r *paymentRepository) FindRecent(ctx context.Context, limit int) ([]*entity.PaymentDetail, error) {
	return r.listDetails(ctx, paymentDetailQuery+` ORDER BY pm.created_at DESC, pm.id DESC LIMIT $1`, limit)
}

func (r *paymentRepository) listDetails(ctx context.Context, query string, args ...any) ([]*entity.PaymentDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query payments", zap.Error(err))
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.PaymentDetail
	for rows.Next() {
		var detail entity.PaymentDetail
		fields := append(paymentFields(&detail.Payment), &detail.PropertyTitle, &detail.Username)
		if err := rows.Scan(fields...); err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, &detail)
	}

	return payments, rows.Err()
}

// SumCompleted is the revenue shown on the admin dashboard.
func (r *paymentRepository) SumCompleted(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'completed'`).Scan(&total)
	if err != nil {
		r.log.Error("Failed to sum completed payments", zap.Error(err))
		return 0, fmt.Errorf("sum completed payments: %w", err)
	}
	return total, nil
}
