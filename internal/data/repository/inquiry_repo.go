package repository

import (
	"context"
	"fmt"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"go.uber.org/zap"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *entity.Inquiry) error
	FindAll(ctx context.Context) ([]*entity.InquiryDetail, error)
	UpdateStatus(ctx context.Context, id int64, status entity.InquiryStatus) (bool, error)
}

type inquiryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInquiryRepository(db database.PgxIface, log *zap.Logger) InquiryRepository {
	return &inquiryRepository{
		db:  db,
		log: log.With(zap.String("repository", "inquiry")),
	}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *entity.Inquiry) error {
	query := `
		INSERT INTO inquiries (property_id, user_id, message, contact_preference, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		inquiry.PropertyID,
		inquiry.UserID,
		inquiry.Message,
		inquiry.ContactPreference,
		inquiry.Status,
		inquiry.CreatedAt,
	).Scan(&inquiry.ID)

	if err != nil {
		r.log.Error("Failed to create inquiry",
			zap.Error(err),
			zap.Int64("property_id", inquiry.PropertyID),
			zap.Int64("user_id", inquiry.UserID),
		)
		return fmt.Errorf("create inquiry: %w", err)
	}

	return nil
}

func (r *inquiryRepository) FindAll(ctx context.Context) ([]*entity.InquiryDetail, error) {
	query := `
		SELECT i.id, i.property_id, i.user_id, i.message, COALESCE(i.contact_preference, ''),
		       i.status, i.created_at, p.title, u.username, u.email
		FROM inquiries i
		JOIN properties p ON p.id = i.property_id
		JOIN users u ON u.id = i.user_id
		ORDER BY i.created_at DESC, i.id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to query inquiries", zap.Error(err))
		return nil, fmt.Errorf("query inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []*entity.InquiryDetail
	for rows.Next() {
		var d entity.InquiryDetail
		err := rows.Scan(
			&d.ID,
			&d.PropertyID,
			&d.UserID,
			&d.Message,
			&d.ContactPreference,
			&d.Status,
			&d.CreatedAt,
			&d.PropertyTitle,
			&d.Username,
			&d.Email,
		)
		if err != nil {
			r.log.Error("Failed to scan inquiry row", zap.Error(err))
			return nil, fmt.Errorf("scan inquiry row: %w", err)
		}
		inquiries = append(inquiries, &d)
	}

	return inquiries, rows.Err()
}

// UpdateStatus reports false when no inquiry has the id.
func (r *inquiryRepository) UpdateStatus(ctx context.Context, id int64, status entity.InquiryStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE inquiries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.log.Error("Failed to update inquiry status", zap.Error(err), zap.Int64("inquiry_id", id))
		return false, fmt.Errorf("update inquiry %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
