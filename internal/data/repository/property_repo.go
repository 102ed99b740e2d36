package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PropertyFilter narrows the listed properties. Zero values are ignored.
type PropertyFilter struct {
	Location     string
	PropertyType string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	Amenities    []string
}

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	FindByID(ctx context.Context, id int64) (*entity.Property, error)
	FindAll(ctx context.Context) ([]*entity.Property, error)
	Search(ctx context.Context, filter PropertyFilter, limit int) ([]*entity.Property, error)
	CountAll(ctx context.Context) (int64, error)
	CountListedByType(ctx context.Context) (map[entity.PropertyType]int64, error)
	CountListed(ctx context.Context) (int64, error)
}

type propertyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPropertyRepository(db database.PgxIface, log *zap.Logger) PropertyRepository {
	return &propertyRepository{
		db:  db,
		log: log.With(zap.String("repository", "property")),
	}
}

const propertyColumns = `id, title, description, property_type, price, deposit,
	COALESCE(size, ''), location, latitude, longitude, COALESCE(address, ''),
	bedrooms, bathrooms, amenities, COALESCE(video_url, ''), images,
	COALESCE(virtual_tour_url, ''), COALESCE(virtual_tour_type, ''),
	is_available, is_booked, booked_until, owner_id, created_at, updated_at`

const listedCondition = `is_available = TRUE AND is_booked = FALSE`

func scanProperty(row pgx.Row) (*entity.Property, error) {
	var p entity.Property
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.PropertyType,
		&p.Price,
		&p.Deposit,
		&p.Size,
		&p.Location,
		&p.Latitude,
		&p.Longitude,
		&p.Address,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Amenities,
		&p.VideoURL,
		&p.Images,
		&p.VirtualTourURL,
		&p.VirtualTourType,
		&p.IsAvailable,
		&p.IsBooked,
		&p.BookedUntil,
		&p.OwnerID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) Create(ctx context.Context, p *entity.Property) error {
	query := `
		INSERT INTO properties (title, description, property_type, price, deposit, size, location,
		                        latitude, longitude, address, bedrooms, bathrooms, amenities, video_url,
		                        images, virtual_tour_url, virtual_tour_type, is_available, owner_id,
		                        created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, NULLIF($10, ''), $11, $12, $13,
		        NULLIF($14, ''), $15, NULLIF($16, ''), NULLIF($17, ''), $18, $19, $20, $21)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		p.Title,
		p.Description,
		p.PropertyType,
		p.Price,
		p.Deposit,
		p.Size,
		p.Location,
		p.Latitude,
		p.Longitude,
		p.Address,
		p.Bedrooms,
		p.Bathrooms,
		p.Amenities,
		p.VideoURL,
		p.Images,
		p.VirtualTourURL,
		p.VirtualTourType,
		p.IsAvailable,
		p.OwnerID,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)

	if err != nil {
		r.log.Error("Failed to create property", zap.Error(err), zap.String("title", p.Title))
		return fmt.Errorf("create property %q: %w", p.Title, err)
	}

	return nil
}

// FindByID returns nil, nil when the property does not exist.
func (r *propertyRepository) FindByID(ctx context.Context, id int64) (*entity.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find property by ID", zap.Error(err), zap.Int64("property_id", id))
		return nil, fmt.Errorf("find property %d: %w", id, err)
	}

	return p, nil
}

func (r *propertyRepository) FindAll(ctx context.Context) ([]*entity.Property, error) {
	return r.list(ctx, `SELECT `+propertyColumns+` FROM properties ORDER BY id`)
}

// Search returns listed properties matching every filter, in id order.
// limit <= 0 means no limit.
func (r *propertyRepository) Search(ctx context.Context, filter PropertyFilter, limit int) ([]*entity.Property, error) {
	query, args := buildSearchQuery(filter, limit)
	return r.list(ctx, query, args...)
}

func (r *propertyRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Property, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query properties", zap.Error(err))
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	var properties []*entity.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			r.log.Error("Failed to scan property row", zap.Error(err))
			return nil, fmt.Errorf("scan property row: %w", err)
		}
		properties = append(properties, p)
	}

	return properties, rows.Err()
}

func buildSearchQuery(filter PropertyFilter, limit int) (string, []any) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE ` + listedCondition
	args := []any{}
	idx := 1

	if location := strings.TrimSpace(filter.Location); location != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", idx)
		args = append(args, containsPattern(location))
		idx++
	}
	if filter.PropertyType != "" && filter.PropertyType != "all" {
		query += fmt.Sprintf(" AND property_type = $%d", idx)
		args = append(args, filter.PropertyType)
		idx++
	}
	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", idx)
		args = append(args, *filter.MinPrice)
		idx++
	}
	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", idx)
		args = append(args, *filter.MaxPrice)
		idx++
	}
	if filter.Bedrooms != nil {
		query += fmt.Sprintf(" AND bedrooms = $%d", idx)
		args = append(args, *filter.Bedrooms)
		idx++
	}
	for _, amenity := range filter.Amenities {
		amenity = strings.TrimSpace(amenity)
		if amenity == "" {
			continue
		}
		query += fmt.Sprintf(" AND amenities ILIKE $%d", idx)
		args = append(args, containsPattern(amenity))
		idx++
	}

	query += " ORDER BY id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", idx)
		args = append(args, limit)
	}

	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns user text into a literal substring match for ILIKE.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *propertyRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM properties`)
}

func (r *propertyRepository) CountListed(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM properties WHERE `+listedCondition)
}

func (r *propertyRepository) count(ctx context.Context, query string) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count properties", zap.Error(err))
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return count, nil
}

func (r *propertyRepository) CountListedByType(ctx context.Context) (map[entity.PropertyType]int64, error) {
	query := `
		SELECT property_type, COUNT(*)
		FROM properties
		WHERE ` + listedCondition + `
		GROUP BY property_type
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to count properties by type", zap.Error(err))
		return nil, fmt.Errorf("count properties by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.PropertyType]int64)
	for rows.Next() {
		var propertyType entity.PropertyType
		var count int64
		if err := rows.Scan(&propertyType, &count); err != nil {
			return nil, fmt.Errorf("scan property type count: %w", err)
		}
		counts[propertyType] = count
	}

	return counts, rows.Err()
}
