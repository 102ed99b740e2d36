package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id          BIGSERIAL PRIMARY KEY,
		username    VARCHAR(80)  NOT NULL UNIQUE,
		email       VARCHAR(120) NOT NULL UNIQUE,
		password    VARCHAR(200) NOT NULL,
		phone       VARCHAR(20),
		is_admin    BOOLEAN      NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT      NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token       UUID        NOT NULL UNIQUE,
		user_agent  TEXT,
		ip_address  TEXT,
		expires_at  TIMESTAMPTZ NOT NULL,
		revoked_at  TIMESTAMPTZ,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id                 BIGSERIAL PRIMARY KEY,
		title              VARCHAR(200)     NOT NULL,
		description        TEXT             NOT NULL,
		property_type      VARCHAR(50)      NOT NULL,
		price              DOUBLE PRECISION NOT NULL,
		deposit            DOUBLE PRECISION NOT NULL,
		size               VARCHAR(50),
		location           VARCHAR(200)     NOT NULL,
		latitude           DOUBLE PRECISION,
		longitude          DOUBLE PRECISION,
		address            TEXT,
		bedrooms           INTEGER          NOT NULL DEFAULT 0,
		bathrooms          INTEGER          NOT NULL DEFAULT 0,
		amenities          TEXT             NOT NULL DEFAULT '[]',
		video_url          VARCHAR(500),
		images             TEXT             NOT NULL DEFAULT '[]',
		virtual_tour_url   VARCHAR(500),
		virtual_tour_type  VARCHAR(50),
		is_available       BOOLEAN          NOT NULL DEFAULT TRUE,
		is_booked          BOOLEAN          NOT NULL DEFAULT FALSE,
		booked_until       TIMESTAMPTZ,
		owner_id           BIGINT REFERENCES users(id),
		created_at         TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ      NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS inquiries (
		id                  BIGSERIAL PRIMARY KEY,
		property_id         BIGINT      NOT NULL REFERENCES properties(id),
		user_id             BIGINT      NOT NULL REFERENCES users(id),
		message             TEXT        NOT NULL,
		contact_preference  VARCHAR(50),
		status              VARCHAR(50) NOT NULL DEFAULT 'pending',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id                BIGSERIAL PRIMARY KEY,
		user_id           BIGINT           NOT NULL REFERENCES users(id),
		property_id       BIGINT           NOT NULL REFERENCES properties(id),
		booking_date      TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
		check_in_date     TIMESTAMPTZ,
		check_out_date    TIMESTAMPTZ,
		status            VARCHAR(50)      NOT NULL DEFAULT 'pending',
		deposit_paid      BOOLEAN          NOT NULL DEFAULT FALSE,
		total_amount      DOUBLE PRECISION NOT NULL,
		special_requests  TEXT,
		updated_at        TIMESTAMPTZ      NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id                BIGSERIAL PRIMARY KEY,
		user_id           BIGINT           NOT NULL REFERENCES users(id),
		property_id       BIGINT           NOT NULL REFERENCES properties(id),
		booking_id        BIGINT           NOT NULL REFERENCES bookings(id),
		amount            DOUBLE PRECISION NOT NULL,
		payment_method    VARCHAR(50),
		transaction_ref   VARCHAR(100),
		status            VARCHAR(50)      NOT NULL DEFAULT 'pending',
		transaction_type  VARCHAR(50)      NOT NULL,
		created_at        TIMESTAMPTZ      NOT NULL DEFAULT NOW()
	)`,
	// one completed deposit per booking
	`CREATE UNIQUE INDEX IF NOT EXISTS payments_booking_deposit_uniq
		ON payments (booking_id)
		WHERE transaction_type = 'deposit' AND status = 'completed'`,
	// one paid, confirmed booking per property
	`CREATE UNIQUE INDEX IF NOT EXISTS bookings_property_confirmed_uniq
		ON bookings (property_id)
		WHERE status = 'confirmed' AND deposit_paid`,
	`CREATE INDEX IF NOT EXISTS bookings_status_date_idx ON bookings (status, booking_date)`,
	`CREATE INDEX IF NOT EXISTS properties_listing_idx ON properties (is_available, is_booked)`,
}

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, db PgxIface) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	return nil
}

// Truncate empties every table and resets ids. Used by the seed command.
func Truncate(ctx context.Context, db PgxIface) error {
	_, err := db.Exec(ctx, `TRUNCATE payments, bookings, inquiries, properties, sessions, users RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}
