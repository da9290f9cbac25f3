package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations declare the schema. Uniqueness of events.slug and of
// bookings(event_id, email) is enforced here, at the store, so concurrent
// writers across processes resolve to exactly one row.
var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,
	`CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		overview TEXT NOT NULL DEFAULT '',
		organizer TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL DEFAULT '',
		time TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL DEFAULT '',
		audience TEXT NOT NULL DEFAULT '',
		agenda TEXT[] NOT NULL DEFAULT '{}',
		tags TEXT[] NOT NULL DEFAULT '{}',
		image TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		event_id UUID NOT NULL REFERENCES events(id),
		slug TEXT NOT NULL,
		email TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (event_id, email)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_tags ON events USING GIN (tags)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_event_id ON bookings (event_id)`,
}

// RunMigrations applies the schema migrations in order.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}
	return nil
}
