package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

var schemas = map[string][]string{
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS venues (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			description TEXT,
			category TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			venue_id UUID NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
			user_id UUID NOT NULL,
			quietness DOUBLE PRECISION NOT NULL,
			comfort DOUBLE PRECISION NOT NULL,
			lighting DOUBLE PRECISION NOT NULL,
			text TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS reviews_venue_created_idx ON reviews (venue_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS bookmarks (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			venue_id UUID NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, venue_id)
		)`,
	},
	DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS venues (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(512) NOT NULL,
			latitude DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL,
			description TEXT NULL,
			category VARCHAR(128) NULL,
			created_at DATETIME(6) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id CHAR(36) PRIMARY KEY,
			venue_id CHAR(36) NOT NULL,
			user_id CHAR(36) NOT NULL,
			quietness DOUBLE NOT NULL,
			comfort DOUBLE NOT NULL,
			lighting DOUBLE NOT NULL,
			text TEXT NOT NULL,
			created_at DATETIME(6) NOT NULL,
			INDEX reviews_venue_created_idx (venue_id, created_at),
			CONSTRAINT fk_reviews_venue FOREIGN KEY (venue_id) REFERENCES venues(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS bookmarks (
			id CHAR(36) PRIMARY KEY,
			user_id CHAR(36) NOT NULL,
			venue_id CHAR(36) NOT NULL,
			created_at DATETIME(6) NOT NULL,
			UNIQUE KEY bookmarks_user_venue (user_id, venue_id),
			CONSTRAINT fk_bookmarks_venue FOREIGN KEY (venue_id) REFERENCES venues(id) ON DELETE CASCADE
		)`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS venues (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			description TEXT,
			category TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			venue_id TEXT NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			quietness REAL NOT NULL,
			comfort REAL NOT NULL,
			lighting REAL NOT NULL,
			text TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS reviews_venue_created_idx ON reviews (venue_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			venue_id TEXT NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, venue_id)
		)`,
	},
}

// Migrate creates the venues, reviews and bookmarks tables when missing.
// It never alters existing tables.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	stmts, ok := schemas[driver]
	if !ok {
		return fmt.Errorf("migrate: unsupported driver %q", driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
