// Package store keeps the state the dashboards used to hold in the browser:
// theme drafts being edited and the last seen profile of each user.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *sqlx.DB
}

// Open connects with driver "pgx" (Postgres) or "sqlite".
func Open(driver, dsn string) (*Store, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if driver == "sqlite" {
		// One writer; also keeps an in-memory database on a single connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}
	return New(db), nil
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS theme_drafts (
		id TEXT PRIMARY KEY,
		owner_id BIGINT NOT NULL,
		tribute_id BIGINT NOT NULL DEFAULT 0,
		theme_id BIGINT NOT NULL DEFAULT 0,
		name TEXT NOT NULL,
		layout TEXT NOT NULL,
		palette TEXT NOT NULL,
		banner_style TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_theme_drafts_owner ON theme_drafts (owner_id, updated_at)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id BIGINT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
}

// Migrate creates the schema. Statements are idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range migrations {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}
	return nil
}
