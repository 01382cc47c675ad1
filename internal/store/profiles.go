package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tribute-portal/internal/models"
)

// CachedProfile is the last profile fetched from upstream for a user.
type CachedProfile struct {
	User      models.User
	UpdatedAt time.Time
}

// Fresh reports whether the cached copy is younger than ttl.
func (p CachedProfile) Fresh(ttl time.Duration, now time.Time) bool {
	return now.Sub(p.UpdatedAt) < ttl
}

type profileRow struct {
	UserID    int64  `db:"user_id"`
	Payload   string `db:"payload"`
	UpdatedAt int64  `db:"updated_at"`
}

// SaveProfile caches u under userID, the id the caller is looked up by.
func (s *Store) SaveProfile(ctx context.Context, userID int64, u models.User) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	query := s.db.Rebind(`INSERT INTO profiles (user_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, query, userID, string(payload), time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *Store) Profile(ctx context.Context, userID int64) (*CachedProfile, error) {
	var row profileRow
	query := s.db.Rebind(`SELECT user_id, payload, updated_at FROM profiles WHERE user_id = ?`)
	err := s.db.GetContext(ctx, &row, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	var u models.User
	if err := json.Unmarshal([]byte(row.Payload), &u); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &CachedProfile{User: u, UpdatedAt: time.Unix(row.UpdatedAt, 0)}, nil
}

func (s *Store) DeleteProfile(ctx context.Context, userID int64) error {
	query := s.db.Rebind(`DELETE FROM profiles WHERE user_id = ?`)
	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
