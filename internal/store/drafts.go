package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tribute-portal/internal/models"
)

// ThemeDraft is a theme being edited in the builder. ThemeID is set once the
// draft has been published upstream.
type ThemeDraft struct {
	ID          string         `db:"id" json:"id"`
	OwnerID     int64          `db:"owner_id" json:"owner_id"`
	TributeID   int64          `db:"tribute_id" json:"tribute_id,omitempty"`
	ThemeID     int64          `db:"theme_id" json:"theme_id,omitempty"`
	Name        string         `db:"name" json:"name"`
	Layout      models.Layout  `db:"layout" json:"layout"`
	Palette     models.Palette `db:"palette" json:"palette"`
	BannerStyle string         `db:"banner_style" json:"banner_style"`
	CreatedAt   int64          `db:"created_at" json:"created_at"`
	UpdatedAt   int64          `db:"updated_at" json:"updated_at"`
}

// Theme is the draft as the upstream theme it will be published as.
func (d ThemeDraft) Theme() models.Theme {
	return models.Theme{
		ID:          d.ThemeID,
		Name:        d.Name,
		Layout:      d.Layout,
		Palette:     d.Palette,
		BannerStyle: d.BannerStyle,
	}
}

func NewDraft(ownerID int64, t models.Theme) *ThemeDraft {
	return &ThemeDraft{
		OwnerID:     ownerID,
		ThemeID:     t.ID,
		Name:        t.Name,
		Layout:      append(models.Layout(nil), t.Layout...),
		Palette:     t.Palette,
		BannerStyle: t.BannerStyle,
	}
}

const draftColumns = `id, owner_id, tribute_id, theme_id, name, layout, palette, banner_style, created_at, updated_at`

func (s *Store) CreateDraft(ctx context.Context, d *ThemeDraft) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	d.CreatedAt, d.UpdatedAt = now, now

	query := s.db.Rebind(`INSERT INTO theme_drafts (` + draftColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		d.ID, d.OwnerID, d.TributeID, d.ThemeID, d.Name,
		d.Layout, d.Palette, d.BannerStyle, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert theme draft: %w", err)
	}
	return nil
}

// Draft loads a draft owned by ownerID. Someone else's draft is reported as
// not found.
func (s *Store) Draft(ctx context.Context, ownerID int64, id string) (*ThemeDraft, error) {
	var d ThemeDraft
	query := s.db.Rebind(`SELECT ` + draftColumns + ` FROM theme_drafts WHERE id = ? AND owner_id = ?`)
	err := s.db.GetContext(ctx, &d, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("theme draft %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get theme draft: %w", err)
	}
	return &d, nil
}

// Drafts lists ownerID's drafts, most recently edited first.
func (s *Store) Drafts(ctx context.Context, ownerID int64) ([]ThemeDraft, error) {
	drafts := []ThemeDraft{}
	query := s.db.Rebind(`SELECT ` + draftColumns + ` FROM theme_drafts WHERE owner_id = ? ORDER BY updated_at DESC, id`)
	if err := s.db.SelectContext(ctx, &drafts, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list theme drafts: %w", err)
	}
	return drafts, nil
}

// UpdateDraft saves name, tribute, layout, palette and banner style.
func (s *Store) UpdateDraft(ctx context.Context, d *ThemeDraft) error {
	d.UpdatedAt = time.Now().Unix()
	query := s.db.Rebind(`UPDATE theme_drafts
		SET name = ?, tribute_id = ?, layout = ?, palette = ?, banner_style = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`)
	res, err := s.db.ExecContext(ctx, query,
		d.Name, d.TributeID, d.Layout, d.Palette, d.BannerStyle, d.UpdatedAt,
		d.ID, d.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update theme draft: %w", err)
	}
	return expectOne(res, d.ID)
}

// MarkPublished records the upstream theme id a draft was saved as.
func (s *Store) MarkPublished(ctx context.Context, ownerID int64, id string, themeID int64) error {
	query := s.db.Rebind(`UPDATE theme_drafts SET theme_id = ?, updated_at = ? WHERE id = ? AND owner_id = ?`)
	res, err := s.db.ExecContext(ctx, query, themeID, time.Now().Unix(), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to mark theme draft published: %w", err)
	}
	return expectOne(res, id)
}

func (s *Store) DeleteDraft(ctx context.Context, ownerID int64, id string) error {
	query := s.db.Rebind(`DELETE FROM theme_drafts WHERE id = ? AND owner_id = ?`)
	res, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete theme draft: %w", err)
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("theme draft %s: %w", id, ErrNotFound)
	}
	return nil
}
