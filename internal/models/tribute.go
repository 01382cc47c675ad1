package models

import (
	"strings"
	"time"
)

const (
	TributeStatusActive  = "active"
	TributeStatusDraft   = "draft"
	TributeStatusDeleted = "deleted"
)

// Tribute is a memorial page for a deceased individual.
type Tribute struct {
	ID              int64            `json:"id"`
	UserID          int64            `json:"userId"`
	FirstName       string           `json:"firstName"`
	MiddleName      string           `json:"middleName,omitempty"`
	LastName        string           `json:"lastName"`
	BirthDate       string           `json:"birthDate"`
	DeathDate       string           `json:"deathDate"`
	Quote           string           `json:"quote,omitempty"`
	Biography       string           `json:"biography,omitempty"`
	ImageURL        string           `json:"image,omitempty"`
	ThemeID         int64            `json:"themeId,omitempty"`
	Status          string           `json:"status,omitempty"`
	DonationOptions *DonationOptions `json:"donation_options,omitempty"`
	CreatedAt       *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time       `json:"updatedAt,omitempty"`
}

func (t Tribute) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{t.FirstName, t.MiddleName, t.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Lifespan renders "birth - death" using whichever dates are known.
func (t Tribute) Lifespan() string {
	switch {
	case t.BirthDate != "" && t.DeathDate != "":
		return t.BirthDate + " - " + t.DeathDate
	case t.DeathDate != "":
		return "d. " + t.DeathDate
	case t.BirthDate != "":
		return "b. " + t.BirthDate
	}
	return ""
}

func (t Tribute) IsDeleted() bool {
	return t.Status == TributeStatusDeleted
}
