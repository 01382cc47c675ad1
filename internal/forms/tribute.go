package forms

import (
	"fmt"
	"strings"
	"time"

	"tribute-portal/internal/models"
	"tribute-portal/internal/theme"
)

// TributeForm is the payload of the three-step tribute creation form.
type TributeForm struct {
	// Step 1: identity.
	FirstName  string `json:"firstName" validate:"required,max=100"`
	MiddleName string `json:"middleName" validate:"max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`

	// Step 2: dates and words.
	BirthDate string `json:"birthDate" validate:"required,isodate"`
	DeathDate string `json:"deathDate" validate:"required,isodate"`
	Quote     string `json:"quote" validate:"max=500"`
	Biography string `json:"biography" validate:"max=10000"`
	ImageURL  string `json:"image" validate:"omitempty,url"`

	// Step 3: theme, either an existing theme or a preset.
	ThemeID int64  `json:"themeId"`
	Preset  string `json:"preset"`
}

const TributeSteps = 3

var stepFields = map[int][]string{
	1: {"firstName", "middleName", "lastName"},
	2: {"birthDate", "deathDate", "quote", "biography", "image"},
	3: {"themeId", "preset"},
}

func (f *TributeForm) normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.MiddleName = strings.TrimSpace(f.MiddleName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.BirthDate = strings.TrimSpace(f.BirthDate)
	f.DeathDate = strings.TrimSpace(f.DeathDate)
	f.Preset = strings.ToLower(strings.TrimSpace(f.Preset))
}

func (f *TributeForm) errors() ValidationErrors {
	f.normalize()
	errs := check(f)

	_, birthBad := errs["birthDate"]
	_, deathBad := errs["deathDate"]
	if !birthBad && !deathBad {
		birth, _ := time.Parse(time.DateOnly, f.BirthDate)
		death, _ := time.Parse(time.DateOnly, f.DeathDate)
		if death.Before(birth) {
			errs["deathDate"] = "deathDate cannot be before birthDate"
		}
	}

	switch {
	case f.ThemeID == 0 && f.Preset == "":
		errs["themeId"] = "choose a theme or a preset"
	case f.Preset != "":
		if _, ok := theme.Preset(f.Preset); !ok {
			errs["preset"] = fmt.Sprintf("preset must be one of: %s", strings.Join(theme.PresetNames(), " "))
		}
	}
	return errs
}

// Validate checks every step. The returned error is a ValidationErrors.
func (f *TributeForm) Validate() error {
	return orNil(f.errors())
}

// ValidateStep checks only the fields of one step, so the form can block the
// "next" button early.
func (f *TributeForm) ValidateStep(step int) error {
	fields, ok := stepFields[step]
	if !ok {
		return fmt.Errorf("step must be between 1 and %d", TributeSteps)
	}
	all := f.errors()
	errs := ValidationErrors{}
	for _, name := range fields {
		if msg, ok := all[name]; ok {
			errs[name] = msg
		}
	}
	return orNil(errs)
}

// Tribute converts a valid form into the upstream record.
func (f *TributeForm) Tribute() models.Tribute {
	return models.Tribute{
		FirstName:  f.FirstName,
		MiddleName: f.MiddleName,
		LastName:   f.LastName,
		BirthDate:  f.BirthDate,
		DeathDate:  f.DeathDate,
		Quote:      strings.TrimSpace(f.Quote),
		Biography:  f.Biography,
		ImageURL:   f.ImageURL,
		ThemeID:    f.ThemeID,
		Status:     models.TributeStatusActive,
	}
}
