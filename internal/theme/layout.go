// Package theme holds the tribute page layout editor: section ordering, width
// hints and the built-in template presets.
package theme

import (
	"errors"
	"fmt"

	"tribute-portal/internal/models"
)

var (
	ErrIndexOutOfRange = errors.New("section index out of range")
	ErrDuplicateName   = errors.New("section already in layout")
	ErrUnknownSection  = errors.New("section not in layout")
	ErrUnknownWidth    = errors.New("unknown width")
)

var widthClasses = map[models.Width]string{
	models.WidthFull:      "col-12",
	models.WidthHalf:      "col-12 col-md-6",
	models.WidthThird:     "col-12 col-md-4",
	models.WidthTwoThirds: "col-12 col-md-8",
}

// WidthClass maps a width hint to its grid class. Unknown hints render full
// width.
func WidthClass(w models.Width) string {
	if c, ok := widthClasses[w]; ok {
		return c
	}
	return widthClasses[models.WidthFull]
}

func ValidWidth(w models.Width) bool {
	_, ok := widthClasses[w]
	return ok
}

// Move splice-moves the section at from to index to. The input is not
// modified; the other sections keep their relative order.
func Move(l models.Layout, from, to int) (models.Layout, error) {
	if from < 0 || from >= len(l) || to < 0 || to >= len(l) {
		return l, fmt.Errorf("move %d -> %d in layout of %d: %w", from, to, len(l), ErrIndexOutOfRange)
	}
	out := make(models.Layout, 0, len(l))
	out = append(out, l[:from]...)
	out = append(out, l[from+1:]...)

	moved := l[from]
	out = append(out, models.Section{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out, nil
}

// Add inserts s at index at; at == len(l) appends.
func Add(l models.Layout, s models.Section, at int) (models.Layout, error) {
	if at < 0 || at > len(l) {
		return l, fmt.Errorf("add at %d in layout of %d: %w", at, len(l), ErrIndexOutOfRange)
	}
	if l.Index(s.Name) >= 0 {
		return l, fmt.Errorf("%q: %w", s.Name, ErrDuplicateName)
	}
	if s.Width == "" {
		s.Width = models.WidthFull
	}
	if !ValidWidth(s.Width) {
		return l, fmt.Errorf("%q: %w", s.Width, ErrUnknownWidth)
	}
	out := make(models.Layout, 0, len(l)+1)
	out = append(out, l[:at]...)
	out = append(out, s)
	out = append(out, l[at:]...)
	return out, nil
}

func Remove(l models.Layout, name string) (models.Layout, error) {
	i := l.Index(name)
	if i < 0 {
		return l, fmt.Errorf("%q: %w", name, ErrUnknownSection)
	}
	out := make(models.Layout, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...), nil
}

func SetWidth(l models.Layout, name string, w models.Width) (models.Layout, error) {
	i := l.Index(name)
	if i < 0 {
		return l, fmt.Errorf("%q: %w", name, ErrUnknownSection)
	}
	if !ValidWidth(w) {
		return l, fmt.Errorf("%q: %w", w, ErrUnknownWidth)
	}
	out := append(models.Layout(nil), l...)
	out[i].Width = w
	return out, nil
}

// Validate checks that section names are non-empty and unique and that every
// width is known.
func Validate(l models.Layout) error {
	seen := make(map[string]bool, len(l))
	for i, s := range l {
		if s.Name == "" {
			return fmt.Errorf("section %d has no name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("%q: %w", s.Name, ErrDuplicateName)
		}
		seen[s.Name] = true
		if !ValidWidth(s.Width) {
			return fmt.Errorf("%q: %w", s.Width, ErrUnknownWidth)
		}
	}
	return nil
}
