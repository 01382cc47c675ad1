// Package events splits a tribute's events into upcoming and past.
package events

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tribute-portal/internal/models"
)

type Kind string

const (
	KindUpcoming Kind = "upcoming"
	KindPast     Kind = "past"
	KindAll      Kind = "all"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindAll, nil
	case KindUpcoming, KindPast, KindAll:
		return k, nil
	}
	return "", fmt.Errorf("unknown event filter %q", s)
}

// Day parses an event date in loc, keeping only the calendar day. Upstream
// dates are YYYY-MM-DD, sometimes with a trailing ISO time part.
func Day(date string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		date = date[:i]
	}
	return time.ParseInLocation(time.DateOnly, date, loc)
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

type dated struct {
	day time.Time
	ev  models.Event
}

func split(evs []models.Event, now time.Time) (upcoming, past []dated, invalid int) {
	t0 := today(now)
	for _, e := range evs {
		day, err := Day(e.Date, now.Location())
		if err != nil {
			invalid++
			continue
		}
		if day.Before(t0) {
			past = append(past, dated{day, e})
		} else {
			upcoming = append(upcoming, dated{day, e})
		}
	}
	return upcoming, past, invalid
}

func unwrap(ds []dated) []models.Event {
	out := make([]models.Event, len(ds))
	for i, d := range ds {
		out[i] = d.ev
	}
	return out
}

// Upcoming keeps events dated today or later, soonest first. Only the date
// is compared, so an event earlier today still counts. The second result is
// the number of events whose date could not be parsed.
func Upcoming(evs []models.Event, now time.Time) ([]models.Event, int) {
	up, _, invalid := split(evs, now)
	sort.SliceStable(up, func(i, j int) bool {
		if !up[i].day.Equal(up[j].day) {
			return up[i].day.Before(up[j].day)
		}
		return up[i].ev.Time < up[j].ev.Time
	})
	return unwrap(up), invalid
}

// Past keeps events dated strictly before today, most recent first.
func Past(evs []models.Event, now time.Time) ([]models.Event, int) {
	_, past, invalid := split(evs, now)
	sort.SliceStable(past, func(i, j int) bool {
		if !past[i].day.Equal(past[j].day) {
			return past[i].day.After(past[j].day)
		}
		return past[i].ev.Time > past[j].ev.Time
	})
	return unwrap(past), invalid
}

// Filter applies kind. KindAll returns upcoming events followed by past ones.
func Filter(evs []models.Event, kind Kind, now time.Time) ([]models.Event, int) {
	switch kind {
	case KindUpcoming:
		return Upcoming(evs, now)
	case KindPast:
		return Past(evs, now)
	}
	up, invalid := Upcoming(evs, now)
	past, _ := Past(evs, now)
	return append(up, past...), invalid
}
