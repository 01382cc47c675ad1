package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tribute-portal/internal/models"
)

func titles(evs []models.Event) []string {
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Title
	}
	return out
}

var sampleEvents = []models.Event{
	{Title: "yesterday", Date: "2026-10-15", Time: "23:59"},
	{Title: "today-early", Date: "2026-10-16", Time: "06:00"},
	{Title: "next-month", Date: "2026-11-20"},
	{Title: "today-late", Date: "2026-10-16", Time: "20:00"},
	{Title: "last-year", Date: "2025-10-16T10:00:00.000Z"},
	{Title: "broken", Date: "soon"},
}

func TestUpcomingIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2026, 10, 16, 21, 30, 0, 0, time.UTC)

	got, invalid := Upcoming(sampleEvents, now)
	assert.Equal(t, []string{"today-early", "today-late", "next-month"}, titles(got))
	assert.Equal(t, 1, invalid)
}

func TestUpcomingExcludesStrictlyPast(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 1, time.UTC)
	got, _ := Upcoming([]models.Event{{Title: "y", Date: "2026-10-15", Time: "23:59"}}, now)
	assert.Empty(t, got)
}

func TestPastMostRecentFirst(t *testing.T) {
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	got, invalid := Past(sampleEvents, now)
	assert.Equal(t, []string{"yesterday", "last-year"}, titles(got))
	assert.Equal(t, 1, invalid)
}

func TestDateComparedInCallerLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2026-10-16 20:00 UTC is already 2026-10-17 in loc.
	now := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC).In(loc)
	got, _ := Upcoming([]models.Event{{Title: "a", Date: "2026-10-16"}, {Title: "b", Date: "2026-10-17"}}, now)
	assert.Equal(t, []string{"b"}, titles(got))
}

func TestFilter(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	all, invalid := Filter(sampleEvents, KindAll, now)
	assert.Equal(t, []string{"today-early", "today-late", "next-month", "yesterday", "last-year"}, titles(all))
	assert.Equal(t, 1, invalid)

	past, _ := Filter(sampleEvents, KindPast, now)
	assert.Len(t, past, 2)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Upcoming")
	require.NoError(t, err)
	assert.Equal(t, KindUpcoming, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindAll, k)

	_, err = ParseKind("someday")
	assert.Error(t, err)
}
