package theme

import (
	"sort"

	"tribute-portal/internal/models"
)

const DefaultPreset = "classic"

var presets = map[string]models.Theme{
	"classic": {
		Name: "Classic",
		Layout: models.Layout{
			{Name: "banner", Width: models.WidthFull},
			{Name: "biography", Width: models.WidthTwoThirds},
			{Name: "details", Width: models.WidthThird},
			{Name: "gallery", Width: models.WidthFull},
			{Name: "events", Width: models.WidthHalf},
			{Name: "donations", Width: models.WidthHalf},
			{Name: "guestbook", Width: models.WidthFull},
		},
		Palette:     models.Palette{Primary: "#2f3e46", Secondary: "#84a98c", Background: "#f8f9fa", Text: "#212529"},
		BannerStyle: "image",
	},
	"modern": {
		Name: "Modern",
		Layout: models.Layout{
			{Name: "banner", Width: models.WidthFull},
			{Name: "biography", Width: models.WidthHalf},
			{Name: "gallery", Width: models.WidthHalf},
			{Name: "events", Width: models.WidthThird},
			{Name: "donations", Width: models.WidthThird},
			{Name: "details", Width: models.WidthThird},
			{Name: "guestbook", Width: models.WidthFull},
		},
		Palette:     models.Palette{Primary: "#111827", Secondary: "#6366f1", Background: "#ffffff", Text: "#111827"},
		BannerStyle: "gradient",
	},
	"minimal": {
		Name: "Minimal",
		Layout: models.Layout{
			{Name: "banner", Width: models.WidthFull},
			{Name: "biography", Width: models.WidthFull},
			{Name: "guestbook", Width: models.WidthFull},
		},
		Palette:     models.Palette{Primary: "#000000", Secondary: "#6c757d", Background: "#ffffff", Text: "#000000"},
		BannerStyle: "plain",
	},
	"garden": {
		Name: "Garden",
		Layout: models.Layout{
			{Name: "banner", Width: models.WidthFull},
			{Name: "details", Width: models.WidthThird},
			{Name: "biography", Width: models.WidthTwoThirds},
			{Name: "gallery", Width: models.WidthFull},
			{Name: "events", Width: models.WidthFull},
			{Name: "donations", Width: models.WidthHalf},
			{Name: "guestbook", Width: models.WidthHalf},
		},
		Palette:     models.Palette{Primary: "#386641", Secondary: "#a7c957", Background: "#f2e8cf", Text: "#283618"},
		BannerStyle: "floral",
	},
}

// Preset returns a copy of the named template; callers may edit it freely.
func Preset(name string) (models.Theme, bool) {
	p, ok := presets[name]
	if !ok {
		return models.Theme{}, false
	}
	p.Layout = append(models.Layout(nil), p.Layout...)
	return p, true
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
