package theme

import "tribute-portal/internal/models"

type RenderedSection struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

// Page is a tribute with its theme applied, ready for the page template.
type Page struct {
	TributeID   int64             `json:"tribute_id"`
	Title       string            `json:"title"`
	Lifespan    string            `json:"lifespan,omitempty"`
	Quote       string            `json:"quote,omitempty"`
	ImageURL    string            `json:"image,omitempty"`
	ThemeName   string            `json:"theme"`
	BannerStyle string            `json:"banner_style"`
	Palette     models.Palette    `json:"palette"`
	Sections    []RenderedSection `json:"sections"`
}

// Apply renders t with th. A theme without sections falls back to the default
// preset's layout.
func Apply(t models.Tribute, th models.Theme) Page {
	layout := th.Layout
	if len(layout) == 0 {
		def, _ := Preset(DefaultPreset)
		layout = def.Layout
	}
	p := Page{
		TributeID:   t.ID,
		Title:       t.FullName(),
		Lifespan:    t.Lifespan(),
		Quote:       t.Quote,
		ImageURL:    t.ImageURL,
		ThemeName:   th.Name,
		BannerStyle: th.BannerStyle,
		Palette:     th.Palette,
		Sections:    make([]RenderedSection, 0, len(layout)),
	}
	for _, s := range layout {
		p.Sections = append(p.Sections, RenderedSection{Name: s.Name, Class: WidthClass(s.Width)})
	}
	return p
}
