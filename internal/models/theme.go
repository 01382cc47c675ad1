package models

import "database/sql/driver"

type Width string

const (
	WidthFull      Width = "full"
	WidthHalf      Width = "half"
	WidthThird     Width = "third"
	WidthTwoThirds Width = "two-thirds"
)

// Section is one named block of a tribute page.
type Section struct {
	Name  string `json:"name"`
	Width Width  `json:"width"`
}

// Layout is the ordered list of sections of a theme.
type Layout []Section

func (l Layout) Index(name string) int {
	for i, s := range l {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func (l Layout) Value() (driver.Value, error) {
	if l == nil {
		l = Layout{}
	}
	return jsonValue(l)
}

func (l *Layout) Scan(src any) error {
	return scanJSON(src, l)
}

type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

func (p Palette) Value() (driver.Value, error) {
	return jsonValue(p)
}

func (p *Palette) Scan(src any) error {
	return scanJSON(src, p)
}

// Theme is a named layout template plus palette applied to a tribute.
type Theme struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Layout      Layout  `json:"layout"`
	Palette     Palette `json:"palette"`
	BannerStyle string  `json:"banner_style"`
}

func (l *Layout) UnmarshalJSON(b []byte) error {
	var p []Section
	if err := decodeEmbedded(b, &p); err != nil {
		return err
	}
	*l = p
	return nil
}

func (p *Palette) UnmarshalJSON(b []byte) error {
	type plain Palette
	var v plain
	if err := decodeEmbedded(b, &v); err != nil {
		return err
	}
	*p = Palette(v)
	return nil
}
