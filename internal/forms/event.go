package forms

import (
	"strings"

	"tribute-portal/internal/models"
)

type EventForm struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	Date         string `json:"date" validate:"required,isodate"`
	Time         string `json:"time" validate:"omitempty,clock"`
	Location     string `json:"location" validate:"max=300"`
	Privacy      string `json:"privacy" validate:"omitempty,oneof=public private"`
	Virtual      bool   `json:"virtual"`
	StreamURL    string `json:"stream_url" validate:"omitempty,url"`
	RSVPRequired bool   `json:"rsvp_required"`
	AllowPlusOne bool   `json:"allow_plus_one"`
	GuestLimit   int    `json:"guest_limit" validate:"gte=0"`
}

func (f *EventForm) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	f.Date = strings.TrimSpace(f.Date)
	return orNil(check(f))
}

func (f *EventForm) Event() models.Event {
	privacy := f.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}
	return models.Event{
		Title:       f.Title,
		Description: f.Description,
		Date:        f.Date,
		Time:        f.Time,
		Location:    f.Location,
		EventType: models.EventType{
			Privacy:   privacy,
			Virtual:   f.Virtual,
			StreamURL: f.StreamURL,
		},
		GuestOption: models.GuestOption{
			RSVPRequired: f.RSVPRequired,
			AllowPlusOne: f.AllowPlusOne,
			GuestLimit:   f.GuestLimit,
		},
	}
}

type ResponseForm struct {
	Message string `json:"message" validate:"required,max=5000"`
}

func (f *ResponseForm) Validate() error {
	f.Message = strings.TrimSpace(f.Message)
	return orNil(check(f))
}
