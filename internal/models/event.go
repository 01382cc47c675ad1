package models

import "fmt"

// Event belongs to a Tribute. Date is YYYY-MM-DD, Time is HH:MM.
type Event struct {
	ID          int64       `json:"id"`
	TributeID   int64       `json:"tribute_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Date        string      `json:"date"`
	Time        string      `json:"time,omitempty"`
	Location    string      `json:"location,omitempty"`
	EventType   EventType   `json:"event_type"`
	GuestOption GuestOption `json:"guest_option"`
}

const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// EventType is sent by the upstream either as an object or as a JSON string.
type EventType struct {
	Privacy   string `json:"privacy"`
	Virtual   bool   `json:"virtual"`
	StreamURL string `json:"stream_url,omitempty"`
}

func (t *EventType) UnmarshalJSON(b []byte) error {
	type plain EventType
	var p plain
	if err := decodeEmbedded(b, &p); err != nil {
		return fmt.Errorf("event_type: %w", err)
	}
	*t = EventType(p)
	return nil
}

// GuestOption holds the RSVP settings of an event.
type GuestOption struct {
	RSVPRequired bool `json:"rsvp_required"`
	AllowPlusOne bool `json:"allow_plus_one"`
	GuestLimit   int  `json:"guest_limit"`
}

func (g *GuestOption) UnmarshalJSON(b []byte) error {
	type plain GuestOption
	var p plain
	if err := decodeEmbedded(b, &p); err != nil {
		return fmt.Errorf("guest_option: %w", err)
	}
	*g = GuestOption(p)
	return nil
}
