package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// We use 'json' tags matching what the upstream backend sends. Most records
// use snake_case; tributes and users use camelCase because that is what the
// tribute forms post.

// User is the admin-visible account, with the tributes it owns embedded.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	Tributes  []Tribute  `json:"tributes,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// decodeEmbedded decodes raw into v whether the upstream sent the value as a
// JSON object or as a JSON-encoded string holding that object.
func decodeEmbedded(raw []byte, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "null" {
			return nil
		}
		raw = []byte(s)
	}
	return json.Unmarshal(raw, v)
}

// jsonValue and scanJSON let JSON-shaped fields live in a single TEXT column.
func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSON(src any, v any) error {
	switch s := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(s, v)
	case string:
		return json.Unmarshal([]byte(s), v)
	default:
		return fmt.Errorf("cannot scan %T into %T", src, v)
	}
}
