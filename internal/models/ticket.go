package models

import "time"

type TicketStatus string

const (
	TicketOpen      TicketStatus = "open"
	TicketResponded TicketStatus = "responded"
	TicketClosed    TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketResponded, TicketClosed:
		return true
	}
	return false
}

// Ticket is a support thread between a user and support staff.
type Ticket struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	Subject   string       `json:"subject"`
	Message   string       `json:"message"`
	Status    TicketStatus `json:"status"`
	Responses []Response   `json:"responses"`
	CreatedAt *time.Time   `json:"created_at,omitempty"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
}

type Response struct {
	ID        int64      `json:"id"`
	TicketID  int64      `json:"ticket_id"`
	Author    string     `json:"author"`
	IsStaff   bool       `json:"is_staff"`
	Message   string     `json:"message"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
