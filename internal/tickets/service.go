// Package tickets threads support responses: it posts them upstream, keeps
// the caller's copy of the ticket current and notifies live dashboards.
package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tribute-portal/internal/models"
	ws "tribute-portal/internal/websocket"
)

var ErrTicketClosed = errors.New("ticket is closed")

// Upstream is the part of the backend client the service needs.
type Upstream interface {
	RespondTicket(ctx context.Context, id int64, message string) (*models.Response, error)
	CloseTicket(ctx context.Context, id int64) (*models.Ticket, error)
}

type Publisher interface {
	Publish(topic, event string, payload any)
}

type Service struct {
	upstream  Upstream
	publisher Publisher
}

func NewService(upstream Upstream, publisher Publisher) *Service {
	return &Service{upstream: upstream, publisher: publisher}
}

// Respond posts message on t and appends the stored response to t, so the
// caller can render the thread without fetching it again.
func (s *Service) Respond(ctx context.Context, t *models.Ticket, message string) (*models.Response, error) {
	if t.Status == models.TicketClosed {
		return nil, fmt.Errorf("respond to ticket %d: %w", t.ID, ErrTicketClosed)
	}
	resp, err := s.upstream.RespondTicket(ctx, t.ID, message)
	if err != nil {
		return nil, fmt.Errorf("respond to ticket %d: %w", t.ID, err)
	}
	t.Responses = append(t.Responses, *resp)
	t.Status = models.TicketResponded

	s.publish(ws.Topic("ticket", t.ID), ws.EventTicketResponse, resp)
	return resp, nil
}

func (s *Service) Close(ctx context.Context, t *models.Ticket) error {
	if t.Status == models.TicketClosed {
		return nil
	}
	updated, err := s.upstream.CloseTicket(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("close ticket %d: %w", t.ID, err)
	}
	t.Status = models.TicketClosed
	if updated != nil && updated.UpdatedAt != nil {
		t.UpdatedAt = updated.UpdatedAt
	}
	s.publish(ws.Topic("ticket", t.ID), ws.EventTicketClosed, map[string]any{"ticket_id": t.ID})
	return nil
}

func (s *Service) publish(topic, event string, payload any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(topic, event, payload)
	slog.Debug("published ticket update", "topic", topic, "event", event)
}

// CountByStatus tallies tickets for the support dashboard. Every known status
// is present in the result, even at zero.
func CountByStatus(ts []models.Ticket) map[models.TicketStatus]int {
	out := map[models.TicketStatus]int{
		models.TicketOpen:      0,
		models.TicketResponded: 0,
		models.TicketClosed:    0,
	}
	for _, t := range ts {
		status := t.Status
		if !status.Valid() {
			status = models.TicketOpen
		}
		out[status]++
	}
	return out
}
