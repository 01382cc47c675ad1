package backend

import (
	"context"
	"fmt"
	"net/http"

	"tribute-portal/internal/models"
)

func (c *Client) Tickets(ctx context.Context) ([]models.Ticket, error) {
	var out []models.Ticket
	if err := c.get(ctx, "/tickets", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Ticket(ctx context.Context, id int64) (*models.Ticket, error) {
	var out models.Ticket
	if err := c.get(ctx, fmt.Sprintf("/tickets/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RespondTicket posts a message to the thread and returns the stored response.
func (c *Client) RespondTicket(ctx context.Context, id int64, message string) (*models.Response, error) {
	var out models.Response
	path := fmt.Sprintf("/tickets/%d/respond", id)
	if err := c.makeRequest(ctx, http.MethodPost, path, map[string]string{"message": message}, &out); err != nil {
		return nil, err
	}
	if out.TicketID == 0 {
		out.TicketID = id
	}
	return &out, nil
}

func (c *Client) CloseTicket(ctx context.Context, id int64) (*models.Ticket, error) {
	var out models.Ticket
	path := fmt.Sprintf("/tickets/%d", id)
	if err := c.makeRequest(ctx, http.MethodPatch, path, map[string]string{"status": string(models.TicketClosed)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
