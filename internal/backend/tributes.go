package backend

import (
	"context"
	"fmt"
	"net/http"

	"tribute-portal/internal/models"
)

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/user/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TributeDetails(ctx context.Context, id int64) (*models.Tribute, error) {
	var out models.Tribute
	if err := c.get(ctx, fmt.Sprintf("/tribute/details/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTribute(ctx context.Context, t models.Tribute) (*models.Tribute, error) {
	var out models.Tribute
	if err := c.makeRequest(ctx, http.MethodPost, "/tributes", t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTribute(ctx context.Context, t models.Tribute) (*models.Tribute, error) {
	var out models.Tribute
	if err := c.makeRequest(ctx, http.MethodPut, fmt.Sprintf("/tributes/%d", t.ID), t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTribute removes the tribute upstream. Soft deletion goes through
// UpdateTribute with status "deleted" instead.
func (c *Client) DeleteTribute(ctx context.Context, id int64) error {
	return c.makeRequest(ctx, http.MethodDelete, fmt.Sprintf("/tributes/%d", id), nil, nil)
}

func (c *Client) TributeEvents(ctx context.Context, tributeID int64) ([]models.Event, error) {
	var out []models.Event
	if err := c.get(ctx, fmt.Sprintf("/tributes/events/%d", tributeID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEvent(ctx context.Context, tributeID int64, e models.Event) (*models.Event, error) {
	var out models.Event
	e.TributeID = tributeID
	if err := c.makeRequest(ctx, http.MethodPost, fmt.Sprintf("/tributes/events/%d", tributeID), e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TributeDonations(ctx context.Context, tributeID int64) ([]models.Donation, error) {
	var out []models.Donation
	if err := c.get(ctx, fmt.Sprintf("/tributes/%d/donations", tributeID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GuestPaymentRequest initialises a donation from a visitor without an
// account. The upstream talks to the payment gateway.
type GuestPaymentRequest struct {
	TributeID   int64  `json:"tribute_id"`
	Amount      string `json:"amount"`
	DonorName   string `json:"donor_name"`
	DonorEmail  string `json:"email"`
	Message     string `json:"message,omitempty"`
	CallbackURL string `json:"callback_url,omitempty"`
}

func (c *Client) InitializeGuestPayment(ctx context.Context, req GuestPaymentRequest) (*models.GuestPayment, error) {
	var out models.GuestPayment
	if err := c.makeRequest(ctx, http.MethodPost, "/initialize-guest-payment", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
