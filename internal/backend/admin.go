package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"tribute-portal/internal/models"
)

func (c *Client) AdminDonations(ctx context.Context) ([]models.Donation, error) {
	var out []models.Donation
	if err := c.get(ctx, "/admin/donations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminPayments(ctx context.Context) ([]models.Payment, error) {
	var out []models.Payment
	if err := c.get(ctx, "/admin/payments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/admin/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateUserStatus(ctx context.Context, userID int64, status string) (*models.User, error) {
	var out models.User
	path := fmt.Sprintf("/admin/users/%d", userID)
	if err := c.makeRequest(ctx, http.MethodPatch, path, map[string]string{"status": status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Withdrawals(ctx context.Context) ([]models.WithdrawalRequest, error) {
	var out []models.WithdrawalRequest
	if err := c.get(ctx, "/admin/withdrawals", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Withdrawal(ctx context.Context, id int64) (*models.WithdrawalRequest, error) {
	var out models.WithdrawalRequest
	if err := c.get(ctx, fmt.Sprintf("/admin/withdrawals/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WithdrawalDecision is what the admin sends when approving or rejecting a
// withdrawal. Fee and Net are only set on approval.
type WithdrawalDecision struct {
	Status string           `json:"status"`
	Fee    *decimal.Decimal `json:"fee,omitempty"`
	Net    *decimal.Decimal `json:"net_amount,omitempty"`
	Note   string           `json:"note,omitempty"`
}

func (c *Client) DecideWithdrawal(ctx context.Context, id int64, d WithdrawalDecision) (*models.WithdrawalRequest, error) {
	var out models.WithdrawalRequest
	path := fmt.Sprintf("/admin/withdrawals/%d", id)
	if err := c.makeRequest(ctx, http.MethodPatch, path, d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
