package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Donation is a gift made to a tribute by a (possibly guest) donor.
type Donation struct {
	ID         int64           `json:"id"`
	TributeID  int64           `json:"tribute_id"`
	DonorName  string          `json:"donor_name"`
	DonorEmail string          `json:"donor_email,omitempty"`
	Message    string          `json:"message,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Reference  string          `json:"reference,omitempty"`
	CreatedAt  *time.Time      `json:"created_at,omitempty"`
}

// Payment is money paid out of the platform to a tribute owner.
type Payment struct {
	ID        int64           `json:"id"`
	TributeID int64           `json:"tribute_id"`
	UserID    int64           `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
	Status    string          `json:"status"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

// DonationOptions are the per-tribute donation settings.
type DonationOptions struct {
	Enabled          bool              `json:"enabled"`
	Currency         string            `json:"currency,omitempty"`
	Goal             decimal.Decimal   `json:"goal"`
	SuggestedAmounts []decimal.Decimal `json:"suggested_amounts,omitempty"`
}

func (o *DonationOptions) UnmarshalJSON(b []byte) error {
	type plain DonationOptions
	var p plain
	if err := decodeEmbedded(b, &p); err != nil {
		return fmt.Errorf("donation_options: %w", err)
	}
	*o = DonationOptions(p)
	return nil
}

const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// WithdrawalRequest is a user's request to redraw accumulated donations.
type WithdrawalRequest struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	TributeID int64            `json:"tribute_id"`
	Amount    decimal.Decimal  `json:"amount"`
	Status    string           `json:"status"`
	Fee       *decimal.Decimal `json:"fee,omitempty"`
	Net       *decimal.Decimal `json:"net_amount,omitempty"`
	Note      string           `json:"note,omitempty"`
	CreatedAt *time.Time       `json:"created_at,omitempty"`
}

// GuestPayment is what the upstream hands back when a guest donation is
// initialised.
type GuestPayment struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code,omitempty"`
}
