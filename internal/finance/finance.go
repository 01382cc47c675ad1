// Package finance aggregates donation and payment records for the admin
// dashboards and quotes withdrawal fees. Amounts are decimals; results are
// rounded to cents for display.
package finance

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"tribute-portal/internal/models"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrFeeOutOfRange     = errors.New("fee percent must be between 0 and 100")
)

var hundred = decimal.NewFromInt(100)

// Summary is the admin financial overview.
type Summary struct {
	TotalDonations decimal.Decimal
	TotalPayments  decimal.Decimal
	Available      decimal.Decimal
	DonationCount  int
	PaymentCount   int
	// Excluded counts records skipped because they are not settled.
	Excluded int
}

// Display is the JSON shape of a Summary, amounts fixed to two places.
type Display struct {
	TotalDonations string `json:"total_donations"`
	TotalPayments  string `json:"total_payments"`
	Available      string `json:"available"`
	DonationCount  int    `json:"donation_count"`
	PaymentCount   int    `json:"payment_count"`
	Excluded       int    `json:"excluded"`
}

func (s Summary) Display() Display {
	return Display{
		TotalDonations: s.TotalDonations.StringFixed(2),
		TotalPayments:  s.TotalPayments.StringFixed(2),
		Available:      s.Available.StringFixed(2),
		DonationCount:  s.DonationCount,
		PaymentCount:   s.PaymentCount,
		Excluded:       s.Excluded,
	}
}

// Settled reports whether a donation or payment status counts toward totals.
// Upstream records created before statuses existed carry an empty status.
func Settled(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", "success", "successful", "completed", "paid", "settled":
		return true
	}
	return false
}

// Summarize sums settled donations and payments. Available is what is left
// once payments are taken out of donations.
func Summarize(donations []models.Donation, payments []models.Payment) Summary {
	var s Summary
	for _, d := range donations {
		if !Settled(d.Status) {
			s.Excluded++
			continue
		}
		s.TotalDonations = s.TotalDonations.Add(d.Amount)
		s.DonationCount++
	}
	for _, p := range payments {
		if !Settled(p.Status) {
			s.Excluded++
			continue
		}
		s.TotalPayments = s.TotalPayments.Add(p.Amount)
		s.PaymentCount++
	}
	s.TotalDonations = s.TotalDonations.Round(2)
	s.TotalPayments = s.TotalPayments.Round(2)
	s.Available = s.TotalDonations.Sub(s.TotalPayments)
	return s
}

// TributeTotal is the settled donation total of one tribute.
type TributeTotal struct {
	TributeID int64           `json:"tribute_id"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
}

// ByTribute groups settled donations per tribute, largest total first, ties
// broken by tribute id.
func ByTribute(donations []models.Donation) []TributeTotal {
	idx := make(map[int64]int)
	var out []TributeTotal
	for _, d := range donations {
		if !Settled(d.Status) {
			continue
		}
		i, ok := idx[d.TributeID]
		if !ok {
			i = len(out)
			idx[d.TributeID] = i
			out = append(out, TributeTotal{TributeID: d.TributeID})
		}
		out[i].Total = out[i].Total.Add(d.Amount)
		out[i].Count++
	}
	for i := range out {
		out[i].Total = out[i].Total.Round(2)
	}
	sort.Slice(out, func(a, b int) bool {
		if c := out[a].Total.Cmp(out[b].Total); c != 0 {
			return c > 0
		}
		return out[a].TributeID < out[b].TributeID
	})
	return out
}

// Quote is the breakdown of a withdrawal after the platform fee.
type Quote struct {
	Amount     decimal.Decimal
	FeePercent decimal.Decimal
	Fee        decimal.Decimal
	Net        decimal.Decimal
}

type QuoteDisplay struct {
	Amount     string `json:"amount"`
	FeePercent string `json:"fee_percent"`
	Fee        string `json:"fee"`
	Net        string `json:"net_amount"`
}

func (q Quote) Display() QuoteDisplay {
	return QuoteDisplay{
		Amount:     q.Amount.StringFixed(2),
		FeePercent: q.FeePercent.String(),
		Fee:        q.Fee.StringFixed(2),
		Net:        q.Net.StringFixed(2),
	}
}

// QuoteWithdrawal computes fee = amount * feePercent / 100, rounded half away
// from zero to cents, and net = amount - fee.
func QuoteWithdrawal(amount, feePercent decimal.Decimal) (Quote, error) {
	if !amount.IsPositive() {
		return Quote{}, ErrNonPositiveAmount
	}
	if feePercent.IsNegative() || feePercent.GreaterThan(hundred) {
		return Quote{}, ErrFeeOutOfRange
	}
	fee := amount.Mul(feePercent).Div(hundred).Round(2)
	return Quote{
		Amount:     amount,
		FeePercent: feePercent,
		Fee:        fee,
		Net:        amount.Sub(fee),
	}, nil
}
