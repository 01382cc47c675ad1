package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tribute-portal/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		donations []models.Donation
		payments  []models.Payment
		want      Display
	}{
		{
			name: "donations minus payments",
			donations: []models.Donation{
				{Amount: dec("1000"), Status: "success"},
				{Amount: dec("2500"), Status: "success"},
			},
			payments: []models.Payment{{Amount: dec("500"), Status: "paid"}},
			want: Display{
				TotalDonations: "3500.00", TotalPayments: "500.00", Available: "3000.00",
				DonationCount: 2, PaymentCount: 1,
			},
		},
		{
			name: "empty input",
			want: Display{TotalDonations: "0.00", TotalPayments: "0.00", Available: "0.00"},
		},
		{
			name: "fractional amounts do not drift",
			donations: []models.Donation{
				{Amount: dec("0.10")}, {Amount: dec("0.20")}, {Amount: dec("0.30")},
			},
			want: Display{TotalDonations: "0.60", TotalPayments: "0.00", Available: "0.60", DonationCount: 3},
		},
		{
			name: "pending and failed records are excluded",
			donations: []models.Donation{
				{Amount: dec("100"), Status: "Completed"},
				{Amount: dec("900"), Status: "pending"},
			},
			payments: []models.Payment{{Amount: dec("40"), Status: "failed"}},
			want: Display{
				TotalDonations: "100.00", TotalPayments: "0.00", Available: "100.00",
				DonationCount: 1, Excluded: 2,
			},
		},
		{
			name:      "payments above donations go negative",
			donations: []models.Donation{{Amount: dec("50")}},
			payments:  []models.Payment{{Amount: dec("75.25")}},
			want: Display{
				TotalDonations: "50.00", TotalPayments: "75.25", Available: "-25.25",
				DonationCount: 1, PaymentCount: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.donations, tt.payments).Display()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestByTribute(t *testing.T) {
	donations := []models.Donation{
		{TributeID: 2, Amount: dec("10")},
		{TributeID: 1, Amount: dec("25")},
		{TributeID: 2, Amount: dec("15")},
		{TributeID: 3, Amount: dec("99"), Status: "pending"},
		{TributeID: 4, Amount: dec("5")},
	}

	got := ByTribute(donations)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].TributeID)
	assert.Equal(t, int64(2), got[1].TributeID)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, "25.00", got[1].Total.StringFixed(2))
	assert.Equal(t, int64(4), got[2].TributeID)
}

func TestQuoteWithdrawal(t *testing.T) {
	tests := []struct {
		amount, percent string
		fee, net        string
		err             error
	}{
		{amount: "1000", percent: "5", fee: "50.00", net: "950.00"},
		{amount: "333.33", percent: "2.5", fee: "8.33", net: "325.00"},
		{amount: "0.10", percent: "5", fee: "0.01", net: "0.09"},
		{amount: "250", percent: "0", fee: "0.00", net: "250.00"},
		{amount: "0", percent: "5", err: ErrNonPositiveAmount},
		{amount: "-10", percent: "5", err: ErrNonPositiveAmount},
		{amount: "10", percent: "101", err: ErrFeeOutOfRange},
		{amount: "10", percent: "-1", err: ErrFeeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.amount+"@"+tt.percent, func(t *testing.T) {
			q, err := QuoteWithdrawal(dec(tt.amount), dec(tt.percent))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			d := q.Display()
			assert.Equal(t, tt.fee, d.Fee)
			assert.Equal(t, tt.net, d.Net)
		})
	}
}
