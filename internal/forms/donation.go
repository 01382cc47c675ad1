package forms

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DonationForm is what a guest fills in before being sent to the payment
// page.
type DonationForm struct {
	Amount     string `json:"amount" validate:"required"`
	DonorName  string `json:"donor_name" validate:"max=120"`
	DonorEmail string `json:"email" validate:"required,email"`
	Message    string `json:"message" validate:"max=1000"`
}

// Validate checks the form and returns the parsed amount.
func (f *DonationForm) Validate() (decimal.Decimal, error) {
	f.DonorName = strings.TrimSpace(f.DonorName)
	f.DonorEmail = strings.TrimSpace(f.DonorEmail)
	errs := check(f)

	var amount decimal.Decimal
	if _, bad := errs["amount"]; !bad {
		a, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
		switch {
		case err != nil:
			errs["amount"] = "amount must be a number"
		case !a.IsPositive():
			errs["amount"] = "amount must be greater than zero"
		case a.Exponent() < -2 && !a.Equal(a.Round(2)):
			errs["amount"] = "amount cannot have more than two decimal places"
		default:
			amount = a
		}
	}
	if f.DonorName == "" {
		f.DonorName = "Anonymous"
	}
	return amount, orNil(errs)
}
