package domain

import "strings"

// PaymentStatus mirrors the gateway's checkout session payment_status
type PaymentStatus string

const (
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusUnpaid            PaymentStatus = "unpaid"
	PaymentStatusNoPaymentRequired PaymentStatus = "no_payment_required"
)

// IsValid checks if the payment status is one the gateway documents
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusUnpaid, PaymentStatusNoPaymentRequired:
		return true
	default:
		return false
	}
}

// Currency is an ISO 4217 code, upper case
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyNGN Currency = "NGN"
)

// ParseCurrency normalises a requested code. ok is false for codes outside
// the supported set.
func ParseCurrency(code string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	switch c {
	case CurrencyUSD, CurrencyGBP, CurrencyEUR, CurrencyCAD, CurrencyAUD, CurrencyNGN:
		return c, true
	default:
		return c, false
	}
}
