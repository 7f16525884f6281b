package payments

import (
	"github.com/shopspring/decimal"

	"github.com/Timmydavid123/server/internal/domain"
)

// DefaultCurrency is charged when the requested currency is unsupported.
const DefaultCurrency = domain.CurrencyUSD

// DefaultMultiplier converts major to minor units when the client sends none.
const DefaultMultiplier int64 = 100

// shippingRates are flat per-order shipping charges in major units.
// Currencies without an entry are charged the USD rate.
var shippingRates = map[domain.Currency]decimal.Decimal{
	domain.CurrencyUSD: decimal.NewFromInt(10),
	domain.CurrencyGBP: decimal.RequireFromString("7.9"),
	domain.CurrencyNGN: decimal.NewFromInt(15000),
}

// shippingOrder fixes the lookup order of CurrencyForShipping.
var shippingOrder = []domain.Currency{domain.CurrencyUSD, domain.CurrencyGBP, domain.CurrencyNGN}

// MaxUnitAmount is the largest unit price, in minor units, sent to the gateway.
const MaxUnitAmount int64 = 99999999

// CurrencyPolicy is the outcome of resolving a requested currency.
type CurrencyPolicy struct {
	Requested        string
	Currency         domain.Currency
	Shipping         decimal.Decimal // major units
	CurrencyFallback bool            // requested currency unsupported, USD used instead
	ShippingFallback bool            // no rate for Currency, USD rate used instead
}

// ResolveCurrency maps a requested currency code to the currency actually
// charged and its shipping surcharge.
func ResolveCurrency(requested string) CurrencyPolicy {
	p := CurrencyPolicy{Requested: requested}

	c, ok := domain.ParseCurrency(requested)
	if !ok {
		c = DefaultCurrency
		p.CurrencyFallback = true
	}
	p.Currency = c

	rate, ok := shippingRates[c]
	if !ok {
		rate = shippingRates[DefaultCurrency]
		p.ShippingFallback = true
	}
	p.Shipping = rate
	return p
}

// CurrencyForShipping returns the first currency whose flat shipping rate
// equals amount at cent precision.
func CurrencyForShipping(amount decimal.Decimal) (domain.Currency, bool) {
	amount = amount.Round(2)
	for _, c := range shippingOrder {
		if shippingRates[c].Round(2).Equal(amount) {
			return c, true
		}
	}
	return "", false
}

// ExceedsMaxUnitAmount reports whether amount scaled by multiplier is above
// MaxUnitAmount.
func ExceedsMaxUnitAmount(amount decimal.Decimal, multiplier int64) bool {
	minor := amount.Mul(decimal.NewFromInt(multiplier)).Round(0)
	return minor.GreaterThan(decimal.NewFromInt(MaxUnitAmount))
}

// ToMinorUnits scales a major-unit amount and rounds half away from zero.
func ToMinorUnits(amount decimal.Decimal, multiplier int64) int64 {
	return amount.Mul(decimal.NewFromInt(multiplier)).Round(0).IntPart()
}

// NormalizeMultiplier substitutes DefaultMultiplier for non-positive values.
func NormalizeMultiplier(m int64) int64 {
	if m <= 0 {
		return DefaultMultiplier
	}
	return m
}
