package payments

import (
	"github.com/Timmydavid123/server/internal/domain"
)

// ShippingLineName is the product name of the shipping surcharge line.
const ShippingLineName = "Shipping"

// LineItem is one priced line sent to the gateway.
type LineItem struct {
	Name       string
	UnitAmount int64 // minor units
	Quantity   int64
}

// BuildLineItems converts cart items to minor-unit lines and appends the
// shipping line. The result always has len(items)+1 entries.
func BuildLineItems(items []domain.CartItem, policy CurrencyPolicy, multiplier int64) []LineItem {
	multiplier = NormalizeMultiplier(multiplier)

	lines := make([]LineItem, 0, len(items)+1)
	for _, item := range items {
		lines = append(lines, LineItem{
			Name:       item.Title,
			UnitAmount: ToMinorUnits(item.Price, multiplier),
			Quantity:   item.Quantity,
		})
	}
	lines = append(lines, LineItem{
		Name:       ShippingLineName,
		UnitAmount: ToMinorUnits(policy.Shipping, multiplier),
		Quantity:   1,
	})
	return lines
}
