package checkout

import (
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
	"github.com/shopspring/decimal"
)

// Free delivery applies strictly above the threshold.
var (
	FreeDeliveryThreshold = decimal.NewFromInt(499)
	FlatDeliveryCharge    = decimal.NewFromInt(40)
)

func DeliveryCharge(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return FlatDeliveryCharge
}

// Summary is the price breakdown shown on the cart and checkout pages.
type Summary struct {
	ItemCount            int     `json:"item_count"`
	Subtotal             float64 `json:"subtotal"`
	DeliveryCharge       float64 `json:"delivery_charge"`
	Total                float64 `json:"total"`
	AmountToFreeDelivery float64 `json:"amount_to_free_delivery"`
}

func Summarize(c domain.Cart) Summary {
	subtotal := domain.Subtotal(c.Items)
	delivery := DeliveryCharge(subtotal)

	remaining := decimal.Zero
	if delivery.IsPositive() {
		remaining = FreeDeliveryThreshold.Sub(subtotal)
	}

	return Summary{
		ItemCount:            c.ItemCount(),
		Subtotal:             subtotal.InexactFloat64(),
		DeliveryCharge:       delivery.InexactFloat64(),
		Total:                subtotal.Add(delivery).InexactFloat64(),
		AmountToFreeDelivery: remaining.InexactFloat64(),
	}
}
