package domain

import "github.com/shopspring/decimal"

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price × quantity of the embedded product snapshot.
func (i CartItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Product.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// ItemCount is the sum of quantities over all items.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// QuantityOf returns how many of productID the cart holds.
func (c Cart) QuantityOf(productID string) int {
	for _, item := range c.Items {
		if item.Product.ID == productID {
			return item.Quantity
		}
	}
	return 0
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal sums the line totals of items.
func Subtotal(items []CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}
