package domain

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		expected int
	}{
		{"no original price", Product{Price: 899}, 0},
		{"kurta", Product{Price: 899, OriginalPrice: Float(1299)}, 31},
		{"shirt", Product{Price: 599, OriginalPrice: Float(799)}, 25},
		{"original equals price", Product{Price: 500, OriginalPrice: Float(500)}, 0},
		{"original below price", Product{Price: 500, OriginalPrice: Float(400)}, 0},
		{"zero original", Product{Price: 0, OriginalPrice: Float(0)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.product.DiscountPercent())
		})
	}
}

func TestNewID(t *testing.T) {
	at := time.UnixMilli(1760860800123)
	id := newIDAt(at)

	assert.Regexp(t, regexp.MustCompile(`^1760860800123[0-9a-f]{9}$`), id)
	assert.NotEqual(t, newIDAt(at), newIDAt(at))
}

func TestProductPatch_Apply(t *testing.T) {
	p := Product{ID: "1", Name: "Old", Price: 10, InStock: true}
	price := 12.5
	patch := ProductPatch{Price: &price, OriginalPrice: Float(20)}
	patch.Apply(&p)

	assert.Equal(t, "Old", p.Name)
	assert.Equal(t, 12.5, p.Price)
	assert.Equal(t, 20.0, *p.OriginalPrice)
	assert.True(t, p.InStock)

	price = 99
	assert.Equal(t, 12.5, p.Price)
	assert.Equal(t, 38, *p.Discount)
}

func TestProductPatch_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedClear bool
		expectedOrig  *float64
	}{
		{"absent", `{"name":"Kurta"}`, false, nil},
		{"null clears", `{"originalPrice":null}`, true, nil},
		{"null with spaces", `{"originalPrice" :  null }`, true, nil},
		{"value sets", `{"originalPrice":1299}`, false, Float(1299)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch ProductPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))
			assert.Equal(t, tt.expectedClear, patch.ClearOriginalPrice)
			assert.Equal(t, tt.expectedOrig, patch.OriginalPrice)
		})
	}

	var patch ProductPatch
	assert.Error(t, json.Unmarshal([]byte(`{"price":"cheap"}`), &patch))
}

func TestProductPatch_ApplyClearsOriginalPriceAndIgnoresClientDiscount(t *testing.T) {
	p := Product{ID: "1", Price: 899, OriginalPrice: Float(1299), Discount: Int(31)}

	var patch ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"originalPrice":null,"discount":90}`), &patch))
	patch.Apply(&p)

	assert.Nil(t, p.OriginalPrice)
	require.NotNil(t, p.Discount)
	assert.Zero(t, *p.Discount)
	assert.Equal(t, 899.0, p.Price)
}

func TestCart_ItemCountAndSubtotal(t *testing.T) {
	c := Cart{Items: []CartItem{
		{Product: Product{ID: "1", Price: 899}, Quantity: 2},
		{Product: Product{ID: "2", Price: 0.1}, Quantity: 3},
	}}
	assert.Equal(t, 5, c.ItemCount())
	assert.Equal(t, "1798.3", Subtotal(c.Items).String())
	assert.False(t, c.IsEmpty())
	assert.True(t, Cart{}.IsEmpty())
	assert.Equal(t, 3, c.QuantityOf("2"))
	assert.Zero(t, c.QuantityOf("9"))
}

func TestCustomerInfo_FullAddress(t *testing.T) {
	info := CustomerInfo{Address: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001"}
	assert.Equal(t, "12 MG Road, Bengaluru, Karnataka - 560001", info.FullAddress())
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusOngoing.IsValid())
	assert.True(t, OrderStatusComplete.IsValid())
	assert.False(t, OrderStatus("Shipped").IsValid())
	assert.False(t, OrderStatus("pending").IsValid())
}
