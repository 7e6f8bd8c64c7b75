package payment

import (
	"bytes"
	"image/png"
	"net/url"
	"testing"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentURI(t *testing.T) {
	g := NewQRGenerator("shop@upi", "Pink Store")
	uri := g.PaymentURI(domain.Order{ID: "abc123", Total: 539})

	u, err := url.Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, "upi", u.Scheme)
	q := u.Query()
	assert.Equal(t, "shop@upi", q.Get("pa"))
	assert.Equal(t, "Pink Store", q.Get("pn"))
	assert.Equal(t, "539.00", q.Get("am"))
	assert.Equal(t, "INR", q.Get("cu"))
	assert.Equal(t, "Order abc123", q.Get("tn"))
}

func TestPNG(t *testing.T) {
	g := NewQRGenerator("shop@upi", "Pink Store")

	data, err := g.PNG(domain.Order{ID: "abc123", Total: 1798, PaymentMethod: domain.PaymentMethodQR})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestPNG_CashOnDelivery(t *testing.T) {
	g := NewQRGenerator("shop@upi", "Pink Store")

	_, err := g.PNG(domain.Order{ID: "abc123", PaymentMethod: domain.PaymentMethodCOD})
	assert.ErrorIs(t, err, ErrNotQRPayment)
}
