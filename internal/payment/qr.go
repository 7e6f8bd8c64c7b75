// Package payment renders the QR code customers scan to pay for an order.
package payment

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
	"github.com/skip2/go-qrcode"
)

var ErrNotQRPayment = errors.New("order is not paid by QR")

const qrSize = 256

type QRGenerator struct {
	upiID string
	payee string
}

func NewQRGenerator(upiID, payee string) *QRGenerator {
	return &QRGenerator{upiID: upiID, payee: payee}
}

// PaymentURI builds the UPI deep link for the order total.
func (g *QRGenerator) PaymentURI(order domain.Order) string {
	q := url.Values{}
	q.Set("pa", g.upiID)
	q.Set("pn", g.payee)
	q.Set("am", strconv.FormatFloat(order.Total, 'f', 2, 64))
	q.Set("cu", "INR")
	q.Set("tn", "Order "+order.ID)
	return "upi://pay?" + q.Encode()
}

// PNG encodes the payment link of a QR-paid order as a PNG image.
func (g *QRGenerator) PNG(order domain.Order) ([]byte, error) {
	if order.PaymentMethod == domain.PaymentMethodCOD {
		return nil, ErrNotQRPayment
	}
	png, err := qrcode.Encode(g.PaymentURI(order), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment qr: %w", err)
	}
	return png, nil
}
