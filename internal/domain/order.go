package domain

import "fmt"

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "Pending"
	OrderStatusOngoing  OrderStatus = "Ongoing"
	OrderStatusComplete OrderStatus = "Complete"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusOngoing, OrderStatusComplete:
		return true
	}
	return false
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

type PaymentMethod string

const (
	PaymentMethodQR  PaymentMethod = "qr"
	PaymentMethodCOD PaymentMethod = "cod"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodQR || m == PaymentMethodCOD
}

// CustomerInfo is the delivery information entered at checkout.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	State   string `json:"state"`
}

// FullAddress composes the single address line stored on an order.
func (c CustomerInfo) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s - %s", c.Address, c.City, c.State, c.Pincode)
}

type Order struct {
	ID              string        `json:"id"`
	CustomerName    string        `json:"customerName"`
	CustomerPhone   string        `json:"customerPhone"`
	CustomerAddress string        `json:"customerAddress"`
	Items           []CartItem    `json:"items"`
	Total           float64       `json:"total"`
	Status          OrderStatus   `json:"status"`
	PaymentMethod   PaymentMethod `json:"paymentMethod,omitempty"`
	CreatedAt       string        `json:"createdAt"`
}
