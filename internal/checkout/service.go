package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/cart"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/events"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/repository"
	"github.com/shopspring/decimal"
)

// createdAtLayout matches JavaScript's Date.toISOString.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

// Stats backs the admin dashboard.
type Stats struct {
	Products int     `json:"products"`
	Orders   int     `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

type Service struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	publisher events.Publisher
	log       *slog.Logger
	now       func() time.Time
}

func NewService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	publisher events.Publisher,
	log *slog.Logger) *Service {
	return &Service{
		products:  products,
		orders:    orders,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// PlaceOrder turns the cart held by store into a Pending order, appends it to
// the order collection and clears the cart. The cart is locked from the read
// until the clear, so items added meanwhile stay in the cart for the next
// order. Validation failures, an empty cart or a failed append leave the cart
// untouched.
func (s *Service) PlaceOrder(
	ctx context.Context,
	store *cart.Store,
	info domain.CustomerInfo,
	method domain.PaymentMethod) (domain.Order, error) {

	if err := Validate(info); err != nil {
		return domain.Order{}, err
	}
	if method == "" {
		method = domain.PaymentMethodQR
	}
	if !method.IsValid() {
		return domain.Order{}, &ValidationError{
			Field:   "payment_method",
			Title:   "Invalid payment method",
			Message: "Choose QR payment or cash on delivery.",
		}
	}

	var order domain.Order
	err := store.Checkout(func(c domain.Cart) error {
		if c.IsEmpty() {
			return ErrEmptyCart
		}

		subtotal := domain.Subtotal(c.Items)
		total := subtotal.Add(DeliveryCharge(subtotal))

		order = domain.Order{
			ID:              domain.NewID(),
			CustomerName:    info.Name,
			CustomerPhone:   info.Phone,
			CustomerAddress: info.FullAddress(),
			Items:           c.Items,
			Total:           total.InexactFloat64(),
			Status:          domain.OrderStatusPending,
			PaymentMethod:   method,
			CreatedAt:       s.now().UTC().Format(createdAtLayout),
		}

		if err := s.orders.Append(ctx, order); err != nil {
			return fmt.Errorf("failed to place order: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.log.InfoContext(ctx, "order placed",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total,
		"payment_method", string(method))
	s.publish(ctx, events.NewEvent(events.OrderPlaced, order.ID, order.Status.String(), order.Total))

	return order, nil
}

// UpdateOrderStatus sets any of the three statuses on an order, from any status.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if !status.IsValid() {
		return domain.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.Order{}, err
	}

	s.log.InfoContext(ctx, "order status updated", "order_id", id, "status", status.String())
	s.publish(ctx, events.NewEvent(events.OrderStatusChanged, order.ID, order.Status.String(), order.Total))
	return order, nil
}

func (s *Service) Order(ctx context.Context, id string) (domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *Service) Orders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// Stats counts products and orders and sums order totals.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	products, err := s.products.Load(ctx)
	if err != nil {
		return Stats{}, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(o.Total))
	}
	return Stats{
		Products: len(products),
		Orders:   len(orders),
		Revenue:  revenue.InexactFloat64(),
	}, nil
}

// publish is best effort: the order is already stored.
func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.WarnContext(ctx, "failed to publish event", "type", string(e.Type), "order_id", e.OrderID, "error", err)
	}
}
