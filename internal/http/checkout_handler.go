package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/cart"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/checkout"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
)

// OrderService is the part of checkout.Service the handlers need.
type OrderService interface {
	PlaceOrder(ctx context.Context, store *cart.Store, info domain.CustomerInfo, method domain.PaymentMethod) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error)
	Order(ctx context.Context, id string) (domain.Order, error)
	Orders(ctx context.Context) ([]domain.Order, error)
	Stats(ctx context.Context) (checkout.Stats, error)
}

type CheckoutHandler struct {
	orders  OrderService
	carts   *cart.Registry
	timeout time.Duration
}

func NewCheckoutHandler(orders OrderService, carts *cart.Registry, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		orders:  orders,
		carts:   carts,
		timeout: timeout,
	}
}

type CheckoutRequestDTO struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Pincode       string `json:"pincode"`
	State         string `json:"state"`
	PaymentMethod string `json:"payment_method"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing "+SessionHeader+" header")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	info := domain.CustomerInfo{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Pincode: req.Pincode,
		State:   req.State,
	}

	order, err := h.orders.PlaceOrder(ctx, h.carts.Get(sessionID), info, domain.PaymentMethod(req.PaymentMethod))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}
