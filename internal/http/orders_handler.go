package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/payment"
)

// QRRenderer renders the payment QR code of an order.
type QRRenderer interface {
	PNG(order domain.Order) ([]byte, error)
}

type OrdersHandler struct {
	orders  OrderService
	qr      QRRenderer
	timeout time.Duration
}

func NewOrdersHandler(orders OrderService, qr QRRenderer, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		qr:      qr,
		timeout: timeout,
	}
}

// GET /api/v1/orders/{id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.orders.Order(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// GET /api/v1/orders/{id}/payment-qr
func (h *OrdersHandler) PaymentQR(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.orders.Order(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	png, err := h.qr.PNG(order)
	if errors.Is(err, payment.ErrNotQRPayment) {
		respondError(w, http.StatusConflict, "not_qr_payment", "order is paid cash on delivery")
		return
	}
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		slog.WarnContext(r.Context(), "failed to write payment qr", "order_id", order.ID, "error", err)
	}
}
