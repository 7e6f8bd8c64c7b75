package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/cart"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/checkout"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/repository"
)

type OrderServiceMock struct {
	order      domain.Order
	orders     []domain.Order
	stats      checkout.Stats
	err        error
	lastInfo   domain.CustomerInfo
	lastMethod domain.PaymentMethod
}

func (m *OrderServiceMock) PlaceOrder(_ context.Context, _ *cart.Store, info domain.CustomerInfo, method domain.PaymentMethod) (domain.Order, error) {
	m.lastInfo, m.lastMethod = info, method
	if m.err != nil {
		return domain.Order{}, m.err
	}
	return m.order, nil
}

func (m *OrderServiceMock) UpdateOrderStatus(_ context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if m.err != nil {
		return domain.Order{}, m.err
	}
	o := m.order
	o.ID, o.Status = id, status
	return o, nil
}

func (m *OrderServiceMock) Order(_ context.Context, id string) (domain.Order, error) {
	if m.err != nil {
		return domain.Order{}, m.err
	}
	if m.order.ID != id {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return m.order, nil
}

func (m *OrderServiceMock) Orders(context.Context) ([]domain.Order, error) {
	return m.orders, m.err
}

func (m *OrderServiceMock) Stats(context.Context) (checkout.Stats, error) {
	return m.stats, m.err
}

var validCheckout = CheckoutRequestDTO{
	Name:    "Asha Rao",
	Phone:   "9876543210",
	Address: "12 MG Road",
	City:    "Bengaluru",
	Pincode: "560001",
	State:   "Karnataka",
}

func TestPlaceOrder_Success(t *testing.T) {
	mock := &OrderServiceMock{order: domain.Order{ID: "1712345678901abcdef012", Total: 1798, Status: domain.OrderStatusPending}}
	handler := NewCheckoutHandler(mock, cart.NewRegistry(time.Hour), 5*time.Second)

	req := validCheckout
	req.PaymentMethod = "cod"
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/checkout", jsonBody(t, req))

	handler.PlaceOrder(recorder, withSession(request, "s1"))

	require.Equal(t, http.StatusCreated, recorder.Code)
	response := decodeJSON[domain.Order](t, recorder)
	assert.Equal(t, "1712345678901abcdef012", response.ID)
	assert.Equal(t, "Karnataka", mock.lastInfo.State)
	assert.Equal(t, "560001", mock.lastInfo.Pincode)
	assert.Equal(t, domain.PaymentMethodCOD, mock.lastMethod)
}

func TestPlaceOrder_Errors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedHTTP int
		expectedCode string
	}{
		{"validation", &checkout.ValidationError{Field: "phone", Title: "Invalid phone number", Message: "Please enter a valid 10-digit phone number."}, http.StatusBadRequest, "validation_error"},
		{"empty cart", checkout.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{"storage", errors.New("disk full"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCheckoutHandler(&OrderServiceMock{err: tt.err}, cart.NewRegistry(time.Hour), 5*time.Second)
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest("POST", "/checkout", jsonBody(t, validCheckout))

			handler.PlaceOrder(recorder, withSession(request, "s1"))

			assert.Equal(t, tt.expectedHTTP, recorder.Code)
			assert.Equal(t, tt.expectedCode, decodeJSON[ErrorResponse](t, recorder).Code)
		})
	}
}

func TestPlaceOrder_ValidationErrorBody(t *testing.T) {
	verr := &checkout.ValidationError{Field: "pincode", Title: "Invalid pincode", Message: "Please enter a valid 6-digit pincode."}
	handler := NewCheckoutHandler(&OrderServiceMock{err: verr}, cart.NewRegistry(time.Hour), 5*time.Second)
	recorder := httptest.NewRecorder()

	handler.PlaceOrder(recorder, withSession(httptest.NewRequest("POST", "/checkout", jsonBody(t, validCheckout)), "s1"))

	response := decodeJSON[ErrorResponse](t, recorder)
	assert.Equal(t, ErrorResponse{
		Error:   "Please enter a valid 6-digit pincode.",
		Code:    "validation_error",
		Title:   "Invalid pincode",
		Details: "pincode",
	}, response)
}

func TestPlaceOrder_BadRequest(t *testing.T) {
	handler := NewCheckoutHandler(&OrderServiceMock{}, cart.NewRegistry(time.Hour), 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.PlaceOrder(recorder, httptest.NewRequest("POST", "/checkout", jsonBody(t, validCheckout)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "missing_session", decodeJSON[ErrorResponse](t, recorder).Code)

	recorder = httptest.NewRecorder()
	handler.PlaceOrder(recorder, withSession(httptest.NewRequest("POST", "/checkout", strings.NewReader("{")), "s1"))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "invalid_request", decodeJSON[ErrorResponse](t, recorder).Code)
}
