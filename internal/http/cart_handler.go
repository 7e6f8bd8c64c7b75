package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/cart"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/checkout"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/repository"
)

const maxQuantity = 99

var errQuantityCap = errors.New("quantity cap exceeded")

type CartHandler struct {
	carts    *cart.Registry
	products repository.ProductRepository
	timeout  time.Duration
}

func NewCartHandler(carts *cart.Registry, products repository.ProductRepository, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items     []domain.CartItem `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
}

func newCartResponse(c domain.Cart) CartResponse {
	items := c.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponse{Items: items, Total: c.Total, ItemCount: c.ItemCount()}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.peek(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(c))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 || req.Quantity > maxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.products.FindByID(ctx, req.ProductID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if !product.InStock {
		respondError(w, http.StatusConflict, "out_of_stock", product.Name+" is out of stock")
		return
	}

	actions := make([]cart.Action, req.Quantity)
	for i := range actions {
		actions[i] = cart.AddItem(product)
	}
	c, err := store.DispatchChecked(func(current domain.Cart) error {
		if current.QuantityOf(product.ID)+req.Quantity > maxQuantity {
			return errQuantityCap
		}
		return nil
	}, actions...)
	if errors.Is(err, errQuantityCap) {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "a cart can hold at most 99 of each product")
		return
	}

	respondJSON(w, http.StatusCreated, newCartResponse(c))
}

// PUT /api/v1/cart/items/{product_id}
// A quantity of zero or less removes the item.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > maxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	c := store.Dispatch(cart.UpdateQuantity(chi.URLParam(r, "product_id"), req.Quantity))
	respondJSON(w, http.StatusOK, newCartResponse(c))
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	c := store.Dispatch(cart.RemoveItem(chi.URLParam(r, "product_id")))
	respondJSON(w, http.StatusOK, newCartResponse(c))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	c := store.Dispatch(cart.ClearCart())
	respondJSON(w, http.StatusOK, newCartResponse(c))
}

// GET /api/v1/cart/summary
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	c, ok := h.peek(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, checkout.Summarize(c))
}

// peek reads the session's cart without creating one.
func (h *CartHandler) peek(w http.ResponseWriter, r *http.Request) (domain.Cart, bool) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing "+SessionHeader+" header")
		return domain.Cart{}, false
	}
	return h.carts.Peek(sessionID), true
}

func (h *CartHandler) store(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing "+SessionHeader+" header")
		return nil, false
	}
	return h.carts.Get(sessionID), true
}
