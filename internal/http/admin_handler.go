package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/media"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/repository"
)

const (
	placeholderImage = "/placeholder.svg"
	maxImageSize     = 5 << 20 // 5MB
)

// ImageUploader stores a product image and returns its URL.
type ImageUploader interface {
	Upload(ctx context.Context, productID, filename, contentType string, r io.Reader, size int64) (string, error)
}

type AdminHandler struct {
	products repository.ProductRepository
	orders   OrderService
	images   ImageUploader
	timeout  time.Duration
}

// NewAdminHandler builds the admin handler. images may be nil, in which case image upload
// answers 503.
func NewAdminHandler(
	products repository.ProductRepository,
	orders OrderService,
	images ImageUploader,
	timeout time.Duration) *AdminHandler {
	return &AdminHandler{
		products: products,
		orders:   orders,
		images:   images,
		timeout:  timeout,
	}
}

type CreateProductRequestDTO struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Rating        *float64 `json:"rating"`
	Reviews       *int     `json:"reviews"`
	InStock       *bool    `json:"inStock"`
}

// toProduct fills the defaults the admin form starts with.
func (req CreateProductRequestDTO) toProduct() domain.Product {
	p := domain.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Category:      req.Category,
		Rating:        4.0,
		InStock:       true,
	}
	if p.Image == "" {
		p.Image = placeholderImage
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.Reviews != nil {
		p.Reviews = *req.Reviews
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}
	p.Discount = domain.Int(p.DiscountPercent())
	return p
}

type UpdateOrderStatusRequestDTO struct {
	Status string `json:"status"`
}

type ImageResponse struct {
	URL     string         `json:"url"`
	Product domain.Product `json:"product"`
}

// GET /api/v1/admin/products
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.products.Load(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

// POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Name) == "" || req.Price == nil || strings.TrimSpace(req.Category) == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "Name, price, and category are required.",
			Code:  "validation_error",
			Title: "Please fill required fields",
		})
		return
	}
	if *req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return
	}

	product, err := h.products.Create(ctx, req.toProduct())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// PUT /api/v1/admin/products/{id}
// Only the fields present in the body change. "originalPrice": null removes the
// original price, and the discount always follows the resulting prices.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")

	var patch domain.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if patch.Price != nil && *patch.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return
	}

	product, err := h.products.Update(ctx, id, patch)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DELETE /api/v1/admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.products.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/admin/products/{id}/image (multipart field "file")
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		respondError(w, http.StatusServiceUnavailable, "storage_unavailable", "image storage is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if _, err := h.products.FindByID(ctx, id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_file", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	url, err := h.images.Upload(ctx, id, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if errors.Is(err, media.ErrNotImage) {
		respondError(w, http.StatusBadRequest, "invalid_file", err.Error())
		return
	}
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	product, err := h.products.Update(ctx, id, domain.ProductPatch{Image: &url})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ImageResponse{URL: url, Product: product})
}

// GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.Orders(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// PUT /api/v1/admin/orders/{id}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateOrderStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.UpdateOrderStatus(ctx, chi.URLParam(r, "id"), domain.OrderStatus(req.Status))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	stats, err := h.orders.Stats(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
