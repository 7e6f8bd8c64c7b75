package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/cart"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/checkout"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/events"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/payment"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/repository"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/storage"
)

// ProductRepoMock serves a fixed product list.
type ProductRepoMock struct {
	products []domain.Product
	err      error
}

func (m *ProductRepoMock) Load(context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *ProductRepoMock) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	if m.err != nil {
		return domain.Product{}, m.err
	}
	p.ID = "new"
	m.products = append(m.products, p)
	return p, nil
}

func (m *ProductRepoMock) Update(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	if m.err != nil {
		return domain.Product{}, m.err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			patch.Apply(&m.products[i])
			return m.products[i], nil
		}
	}
	return domain.Product{}, repository.ErrProductNotFound
}

func (m *ProductRepoMock) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (m *ProductRepoMock) FindByID(_ context.Context, id string) (domain.Product, error) {
	if m.err != nil {
		return domain.Product{}, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, repository.ErrProductNotFound
}

func (m *ProductRepoMock) FindByCategory(_ context.Context, category string) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return filterByCategory(m.products, category), nil
}

func (m *ProductRepoMock) Search(_ context.Context, query string) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *ProductRepoMock) Categories(context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []string
	seen := map[string]bool{}
	for _, p := range m.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

var (
	kurta    = domain.Product{ID: "1", Name: "Elegant Pink Ethnic Kurta", Price: 899, OriginalPrice: domain.Float(1299), Category: "Women's Clothing", InStock: true}
	shirt    = domain.Product{ID: "2", Name: "Casual Blue Shirt", Price: 599, Category: "Men's Clothing", InStock: true}
	sneakers = domain.Product{ID: "3", Name: "Trendy White Pink Sneakers", Price: 1299, Category: "Footwear", InStock: false}
)

func catalogue() *ProductRepoMock {
	return &ProductRepoMock{products: []domain.Product{kurta, shirt, sneakers}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func withSession(r *http.Request, sessionID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionIDKey, sessionID))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// testApp wires the real services over an in-memory snapshot store.
type testApp struct {
	router   chi.Router
	store    *storage.MemoryStore
	products *repository.ProductRepo
	carts    *cart.Registry
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store := storage.NewMemoryStore()
	log := discardLogger()
	products := repository.NewProductRepository(store, log)
	orders := repository.NewOrderRepository(store)
	carts := cart.NewRegistry(time.Hour)
	svc := checkout.NewService(products, orders, events.NopPublisher{}, log)
	timeout := 5 * time.Second

	router := NewRouter(Handlers{
		Products: NewProductHandler(products, timeout),
		Cart:     NewCartHandler(carts, products, timeout),
		Checkout: NewCheckoutHandler(svc, carts, timeout),
		Orders:   NewOrdersHandler(svc, payment.NewQRGenerator("storefront@upi", "Storefront"), timeout),
		Admin:    NewAdminHandler(products, svc, nil, timeout),
	}, timeout)

	return &testApp{router: router, store: store, products: products, carts: carts}
}

func (a *testApp) do(t *testing.T, method, path string, body any, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = jsonBody(t, body)
	}
	req := httptest.NewRequest(method, path, reader)
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}
