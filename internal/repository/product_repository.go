package repository

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/storage"
	"golang.org/x/sync/singleflight"
)

// ProductRepo mirrors the products snapshot in memory.
type ProductRepo struct {
	store storage.Store
	log   *slog.Logger

	mu       sync.RWMutex
	products []domain.Product
	loaded   bool

	sfg singleflight.Group // collapses concurrent first loads
}

func NewProductRepository(store storage.Store, log *slog.Logger) *ProductRepo {
	return &ProductRepo{
		store: store,
		log:   log,
	}
}

// Load returns the catalogue in insertion order. The first call reads the
// snapshot, seeding the default products when the key is absent.
func (r *ProductRepo) Load(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	if r.loaded {
		defer r.mu.RUnlock()
		return cloneProducts(r.products), nil
	}
	r.mu.RUnlock()

	_, err, _ := r.sfg.Do(storage.ProductsKey, func() (interface{}, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.loaded {
			return nil, nil
		}

		var products []domain.Product
		found, err := storage.LoadJSON(ctx, r.store, storage.ProductsKey, &products)
		if err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}

		if !found {
			products = DefaultProducts()
			if err := storage.SaveJSON(ctx, r.store, storage.ProductsKey, products); err != nil {
				return nil, fmt.Errorf("failed to seed products: %w", err)
			}
			r.log.InfoContext(ctx, "seeded default products", "count", len(products))
		}

		r.products = products
		r.loaded = true
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneProducts(r.products), nil
}

// Create assigns a fresh id and appends the product.
func (r *ProductRepo) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	product.ID = domain.NewID()
	created := cloneProduct(product)

	err := r.mutate(ctx, func(products []domain.Product) ([]domain.Product, error) {
		return append(products, created), nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return cloneProduct(created), nil
}

// Update merges patch into the product with the given id.
// An unknown id returns ErrProductNotFound and leaves the snapshot untouched.
func (r *ProductRepo) Update(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	var updated domain.Product
	err := r.mutate(ctx, func(products []domain.Product) ([]domain.Product, error) {
		i := indexOf(products, id)
		if i < 0 {
			return nil, ErrProductNotFound
		}
		patch.Apply(&products[i])
		products[i].ID = id
		updated = cloneProduct(products[i])
		return products, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return updated, nil
}

// Delete removes the product with the given id.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.mutate(ctx, func(products []domain.Product) ([]domain.Product, error) {
		i := indexOf(products, id)
		if i < 0 {
			return nil, ErrProductNotFound
		}
		return slices.Delete(products, i, i+1), nil
	})
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (domain.Product, error) {
	products, err := r.Load(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	i := indexOf(products, id)
	if i < 0 {
		return domain.Product{}, ErrProductNotFound
	}
	return products[i], nil
}

func (r *ProductRepo) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Product, 0)
	for _, p := range products {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result, nil
}

// Search matches query case-insensitively against name, description and category.
func (r *ProductRepo) Search(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	result := make([]domain.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			result = append(result, p)
		}
	}
	return result, nil
}

// Categories lists distinct categories in first-seen order.
func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	products, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0)
	for _, p := range products {
		if !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

// mutate applies fn to a copy of the collection, writes the full result and
// only then swaps it in.
func (r *ProductRepo) mutate(ctx context.Context, fn func([]domain.Product) ([]domain.Product, error)) error {
	if _, err := r.Load(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(cloneProducts(r.products))
	if err != nil {
		return err
	}
	if err := storage.SaveJSON(ctx, r.store, storage.ProductsKey, next); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	r.products = next
	return nil
}

func indexOf(products []domain.Product, id string) int {
	return slices.IndexFunc(products, func(p domain.Product) bool { return p.ID == id })
}

func cloneProduct(p domain.Product) domain.Product {
	if p.OriginalPrice != nil {
		p.OriginalPrice = domain.Float(*p.OriginalPrice)
	}
	if p.Discount != nil {
		p.Discount = domain.Int(*p.Discount)
	}
	return p
}

func cloneProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = cloneProduct(p)
	}
	return out
}
