package repository

import (
	"context"
	"errors"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// ProductRepository defines the product catalogue operations.
// Every mutation rewrites the whole products snapshot.
type ProductRepository interface {
	Load(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// OrderRepository defines the order collection operations.
// Orders are appended and their status changed, never removed.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	FindByID(ctx context.Context, id string) (domain.Order, error)
	Append(ctx context.Context, order domain.Order) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error)
}
