package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/storage"
)

// OrderRepo reads the orders snapshot on every call; it keeps no mirror.
type OrderRepo struct {
	store storage.Store
	mu    sync.Mutex // serializes read-modify-write cycles within the process
}

func NewOrderRepository(store storage.Store) *OrderRepo {
	return &OrderRepo{store: store}
}

// List returns every order in placement order. An absent key is an empty list.
func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (domain.Order, error) {
	orders, err := r.read(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	i := slices.IndexFunc(orders, func(o domain.Order) bool { return o.ID == id })
	if i < 0 {
		return domain.Order{}, ErrOrderNotFound
	}
	return orders[i], nil
}

// Append adds order to the end of the collection.
func (r *OrderRepo) Append(ctx context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.read(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, order)
	if err := storage.SaveJSON(ctx, r.store, storage.OrdersKey, orders); err != nil {
		return fmt.Errorf("failed to save orders: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of one order. Any status may follow any other.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.read(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	i := slices.IndexFunc(orders, func(o domain.Order) bool { return o.ID == id })
	if i < 0 {
		return domain.Order{}, ErrOrderNotFound
	}
	orders[i].Status = status
	if err := storage.SaveJSON(ctx, r.store, storage.OrdersKey, orders); err != nil {
		return domain.Order{}, fmt.Errorf("failed to save orders: %w", err)
	}
	return orders[i], nil
}

func (r *OrderRepo) read(ctx context.Context) ([]domain.Order, error) {
	orders := make([]domain.Order, 0)
	if _, err := storage.LoadJSON(ctx, r.store, storage.OrdersKey, &orders); err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}
