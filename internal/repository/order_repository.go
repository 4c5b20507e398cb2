package repository

import (
	"context"
	"sync"

	"github.com/shri-jewellery/storefront/internal/domain"
)

// OrderRepository owns the order id to order mapping.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	MarkDelivered(ctx context.Context, id string) (order *domain.Order, changed bool, err error)
}

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

// NewMemoryOrderRepository builds an empty in-memory order store.
func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{orders: make(map[string]*domain.Order)}
}

func (r *memoryOrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.ID]; exists {
		return ErrDuplicateID
	}
	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *memoryOrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return order.Clone(), nil
}

func (r *memoryOrderRepository) MarkDelivered(_ context.Context, id string) (*domain.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, false, ErrNotFound
	}
	changed := order.Status != domain.OrderStatusDelivered
	order.Status = domain.OrderStatusDelivered
	return order.Clone(), changed, nil
}
