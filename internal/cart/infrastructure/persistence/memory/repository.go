// Package memory 提供购物车仓储的内存实现，用于测试与持久化降级场景
package memory

import (
	"context"
	"sync"

	"github.com/agrigrow/storefront/internal/cart/domain"
)

type cartRepository struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

// NewCartRepository 创建内存购物车仓储
func NewCartRepository() domain.CartRepository {
	return &cartRepository{carts: make(map[string]domain.Cart)}
}

func (r *cartRepository) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.carts[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}

	cart := stored
	cart.Items = make([]domain.CartItem, len(stored.Items))
	copy(cart.Items, stored.Items)
	return &cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *cart
	stored.Items = make([]domain.CartItem, len(cart.Items))
	copy(stored.Items, cart.Items)
	r.carts[cart.UserID] = stored
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
