package application

import (
	"context"

	"github.com/agrigrow/storefront/internal/cart/domain"
	"github.com/shopspring/decimal"
)

// CartQueryService 购物车查询服务
type CartQueryService struct {
	store *cartStore
}

// NewCartQueryService 创建购物车查询服务实例
func NewCartQueryService(store *cartStore) *CartQueryService {
	return &CartQueryService{store: store}
}

// GetCart 返回用户购物车的拷贝
func (s *CartQueryService) GetCart(ctx context.Context, userID string) *domain.Cart {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	cart := s.store.get(ctx, userID)
	return &domain.Cart{
		UserID:    cart.UserID,
		Items:     cart.Snapshot(),
		Version:   cart.Version,
		UpdatedAt: cart.UpdatedAt,
	}
}

// GetTotalPrice 购物车总金额，基于当前条目即时折算
func (s *CartQueryService) GetTotalPrice(ctx context.Context, userID string) decimal.Decimal {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return s.store.get(ctx, userID).Total()
}

// GetItemCount 购物车商品件数（导航栏角标）
func (s *CartQueryService) GetItemCount(ctx context.Context, userID string) int {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return s.store.get(ctx, userID).ItemCount()
}
