package application

import (
	"context"
	"errors"
	"sync"

	"github.com/agrigrow/storefront/internal/cart/domain"
	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/agrigrow/storefront/pkg/metrics"
)

// cartStore 持有各用户购物车的内存态，并在每次变更后同步镜像到持久化端口。
// 持久化失败时降级为仅内存运行，不阻塞购物车使用。
type cartStore struct {
	mu      sync.Mutex
	carts   map[string]*domain.Cart
	repo    domain.CartRepository
	metrics *metrics.Metrics
}

func newCartStore(repo domain.CartRepository, m *metrics.Metrics) *cartStore {
	return &cartStore{
		carts:   make(map[string]*domain.Cart),
		repo:    repo,
		metrics: m,
	}
}

// get 返回用户购物车，首次访问时从持久化存储加载；
// 数据缺失或损坏时从空购物车开始
func (s *cartStore) get(ctx context.Context, userID string) *domain.Cart {
	if cart, ok := s.carts[userID]; ok {
		return cart
	}

	cart, err := s.repo.Load(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrCartNotFound):
		cart = domain.NewCart(userID)
	case errors.Is(err, domain.ErrCartCorrupted):
		logger.Warn(ctx, "persisted cart corrupted, starting empty", "user_id", userID)
		cart = domain.NewCart(userID)
	default:
		logger.Warn(ctx, "cart load failed, falling back to memory-only", "user_id", userID, "error", err)
		cart = domain.NewCart(userID)
	}

	s.carts[userID] = cart
	return cart
}

// persist 将购物车写入持久化存储；失败时记录并继续（降级）
func (s *cartStore) persist(ctx context.Context, cart *domain.Cart) {
	if err := s.repo.Save(ctx, cart); err != nil {
		logger.Warn(ctx, "cart save failed, continuing memory-only",
			"user_id", cart.UserID, "version", cart.Version, "error", err)
		if s.metrics != nil {
			s.metrics.CartPersistenceFailures.Inc()
		}
	}
}

// drop 删除持久化的购物车；失败时记录并继续
func (s *cartStore) drop(ctx context.Context, userID string) {
	if err := s.repo.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrCartNotFound) {
		logger.Warn(ctx, "cart delete failed", "user_id", userID, "error", err)
		if s.metrics != nil {
			s.metrics.CartPersistenceFailures.Inc()
		}
	}
}
