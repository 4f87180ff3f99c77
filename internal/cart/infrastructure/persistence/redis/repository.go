// Package redis 提供购物车仓储的 Redis 实现。
// 以 cart:{userID} 为键整体存储 JSON 序列化的购物车，写入即最后写入为准。
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agrigrow/storefront/internal/cart/domain"
	"github.com/agrigrow/storefront/pkg/cache"
)

// 长期未访问的购物车到期回收
const cartTTL = 30 * 24 * time.Hour

const keyPrefix = "cart:"

type cartRepository struct {
	cache *cache.RedisCache
}

// NewCartRepository 创建 Redis 购物车仓储
func NewCartRepository(c *cache.RedisCache) domain.CartRepository {
	return &cartRepository{cache: c}
}

func (r *cartRepository) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	data, err := r.cache.GetBytes(ctx, keyPrefix+userID)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", userID, err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCartCorrupted, err)
	}
	if cart.UserID == "" {
		cart.UserID = userID
	}
	return &cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	if err := r.cache.SetJSON(ctx, keyPrefix+cart.UserID, cart, cartTTL); err != nil {
		return fmt.Errorf("save cart %s: %w", cart.UserID, err)
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	if err := r.cache.Delete(ctx, keyPrefix+userID); err != nil {
		return fmt.Errorf("delete cart %s: %w", userID, err)
	}
	return nil
}
