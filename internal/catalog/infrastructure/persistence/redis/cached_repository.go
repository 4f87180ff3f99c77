// Package redis 提供肥料商品的读穿透缓存装饰器
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agrigrow/storefront/internal/catalog/domain"
	"github.com/agrigrow/storefront/pkg/cache"
	"github.com/agrigrow/storefront/pkg/logger"
)

const (
	keyPrefix = "catalog:fertilizer:"
	cacheTTL  = 10 * time.Minute
)

type cachedRepository struct {
	inner domain.FertilizerRepository
	cache *cache.RedisCache
}

// NewCachedRepository 包装底层仓储，按 ID 读取走缓存
func NewCachedRepository(inner domain.FertilizerRepository, c *cache.RedisCache) domain.FertilizerRepository {
	return &cachedRepository{inner: inner, cache: c}
}

func (r *cachedRepository) key(id uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

func (r *cachedRepository) GetByID(ctx context.Context, id uint) (*domain.Fertilizer, error) {
	data, err := r.cache.GetBytes(ctx, r.key(id))
	if err == nil {
		var f domain.Fertilizer
		if err := json.Unmarshal(data, &f); err == nil {
			return &f, nil
		}
		// 缓存损坏时回源
		logger.Warn(ctx, "corrupt catalog cache entry, falling back to store", "fertilizer_id", id)
	} else if !errors.Is(err, cache.ErrNotFound) {
		logger.Warn(ctx, "catalog cache read failed, falling back to store", "fertilizer_id", id, "error", err)
	}

	f, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.cache.SetJSON(ctx, r.key(id), f, cacheTTL); err != nil {
		logger.Warn(ctx, "catalog cache write failed", "fertilizer_id", id, "error", err)
	}
	return f, nil
}

// Save 写底层仓储并失效缓存
func (r *cachedRepository) Save(ctx context.Context, fertilizer *domain.Fertilizer) error {
	if err := r.inner.Save(ctx, fertilizer); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, r.key(fertilizer.ID)); err != nil {
		logger.Warn(ctx, "catalog cache invalidation failed", "fertilizer_id", fertilizer.ID, "error", err)
	}
	return nil
}

func (r *cachedRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Fertilizer, int, error) {
	return r.inner.List(ctx, filter)
}

func (r *cachedRepository) Search(ctx context.Context, keyword string, offset, limit int) ([]*domain.Fertilizer, int, error) {
	return r.inner.Search(ctx, keyword, offset, limit)
}

func (r *cachedRepository) Count(ctx context.Context) (int64, error) {
	return r.inner.Count(ctx)
}
