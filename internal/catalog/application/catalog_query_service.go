package application

import (
	"context"

	"github.com/agrigrow/storefront/internal/catalog/domain"
)

// CatalogQueryService 商品目录查询服务
type CatalogQueryService struct {
	repo domain.FertilizerRepository
}

// NewCatalogQueryService 创建商品目录查询服务实例
func NewCatalogQueryService(
	repo domain.FertilizerRepository,
) *CatalogQueryService {
	return &CatalogQueryService{
		repo: repo,
	}
}

// GetFertilizer 根据ID获取商品信息
func (s *CatalogQueryService) GetFertilizer(ctx context.Context, id uint) (*domain.Fertilizer, error) {
	return s.repo.GetByID(ctx, id)
}

// ListFertilizers 按类目与季节分页列出商品
func (s *CatalogQueryService) ListFertilizers(ctx context.Context, category, season string, page, size int) ([]*domain.Fertilizer, int, error) {
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, domain.ListFilter{
		Category: category,
		Season:   season,
		Offset:   offset,
		Limit:    size,
	})
}

// SearchFertilizers 按关键字搜索商品
func (s *CatalogQueryService) SearchFertilizers(ctx context.Context, keyword string, page, size int) ([]*domain.Fertilizer, int, error) {
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	return s.repo.Search(ctx, keyword, offset, size)
}
