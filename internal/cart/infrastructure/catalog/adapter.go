// Package catalog 将肥料商品目录适配为购物车的取价端口
package catalog

import (
	"context"
	"errors"
	"strconv"

	"github.com/agrigrow/storefront/internal/cart/application"
	"github.com/agrigrow/storefront/internal/cart/domain"
	catalogapp "github.com/agrigrow/storefront/internal/catalog/application"
	"gorm.io/gorm"
)

type catalogAdapter struct {
	query *catalogapp.CatalogQueryService
}

// NewAdapter 创建商品目录适配器
func NewAdapter(query *catalogapp.CatalogQueryService) application.ProductCatalog {
	return &catalogAdapter{query: query}
}

func (a *catalogAdapter) Product(ctx context.Context, productID string) (*application.ProductInfo, error) {
	id, err := strconv.ParseUint(productID, 10, 64)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	fertilizer, err := a.query.GetFertilizer(ctx, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &application.ProductInfo{
		ID:              productID,
		Name:            fertilizer.Name,
		Price:           fertilizer.Price,
		DiscountPercent: fertilizer.DiscountPercentage,
		Category:        fertilizer.Category,
	}, nil
}
