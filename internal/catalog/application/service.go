// Package application 实现肥料商品目录的应用服务
package application

import (
	"context"

	"github.com/agrigrow/storefront/internal/catalog/domain"
	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// CatalogApplicationService 商品目录应用服务门面
type CatalogApplicationService struct {
	*CatalogCommandService
	*CatalogQueryService
	repo domain.FertilizerRepository
}

// NewCatalogApplicationService 创建商品目录应用服务实例
func NewCatalogApplicationService(repo domain.FertilizerRepository, publisher domain.EventPublisher) *CatalogApplicationService {
	return &CatalogApplicationService{
		CatalogCommandService: NewCatalogCommandService(repo, publisher),
		CatalogQueryService:   NewCatalogQueryService(repo),
		repo:                  repo,
	}
}

// SeedDefaults 在商品表为空时写入默认商品
func (s *CatalogApplicationService) SeedDefaults(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, cmd := range defaultFertilizers() {
		if _, err := s.CreateFertilizer(ctx, cmd); err != nil {
			return err
		}
	}
	logger.Info(ctx, "seeded default fertilizer catalog", "count", len(defaultFertilizers()))
	return nil
}

func defaultFertilizers() []CreateFertilizerCommand {
	return []CreateFertilizerCommand{
		{
			Name:          "Urea",
			Description:   "High-nitrogen fertilizer for vegetative growth",
			Price:         decimal.NewFromInt(266),
			Category:      "Chemical",
			Season:        "Kharif",
			SuitableCrops: []string{"Rice", "Wheat", "Maize"},
			Stock:         500,
		},
		{
			Name:               "DAP",
			Description:        "Di-ammonium phosphate, phosphorus-rich starter fertilizer",
			Price:              decimal.NewFromInt(1350),
			DiscountPercentage: 5,
			Category:           "Chemical",
			Season:             "Rabi",
			SuitableCrops:      []string{"Wheat", "Mustard", "Gram"},
			Stock:              300,
		},
		{
			Name:               "NPK 19-19-19",
			Description:        "Balanced water-soluble fertilizer",
			Price:              decimal.NewFromInt(120),
			DiscountPercentage: 10,
			Category:           "Chemical",
			Season:             "All",
			SuitableCrops:      []string{"Vegetables", "Fruits"},
			Stock:              800,
		},
		{
			Name:          "Vermicompost",
			Description:   "Organic compost produced by earthworms",
			Price:         decimal.NewFromInt(450),
			Category:      "Organic",
			Season:        "All",
			SuitableCrops: []string{"Vegetables", "Pulses", "Fruits"},
			Stock:         200,
		},
		{
			Name:               "Neem Cake",
			Description:        "Organic fertilizer and natural pest repellent",
			Price:              decimal.NewFromInt(380),
			DiscountPercentage: 8,
			Category:           "Organic",
			Season:             "Kharif",
			SuitableCrops:      []string{"Cotton", "Sugarcane", "Vegetables"},
			Stock:              150,
		},
	}
}
