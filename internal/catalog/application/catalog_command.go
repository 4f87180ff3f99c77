package application

import (
	"context"
	"time"

	"github.com/agrigrow/storefront/internal/catalog/domain"
	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// CreateFertilizerCommand 创建商品命令
type CreateFertilizerCommand struct {
	Name               string
	Description        string
	Price              decimal.Decimal
	DiscountPercentage float64
	Category           string
	Season             string
	SuitableCrops      []string
	Stock              int
	ImageURL           string
}

// UpdateFertilizerCommand 更新商品命令
type UpdateFertilizerCommand struct {
	ID                 uint
	Name               string
	Description        string
	Price              decimal.Decimal
	DiscountPercentage float64
	Category           string
	Season             string
	SuitableCrops      []string
	Stock              int
	ImageURL           string
}

// CatalogCommandService 商品目录命令服务
type CatalogCommandService struct {
	repo      domain.FertilizerRepository
	publisher domain.EventPublisher
}

// NewCatalogCommandService 创建商品目录命令服务实例
func NewCatalogCommandService(
	repo domain.FertilizerRepository,
	publisher domain.EventPublisher,
) *CatalogCommandService {
	return &CatalogCommandService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateFertilizer 处理创建商品
func (s *CatalogCommandService) CreateFertilizer(ctx context.Context, cmd CreateFertilizerCommand) (uint, error) {
	fertilizer := &domain.Fertilizer{
		Name:               cmd.Name,
		Description:        cmd.Description,
		Price:              cmd.Price,
		DiscountPercentage: cmd.DiscountPercentage,
		Category:           cmd.Category,
		Season:             cmd.Season,
		SuitableCrops:      cmd.SuitableCrops,
		Stock:              cmd.Stock,
		ImageURL:           cmd.ImageURL,
	}

	if err := s.repo.Save(ctx, fertilizer); err != nil {
		return 0, err
	}

	s.publish(ctx, "fertilizer.created", cmd.Name, domain.FertilizerCreatedEvent{
		FertilizerID: fertilizer.ID,
		Name:         fertilizer.Name,
		Price:        fertilizer.Price.StringFixed(2),
		Category:     fertilizer.Category,
		Stock:        fertilizer.Stock,
		Timestamp:    time.Now(),
	})

	return fertilizer.ID, nil
}

// UpdateFertilizer 处理更新商品
func (s *CatalogCommandService) UpdateFertilizer(ctx context.Context, cmd UpdateFertilizerCommand) error {
	fertilizer, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	oldStock := fertilizer.Stock

	fertilizer.Name = cmd.Name
	fertilizer.Description = cmd.Description
	fertilizer.Price = cmd.Price
	fertilizer.DiscountPercentage = cmd.DiscountPercentage
	fertilizer.Category = cmd.Category
	fertilizer.Season = cmd.Season
	fertilizer.SuitableCrops = cmd.SuitableCrops
	fertilizer.Stock = cmd.Stock
	fertilizer.ImageURL = cmd.ImageURL

	if err := s.repo.Save(ctx, fertilizer); err != nil {
		return err
	}

	s.publish(ctx, "fertilizer.updated", cmd.Name, domain.FertilizerUpdatedEvent{
		FertilizerID: fertilizer.ID,
		Name:         fertilizer.Name,
		Price:        fertilizer.Price.StringFixed(2),
		Category:     fertilizer.Category,
		Stock:        fertilizer.Stock,
		Timestamp:    time.Now(),
	})

	if oldStock != fertilizer.Stock {
		s.publish(ctx, "fertilizer.stock.changed", fertilizer.Name, domain.FertilizerStockChangedEvent{
			FertilizerID: fertilizer.ID,
			OldStock:     oldStock,
			NewStock:     fertilizer.Stock,
			Timestamp:    time.Now(),
		})
	}

	return nil
}

func (s *CatalogCommandService) publish(ctx context.Context, topic, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "failed to publish catalog event", "topic", topic, "error", err)
	}
}
