// Package mysql 提供肥料商品仓储的 MySQL 实现
package mysql

import (
	"context"

	"github.com/agrigrow/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type fertilizerRepository struct{ db *gorm.DB }

// NewFertilizerRepository 创建肥料商品仓储
func NewFertilizerRepository(db *gorm.DB) domain.FertilizerRepository {
	return &fertilizerRepository{db: db}
}

func (r *fertilizerRepository) Save(ctx context.Context, fertilizer *domain.Fertilizer) error {
	return r.db.WithContext(ctx).Save(fertilizer).Error
}

func (r *fertilizerRepository) GetByID(ctx context.Context, id uint) (*domain.Fertilizer, error) {
	var f domain.Fertilizer
	err := r.db.WithContext(ctx).First(&f, id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fertilizerRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Fertilizer, int, error) {
	var fertilizers []*domain.Fertilizer
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Fertilizer{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Season != "" {
		q = q.Where("season = ?", filter.Season)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("id").Offset(filter.Offset).Limit(filter.Limit).Find(&fertilizers).Error
	return fertilizers, int(total), err
}

func (r *fertilizerRepository) Search(ctx context.Context, keyword string, offset, limit int) ([]*domain.Fertilizer, int, error) {
	var fertilizers []*domain.Fertilizer
	var total int64

	pattern := "%" + keyword + "%"
	q := r.db.WithContext(ctx).Model(&domain.Fertilizer{}).
		Where("name LIKE ? OR description LIKE ? OR suitable_crops LIKE ?", pattern, pattern, pattern)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("id").Offset(offset).Limit(limit).Find(&fertilizers).Error
	return fertilizers, int(total), err
}

func (r *fertilizerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Fertilizer{}).Count(&total).Error
	return total, err
}
