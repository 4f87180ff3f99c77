package domain

import "context"

// ListFilter 列表查询条件
type ListFilter struct {
	Category string
	Season   string
	Offset   int
	Limit    int
}

// FertilizerRepository 肥料商品仓储接口
type FertilizerRepository interface {
	Save(ctx context.Context, fertilizer *Fertilizer) error
	GetByID(ctx context.Context, id uint) (*Fertilizer, error)
	List(ctx context.Context, filter ListFilter) ([]*Fertilizer, int, error)
	Search(ctx context.Context, keyword string, offset, limit int) ([]*Fertilizer, int, error)
	Count(ctx context.Context) (int64, error)
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
