package domain

import "context"

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// 保存订单
	Save(ctx context.Context, order *Order) error
	// 按订单 ID 获取
	Get(ctx context.Context, orderID string) (*Order, error)
	// 按客户端订单 ID 获取，用于幂等提交
	GetByClientOrderID(ctx context.Context, clientOrderID string) (*Order, error)
	// 获取用户订单列表
	ListByUser(ctx context.Context, userID string, status OrderStatus, offset, limit int) ([]*Order, int64, error)
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
