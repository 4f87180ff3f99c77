package domain

import "context"

// CartRepository 购物车持久化端口。实现方独占持久化存储，
// 其他组件不得绕过该端口直接写入。
type CartRepository interface {
	// Load 读取用户购物车；不存在时返回 ErrCartNotFound，
	// 数据损坏时返回 ErrCartCorrupted
	Load(ctx context.Context, userID string) (*Cart, error)
	// Save 全量写入购物车
	Save(ctx context.Context, cart *Cart) error
	// Delete 删除用户购物车
	Delete(ctx context.Context, userID string) error
}

// EventPublisher 领域事件发布端口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
