package domain

import "time"

// CartCreatedEvent 购物车创建事件
type CartCreatedEvent struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemAddedEvent 购物车添加商品事件
type CartItemAddedEvent struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemRemovedEvent 购物车移除商品事件
type CartItemRemovedEvent struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// CartQuantityChangedEvent 购物车条目数量变更事件
type CartQuantityChangedEvent struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// CartClearedEvent 购物车清空事件
type CartClearedEvent struct {
	UserID    string    `json:"user_id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
