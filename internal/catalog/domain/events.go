package domain

import "time"

// FertilizerCreatedEvent 商品创建事件
type FertilizerCreatedEvent struct {
	FertilizerID uint      `json:"fertilizer_id"`
	Name         string    `json:"name"`
	Price        string    `json:"price"`
	Category     string    `json:"category"`
	Stock        int       `json:"stock"`
	Timestamp    time.Time `json:"timestamp"`
}

// FertilizerUpdatedEvent 商品更新事件
type FertilizerUpdatedEvent struct {
	FertilizerID uint      `json:"fertilizer_id"`
	Name         string    `json:"name"`
	Price        string    `json:"price"`
	Category     string    `json:"category"`
	Stock        int       `json:"stock"`
	Timestamp    time.Time `json:"timestamp"`
}

// FertilizerStockChangedEvent 库存变更事件
type FertilizerStockChangedEvent struct {
	FertilizerID uint      `json:"fertilizer_id"`
	OldStock     int       `json:"old_stock"`
	NewStock     int       `json:"new_stock"`
	Timestamp    time.Time `json:"timestamp"`
}
