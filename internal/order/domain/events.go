package domain

import "time"

// OrderCreatedEvent 订单创建事件
type OrderCreatedEvent struct {
	OrderID     string     `json:"order_id"`
	UserID      string     `json:"user_id"`
	Items       OrderItems `json:"items"`
	TotalAmount string     `json:"total_amount"`
	ItemCount   int        `json:"item_count"`
	Timestamp   time.Time  `json:"timestamp"`
}

// OrderStatusChangedEvent 订单状态变更事件
type OrderStatusChangedEvent struct {
	OrderID   string      `json:"order_id"`
	UserID    string      `json:"user_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	Timestamp time.Time   `json:"timestamp"`
}
