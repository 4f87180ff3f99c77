// Package domain 包含订单服务的领域模型
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrOrderNotFound 订单不存在
var ErrOrderNotFound = errors.New("order: not found")

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem 下单时刻的商品快照；之后目录价格变化不影响已下订单
type OrderItem struct {
	FertilizerID    string          `json:"fertilizer_id"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"price"`
	DiscountPercent float64         `json:"discount_percent,omitempty"`
	Quantity        int             `json:"quantity"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// OrderItems 以 JSON 形式存储的订单条目快照
type OrderItems []OrderItem

// Value 实现 driver.Valuer
func (items OrderItems) Value() (driver.Value, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner
func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return fmt.Errorf("unsupported type %T for OrderItems", value)
	}
}

// Order 订单实体
type Order struct {
	gorm.Model
	// 订单 ID
	OrderID string `gorm:"column:order_id;type:varchar(32);uniqueIndex;not null" json:"order_id"`
	// 用户 ID
	UserID string `gorm:"column:user_id;type:varchar(32);index;not null" json:"user_id"`
	// 条目快照
	Items OrderItems `gorm:"column:items;type:json;not null" json:"items"`
	// 订单总金额
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null" json:"total_amount"`
	// 订单状态
	Status OrderStatus `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	// 客户端订单 ID（用于幂等提交）
	ClientOrderID string `gorm:"column:client_order_id;type:varchar(64);uniqueIndex" json:"client_order_id"`
	// 收货地址
	ShippingAddress string `gorm:"column:shipping_address;type:varchar(512)" json:"shipping_address"`
}

func (Order) TableName() string { return "orders" }

// NewOrder 创建待确认订单
func NewOrder(orderID, userID, clientOrderID string, items OrderItems, totalAmount decimal.Decimal) *Order {
	return &Order{
		OrderID:       orderID,
		UserID:        userID,
		Items:         items,
		TotalAmount:   totalAmount,
		Status:        OrderStatusPending,
		ClientOrderID: clientOrderID,
	}
}

// ItemCount 订单商品件数
func (o *Order) ItemCount() int {
	count := 0
	for _, it := range o.Items {
		count += it.Quantity
	}
	return count
}

// CanBeCancelled 是否可以取消
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// Confirm 确认订单
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("order %s cannot be confirmed in status %s", o.OrderID, o.Status)
	}
	o.Status = OrderStatusConfirmed
	return nil
}

// Deliver 标记已送达
func (o *Order) Deliver() error {
	if o.Status != OrderStatusConfirmed {
		return fmt.Errorf("order %s cannot be delivered in status %s", o.OrderID, o.Status)
	}
	o.Status = OrderStatusDelivered
	return nil
}

// Cancel 取消订单
func (o *Order) Cancel() error {
	if !o.CanBeCancelled() {
		return fmt.Errorf("order %s cannot be cancelled in status %s", o.OrderID, o.Status)
	}
	o.Status = OrderStatusCancelled
	return nil
}
