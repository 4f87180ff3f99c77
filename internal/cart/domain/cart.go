// Package domain 包含购物车的领域模型
package domain

import (
	"errors"
	"time"

	"github.com/agrigrow/storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

var (
	// ErrCartNotFound 购物车不存在
	ErrCartNotFound = errors.New("cart: not found")
	// ErrCartCorrupted 持久化数据无法解析
	ErrCartCorrupted = errors.New("cart: persisted payload corrupted")
	// ErrItemNotFound 条目不存在
	ErrItemNotFound = errors.New("cart: item not found")
)

// CartItem 购物车条目，同一商品在购物车中唯一
type CartItem struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent float64         `json:"discount_percent"`
	Quantity        int             `json:"quantity"`
	Category        string          `json:"category"`
}

// Subtotal 条目小计（折后单价 × 数量）
func (i CartItem) Subtotal() decimal.Decimal {
	// 入车时已校验单价非负，此处不会出错
	sub, err := pricing.Subtotal(i.UnitPrice, i.DiscountPercent, i.Quantity)
	if err != nil {
		return decimal.Zero
	}
	return sub
}

// Cart 购物车聚合根。条目按加入顺序保存，Version 随每次变更单调递增，
// 持久化冲突时按最后写入为准。
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	Version   int64      `json:"version"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart 创建空购物车
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID}
}

// AddItem 添加商品；同一商品已存在时叠加数量，数量不合法时按 1 处理
func (c *Cart) AddItem(item CartItem) error {
	if item.UnitPrice.IsNegative() {
		return pricing.ErrNegativePrice
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.touch()
			return nil
		}
	}
	c.Items = append(c.Items, item)
	c.touch()
	return nil
}

// UpdateQuantity 设置条目数量；目标数量小于 1 时移除该条目
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if quantity < 1 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			c.touch()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem 移除条目；条目不存在时不做任何事
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return
		}
	}
}

// Clear 清空购物车，幂等
func (c *Cart) Clear() {
	if len(c.Items) == 0 {
		return
	}
	c.Items = nil
	c.touch()
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total 总金额：对当前条目逐行折后小计求和，不做缓存
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount 商品总件数（数量求和）
func (c *Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Snapshot 返回条目的深拷贝，供下单快照使用
func (c *Cart) Snapshot() []CartItem {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return items
}

func (c *Cart) touch() {
	c.Version++
	c.UpdatedAt = time.Now()
}
