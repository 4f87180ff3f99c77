// Package pricing 提供价格与折扣计算的纯函数
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNegativePrice 单价为负
var ErrNegativePrice = errors.New("pricing: unit price must not be negative")

var hundred = decimal.NewFromInt(100)

// Effective 计算折后单价。
// discountPercent 不大于 0 时原价返回；否则收敛到 [0, 100] 后按
// price × (1 − d/100) 计算，结果四舍五入保留两位小数。
func Effective(unitPrice decimal.Decimal, discountPercent float64) (decimal.Decimal, error) {
	if unitPrice.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	if discountPercent <= 0 {
		return unitPrice, nil
	}
	if discountPercent > 100 {
		discountPercent = 100
	}

	d := decimal.NewFromFloat(discountPercent)
	factor := hundred.Sub(d).Div(hundred)
	return unitPrice.Mul(factor).Round(2), nil
}

// Subtotal 计算单行小计：折后单价 × 数量
func Subtotal(unitPrice decimal.Decimal, discountPercent float64, quantity int) (decimal.Decimal, error) {
	effective, err := Effective(unitPrice, discountPercent)
	if err != nil {
		return decimal.Zero, err
	}
	return effective.Mul(decimal.NewFromInt(int64(quantity))), nil
}
