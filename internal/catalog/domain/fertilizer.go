// Package domain 包含肥料商品目录的领域模型
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StringList 以 JSON 形式存储的字符串列表
type StringList []string

// Value 实现 driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Fertilizer 肥料商品实体
type Fertilizer struct {
	gorm.Model
	Name        string          `gorm:"column:name;type:varchar(255);not null"`
	Description string          `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	// 折扣百分比，0 表示无折扣
	DiscountPercentage float64    `gorm:"column:discount_percentage;type:decimal(5,2);default:0"`
	Category           string     `gorm:"column:category;type:varchar(100);index"`
	Season             string     `gorm:"column:season;type:varchar(50);index"`
	SuitableCrops      StringList `gorm:"column:suitable_crops;type:json"`
	Stock              int        `gorm:"column:stock;not null;default:0"`
	ImageURL           string     `gorm:"column:image_url;type:varchar(512)"`
}

func (Fertilizer) TableName() string { return "fertilizers" }

// InStock 是否有库存
func (f *Fertilizer) InStock() bool { return f.Stock > 0 }
