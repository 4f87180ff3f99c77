// Package domain 包含用户与会话的领域模型
package domain

import (
	"context"

	"gorm.io/gorm"
)

// User 用户实体
type User struct {
	gorm.Model
	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	FullName     string `gorm:"column:full_name;type:varchar(255)"`
	Phone        string `gorm:"column:phone;type:varchar(20)"`
	Village      string `gorm:"column:village;type:varchar(255)"`
	State        string `gorm:"column:state;type:varchar(100)"`
	// 耕地面积（英亩）
	TotalLand float64 `gorm:"column:total_land;type:decimal(10,2)"`
}

func (User) TableName() string { return "users" }

// NewUser 创建用户
func NewUser(email, passwordHash string) *User {
	return &User{Email: email, PasswordHash: passwordHash}
}

// UserRepository 用户仓储接口
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	Save(ctx context.Context, user *User) error
}
