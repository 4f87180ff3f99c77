// Package domain 通知服务的领域模型
package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// NotificationType 通知类型
type NotificationType string

const (
	NotificationTypeOrderPlaced NotificationType = "ORDER_PLACED"
	NotificationTypeOrderStatus NotificationType = "ORDER_STATUS"
)

// NotificationStatus 通知状态
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification 通知实体
type Notification struct {
	gorm.Model
	// 通知 ID
	NotificationID string `gorm:"column:notification_id;type:varchar(64);uniqueIndex;not null" json:"notification_id"`
	// 用户 ID
	UserID string `gorm:"column:user_id;type:varchar(32);index;not null" json:"user_id"`
	// 通知类型
	Type NotificationType `gorm:"column:type;type:varchar(20);not null" json:"type"`
	// 通知主题
	Subject string `gorm:"column:subject;type:varchar(100)" json:"subject"`
	// 通知内容
	Content string `gorm:"column:content;type:text" json:"content"`
	// 通知状态
	Status NotificationStatus `gorm:"column:status;type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	// 错误信息
	ErrorMessage string `gorm:"column:error_message;type:text" json:"error_message"`
	// 发送时间
	SentAt *time.Time `gorm:"column:sent_at;type:datetime" json:"sent_at"`
}

func (Notification) TableName() string { return "notifications" }

// MarkSent 标记已发送
func (n *Notification) MarkSent() {
	now := time.Now()
	n.Status = NotificationStatusSent
	n.SentAt = &now
}

// MarkFailed 标记发送失败
func (n *Notification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	if err != nil {
		n.ErrorMessage = err.Error()
	}
}

// NotificationRepository 通知仓储接口
type NotificationRepository interface {
	// 保存或更新通知记录
	Save(ctx context.Context, notification *Notification) error
	// 分页获取指定用户的通知列表
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*Notification, int64, error)
}

// Sender 通知发送接口
type Sender interface {
	Send(ctx context.Context, userID, subject, content string) error
}
