// Package mysql 提供通知仓储的 MySQL 实现
package mysql

import (
	"context"

	"github.com/agrigrow/storefront/internal/notification/domain"
	"gorm.io/gorm"
)

type notificationRepository struct{ db *gorm.DB }

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Save(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Notification, int64, error) {
	var notifications []*domain.Notification
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Notification{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&notifications).Error
	return notifications, total, err
}
