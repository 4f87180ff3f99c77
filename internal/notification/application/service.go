// Package application 根据订单事件生成并发送用户通知
package application

import (
	"context"
	"fmt"

	"github.com/agrigrow/storefront/internal/notification/domain"
	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/google/uuid"
)

// OrderPlacedNotice 订单创建事件载荷
type OrderPlacedNotice struct {
	OrderID     string `json:"order_id"`
	UserID      string `json:"user_id"`
	TotalAmount string `json:"total_amount"`
	ItemCount   int    `json:"item_count"`
}

// OrderStatusNotice 订单状态变更事件载荷
type OrderStatusNotice struct {
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// NotificationApplicationService 通知应用服务
type NotificationApplicationService struct {
	repo   domain.NotificationRepository
	sender domain.Sender
}

// NewNotificationApplicationService 创建通知应用服务实例
func NewNotificationApplicationService(repo domain.NotificationRepository, sender domain.Sender) *NotificationApplicationService {
	return &NotificationApplicationService{repo: repo, sender: sender}
}

// HandleOrderPlaced 处理订单创建事件
func (s *NotificationApplicationService) HandleOrderPlaced(ctx context.Context, notice OrderPlacedNotice) error {
	subject := "Order placed"
	content := fmt.Sprintf("Your order %s with %d items (₹%s) has been placed.",
		notice.OrderID, notice.ItemCount, notice.TotalAmount)
	return s.deliver(ctx, notice.UserID, domain.NotificationTypeOrderPlaced, subject, content)
}

// HandleOrderStatusChanged 处理订单状态变更事件
func (s *NotificationApplicationService) HandleOrderStatusChanged(ctx context.Context, notice OrderStatusNotice) error {
	subject := "Order status updated"
	content := fmt.Sprintf("Your order %s is now %s.", notice.OrderID, notice.NewStatus)
	return s.deliver(ctx, notice.UserID, domain.NotificationTypeOrderStatus, subject, content)
}

// ListNotifications 分页列出用户通知
func (s *NotificationApplicationService) ListNotifications(ctx context.Context, userID string, page, size int) ([]*domain.Notification, int64, error) {
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, offset, size)
}

func (s *NotificationApplicationService) deliver(ctx context.Context, userID string, typ domain.NotificationType, subject, content string) error {
	notification := &domain.Notification{
		NotificationID: uuid.New().String(),
		UserID:         userID,
		Type:           typ,
		Subject:        subject,
		Content:        content,
		Status:         domain.NotificationStatusPending,
	}
	if err := s.repo.Save(ctx, notification); err != nil {
		return err
	}

	if err := s.sender.Send(ctx, userID, subject, content); err != nil {
		notification.MarkFailed(err)
		if saveErr := s.repo.Save(ctx, notification); saveErr != nil {
			logger.Warn(ctx, "failed to record notification failure", "notification_id", notification.NotificationID, "error", saveErr)
		}
		return err
	}

	notification.MarkSent()
	return s.repo.Save(ctx, notification)
}
