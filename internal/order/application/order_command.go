package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agrigrow/storefront/internal/order/domain"
	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/agrigrow/storefront/pkg/metrics"
	"github.com/shopspring/decimal"
)

// ErrUnauthorized 订单不属于当前用户
var ErrUnauthorized = errors.New("order: not owned by user")

// IDGenerator 订单号生成接口
type IDGenerator interface {
	OrderID() string
}

// PlaceOrderCommand 下单命令
type PlaceOrderCommand struct {
	UserID          string
	ClientOrderID   string
	Items           domain.OrderItems
	TotalAmount     decimal.Decimal
	ShippingAddress string
}

// CancelOrderCommand 取消订单命令
type CancelOrderCommand struct {
	OrderID string
	UserID  string
}

// OrderCommandService 处理订单相关的命令操作
type OrderCommandService struct {
	repo      domain.OrderRepository
	publisher domain.EventPublisher
	idgen     IDGenerator
	metrics   *metrics.Metrics
}

// NewOrderCommandService 创建 OrderCommandService 实例
func NewOrderCommandService(
	repo domain.OrderRepository,
	publisher domain.EventPublisher,
	idgen IDGenerator,
	m *metrics.Metrics,
) *OrderCommandService {
	return &OrderCommandService{
		repo:      repo,
		publisher: publisher,
		idgen:     idgen,
		metrics:   m,
	}
}

// PlaceOrder 下单；相同 ClientOrderID 的重复提交返回已有订单号
func (s *OrderCommandService) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (string, error) {
	if len(cmd.Items) == 0 {
		return "", fmt.Errorf("order must contain at least one item")
	}

	if cmd.ClientOrderID != "" {
		existing, err := s.repo.GetByClientOrderID(ctx, cmd.ClientOrderID)
		if err != nil && !errors.Is(err, domain.ErrOrderNotFound) {
			return "", err
		}
		if existing != nil {
			logger.Info(ctx, "duplicate order submission, returning existing order",
				"client_order_id", cmd.ClientOrderID, "order_id", existing.OrderID)
			return existing.OrderID, nil
		}
	}

	order := domain.NewOrder(s.idgen.OrderID(), cmd.UserID, cmd.ClientOrderID, cmd.Items, cmd.TotalAmount)
	order.ShippingAddress = cmd.ShippingAddress

	if err := s.repo.Save(ctx, order); err != nil {
		// 唯一索引冲突说明并发重复提交，重查已有订单
		if cmd.ClientOrderID != "" {
			if existing, lookupErr := s.repo.GetByClientOrderID(ctx, cmd.ClientOrderID); lookupErr == nil && existing != nil {
				return existing.OrderID, nil
			}
		}
		return "", err
	}

	s.publish(ctx, "order.created", order.OrderID, domain.OrderCreatedEvent{
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		Items:       order.Items,
		TotalAmount: order.TotalAmount.StringFixed(2),
		ItemCount:   order.ItemCount(),
		Timestamp:   time.Now(),
	})
	if s.metrics != nil {
		s.metrics.OrdersTotal.Inc()
	}
	return order.OrderID, nil
}

// CancelOrder 取消订单
func (s *OrderCommandService) CancelOrder(ctx context.Context, cmd CancelOrderCommand) error {
	order, err := s.repo.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if order.UserID != cmd.UserID {
		return ErrUnauthorized
	}

	oldStatus := order.Status
	if err := order.Cancel(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return err
	}

	s.publish(ctx, "order.status.changed", order.OrderID, domain.OrderStatusChangedEvent{
		OrderID:   order.OrderID,
		UserID:    order.UserID,
		OldStatus: oldStatus,
		NewStatus: order.Status,
		Timestamp: time.Now(),
	})
	return nil
}

// UpdateStatus 推进订单状态（确认、送达）
func (s *OrderCommandService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	oldStatus := order.Status
	switch status {
	case domain.OrderStatusConfirmed:
		err = order.Confirm()
	case domain.OrderStatusDelivered:
		err = order.Deliver()
	case domain.OrderStatusCancelled:
		err = order.Cancel()
	default:
		err = fmt.Errorf("unsupported status transition to %s", status)
	}
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return err
	}
	s.publish(ctx, "order.status.changed", order.OrderID, domain.OrderStatusChangedEvent{
		OrderID:   order.OrderID,
		UserID:    order.UserID,
		OldStatus: oldStatus,
		NewStatus: order.Status,
		Timestamp: time.Now(),
	})
	return nil
}

func (s *OrderCommandService) publish(ctx context.Context, topic, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "failed to publish order event", "topic", topic, "error", err)
	}
}
