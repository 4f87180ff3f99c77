// Package events 消费订单事件并触发通知
package events

import (
	"context"
	"errors"

	"github.com/agrigrow/storefront/internal/notification/application"
	"github.com/agrigrow/storefront/pkg/config"
	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/agrigrow/storefront/pkg/mq"
)

const (
	topicOrderCreated       = "order.created"
	topicOrderStatusChanged = "order.status.changed"
)

// OrderEventConsumer 订单事件消费者
type OrderEventConsumer struct {
	created *mq.KafkaConsumer
	status  *mq.KafkaConsumer
	app     *application.NotificationApplicationService
}

// NewOrderEventConsumer 创建订单事件消费者
func NewOrderEventConsumer(cfg config.KafkaConfig, app *application.NotificationApplicationService) *OrderEventConsumer {
	return &OrderEventConsumer{
		created: mq.NewConsumer(cfg, topicOrderCreated),
		status:  mq.NewConsumer(cfg, topicOrderStatusChanged),
		app:     app,
	}
}

// Run 阻塞消费两个订单主题，ctx 取消后返回
func (c *OrderEventConsumer) Run(ctx context.Context) {
	go c.consume(ctx, c.created, c.handleCreated)
	c.consume(ctx, c.status, c.handleStatusChanged)
}

// Close 关闭底层消费者
func (c *OrderEventConsumer) Close() error {
	return errors.Join(c.created.Close(), c.status.Close())
}

func (c *OrderEventConsumer) consume(ctx context.Context, consumer *mq.KafkaConsumer, handle func(context.Context, *mq.Message) error) {
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			logger.Error(ctx, "failed to read order event", "error", err)
			continue
		}
		if err := handle(ctx, msg); err != nil {
			logger.Error(ctx, "failed to handle order event",
				"topic", msg.Topic, "key", msg.Key, "error", err)
		}
	}
}

func (c *OrderEventConsumer) handleCreated(ctx context.Context, msg *mq.Message) error {
	var notice application.OrderPlacedNotice
	if err := msg.UnmarshalPayload(&notice); err != nil {
		return err
	}
	return c.app.HandleOrderPlaced(ctx, notice)
}

func (c *OrderEventConsumer) handleStatusChanged(ctx context.Context, msg *mq.Message) error {
	var notice application.OrderStatusNotice
	if err := msg.UnmarshalPayload(&notice); err != nil {
		return err
	}
	return c.app.HandleOrderStatusChanged(ctx, notice)
}
