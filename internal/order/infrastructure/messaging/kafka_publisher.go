// Package messaging 提供订单领域事件的 Kafka 发布实现
package messaging

import (
	"context"

	"github.com/agrigrow/storefront/internal/order/domain"
	"github.com/agrigrow/storefront/pkg/mq"
)

type kafkaPublisher struct {
	producer *mq.KafkaProducer
}

// NewKafkaPublisher 创建 Kafka 事件发布者
func NewKafkaPublisher(producer *mq.KafkaProducer) domain.EventPublisher {
	return &kafkaPublisher{producer: producer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return p.producer.SendMessage(ctx, topic, key, event)
}
