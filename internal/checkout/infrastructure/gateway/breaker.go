package gateway

import (
	"context"
	"time"

	"github.com/agrigrow/storefront/internal/checkout/application"
	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/sony/gobreaker/v2"
)

type breakerSubmitter struct {
	inner   application.OrderSubmitter
	breaker *gobreaker.CircuitBreaker[string]
}

// NewBreakerSubmitter 包装订单提交端口，连续失败后熔断快速失败
func NewBreakerSubmitter(inner application.OrderSubmitter) application.OrderSubmitter {
	settings := gobreaker.Settings{
		Name:        "order-submit",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	}
	return &breakerSubmitter{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
	}
}

func (s *breakerSubmitter) Submit(ctx context.Context, req application.SubmitOrderRequest) (string, error) {
	return s.breaker.Execute(func() (string, error) {
		return s.inner.Submit(ctx, req)
	})
}
