// Package application 实现订单的下单、查询与状态流转
package application

import (
	"github.com/agrigrow/storefront/internal/order/domain"
	"github.com/agrigrow/storefront/pkg/metrics"
)

// OrderApplicationService 订单应用服务门面
type OrderApplicationService struct {
	*OrderCommandService
	*OrderQueryService
}

// NewOrderApplicationService 创建订单应用服务实例
func NewOrderApplicationService(
	repo domain.OrderRepository,
	publisher domain.EventPublisher,
	idgen IDGenerator,
	m *metrics.Metrics,
) *OrderApplicationService {
	return &OrderApplicationService{
		OrderCommandService: NewOrderCommandService(repo, publisher, idgen, m),
		OrderQueryService:   NewOrderQueryService(repo),
	}
}
