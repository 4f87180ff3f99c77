package application

import (
	"context"

	"github.com/agrigrow/storefront/internal/order/domain"
)

// OrderQueryService 订单查询服务
type OrderQueryService struct {
	repo domain.OrderRepository
}

// NewOrderQueryService 创建订单查询服务实例
func NewOrderQueryService(repo domain.OrderRepository) *OrderQueryService {
	return &OrderQueryService{repo: repo}
}

// GetOrder 获取订单；仅允许订单所有者查询
func (s *OrderQueryService) GetOrder(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrUnauthorized
	}
	return order, nil
}

// ListOrders 分页列出用户订单
func (s *OrderQueryService) ListOrders(ctx context.Context, userID string, status domain.OrderStatus, page, size int) ([]*domain.Order, int64, error) {
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, status, offset, size)
}
