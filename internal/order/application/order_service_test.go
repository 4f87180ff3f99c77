package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/agrigrow/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryOrderRepository struct {
	orders []*domain.Order
	nextID uint
	saves  int
}

func newMemoryOrderRepository() *memoryOrderRepository {
	return &memoryOrderRepository{nextID: 1}
}

func (r *memoryOrderRepository) Save(_ context.Context, order *domain.Order) error {
	r.saves++
	if order.ID == 0 {
		for _, existing := range r.orders {
			if order.ClientOrderID != "" && existing.ClientOrderID == order.ClientOrderID {
				return fmt.Errorf("duplicate entry %q for key client_order_id", order.ClientOrderID)
			}
		}
		order.ID = r.nextID
		r.nextID++
		r.orders = append(r.orders, order)
		return nil
	}
	for i, existing := range r.orders {
		if existing.ID == order.ID {
			r.orders[i] = order
			return nil
		}
	}
	r.orders = append(r.orders, order)
	return nil
}

func (r *memoryOrderRepository) Get(_ context.Context, orderID string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.OrderID == orderID {
			return o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *memoryOrderRepository) GetByClientOrderID(_ context.Context, clientOrderID string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ClientOrderID == clientOrderID {
			return o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *memoryOrderRepository) ListByUser(_ context.Context, userID string, status domain.OrderStatus, offset, limit int) ([]*domain.Order, int64, error) {
	var matched []*domain.Order
	for _, o := range r.orders {
		if o.UserID != userID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		matched = append(matched, o)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

type recordingOrderPublisher struct {
	topics []string
}

func (p *recordingOrderPublisher) Publish(_ context.Context, topic string, _ string, _ any) error {
	p.topics = append(p.topics, topic)
	return nil
}

type sequenceIDGenerator struct{ n int }

func (g *sequenceIDGenerator) OrderID() string {
	g.n++
	return fmt.Sprintf("ORD%06d", g.n)
}

func sampleItems() domain.OrderItems {
	return domain.OrderItems{
		{
			FertilizerID: "1",
			Name:         "Urea",
			UnitPrice:    decimal.NewFromInt(266),
			Quantity:     2,
			Subtotal:     decimal.NewFromInt(532),
		},
	}
}

func newOrderTestService() (*OrderApplicationService, *memoryOrderRepository, *recordingOrderPublisher) {
	repo := newMemoryOrderRepository()
	publisher := &recordingOrderPublisher{}
	svc := NewOrderApplicationService(repo, publisher, &sequenceIDGenerator{}, nil)
	return svc, repo, publisher
}

func TestPlaceOrderPublishesCreatedEvent(t *testing.T) {
	svc, repo, publisher := newOrderTestService()
	ctx := context.Background()

	orderID, err := svc.PlaceOrder(ctx, PlaceOrderCommand{
		UserID:        "42",
		ClientOrderID: "req-1",
		Items:         sampleItems(),
		TotalAmount:   decimal.NewFromInt(532),
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD000001", orderID)
	assert.Equal(t, []string{"order.created"}, publisher.topics)

	order, err := repo.Get(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 2, order.ItemCount())
}

func TestPlaceOrderIsIdempotentOnClientOrderID(t *testing.T) {
	svc, repo, publisher := newOrderTestService()
	ctx := context.Background()

	cmd := PlaceOrderCommand{
		UserID:        "42",
		ClientOrderID: "req-1",
		Items:         sampleItems(),
		TotalAmount:   decimal.NewFromInt(532),
	}

	first, err := svc.PlaceOrder(ctx, cmd)
	require.NoError(t, err)
	second, err := svc.PlaceOrder(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, repo.orders, 1)
	// 重复提交不重复发事件
	assert.Equal(t, []string{"order.created"}, publisher.topics)
}

func TestPlaceOrderRejectsEmptyItems(t *testing.T) {
	svc, _, _ := newOrderTestService()

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
		UserID:      "42",
		TotalAmount: decimal.Zero,
	})
	assert.Error(t, err)
}

func TestCancelOrderOnlyByOwner(t *testing.T) {
	svc, _, _ := newOrderTestService()
	ctx := context.Background()

	orderID, err := svc.PlaceOrder(ctx, PlaceOrderCommand{
		UserID:      "42",
		Items:       sampleItems(),
		TotalAmount: decimal.NewFromInt(532),
	})
	require.NoError(t, err)

	err = svc.CancelOrder(ctx, CancelOrderCommand{OrderID: orderID, UserID: "99"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = svc.CancelOrder(ctx, CancelOrderCommand{OrderID: orderID, UserID: "42"})
	require.NoError(t, err)

	order, err := svc.GetOrder(ctx, orderID, "42")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
}

func TestStatusTransitions(t *testing.T) {
	svc, _, _ := newOrderTestService()
	ctx := context.Background()

	orderID, err := svc.PlaceOrder(ctx, PlaceOrderCommand{
		UserID:      "42",
		Items:       sampleItems(),
		TotalAmount: decimal.NewFromInt(532),
	})
	require.NoError(t, err)

	// PENDING 不能直接送达
	assert.Error(t, svc.UpdateStatus(ctx, orderID, domain.OrderStatusDelivered))

	require.NoError(t, svc.UpdateStatus(ctx, orderID, domain.OrderStatusConfirmed))
	require.NoError(t, svc.UpdateStatus(ctx, orderID, domain.OrderStatusDelivered))

	// 已送达不能取消
	err = svc.CancelOrder(ctx, CancelOrderCommand{OrderID: orderID, UserID: "42"})
	assert.Error(t, err)
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	svc, _, _ := newOrderTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.PlaceOrder(ctx, PlaceOrderCommand{
			UserID:      "42",
			Items:       sampleItems(),
			TotalAmount: decimal.NewFromInt(532),
		})
		require.NoError(t, err)
	}

	orders, total, err := svc.ListOrders(ctx, "42", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, orders, 3)

	require.NoError(t, svc.UpdateStatus(ctx, orders[0].OrderID, domain.OrderStatusConfirmed))

	confirmed, total, err := svc.ListOrders(ctx, "42", domain.OrderStatusConfirmed, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, confirmed, 1)

	// 其他用户看不到
	_, total, err = svc.ListOrders(ctx, "99", "", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}
