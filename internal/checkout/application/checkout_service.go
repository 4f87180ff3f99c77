// Package application 编排结算流程：快照购物车、提交订单、成功后清空
package application

import (
	"context"
	"sync"
	"time"

	"github.com/agrigrow/storefront/internal/checkout/domain"
	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/agrigrow/storefront/pkg/metrics"
	"github.com/shopspring/decimal"
)

// CartLine 结算时刻的购物车条目快照
type CartLine struct {
	ProductID       string
	Name            string
	UnitPrice       decimal.Decimal
	DiscountPercent float64
	Quantity        int
	Subtotal        decimal.Decimal
}

// CartSnapshot 结算时刻的购物车快照
type CartSnapshot struct {
	Lines []CartLine
	Total decimal.Decimal
}

// Empty 快照是否为空
func (s *CartSnapshot) Empty() bool { return len(s.Lines) == 0 }

// CartGateway 购物车协作方端口
type CartGateway interface {
	Snapshot(ctx context.Context, userID string) (*CartSnapshot, error)
	Clear(ctx context.Context, userID string) error
}

// SubmitOrderRequest 提交给订单服务的请求
type SubmitOrderRequest struct {
	UserID          string
	ClientOrderID   string
	Lines           []CartLine
	Total           decimal.Decimal
	ShippingAddress string
}

// OrderSubmitter 订单协作方端口；返回订单号
type OrderSubmitter interface {
	Submit(ctx context.Context, req SubmitOrderRequest) (string, error)
}

// KeyGenerator 幂等提交键生成接口
type KeyGenerator interface {
	RequestKey() string
}

// Result 一次结算的结果
type Result struct {
	OrderID string
	Total   decimal.Decimal
}

// CheckoutService 结算应用服务
type CheckoutService struct {
	mu        sync.Mutex
	checkouts map[string]*domain.Checkout

	carts   CartGateway
	orders  OrderSubmitter
	keys    KeyGenerator
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewCheckoutService 创建结算应用服务实例
func NewCheckoutService(
	carts CartGateway,
	orders OrderSubmitter,
	keys KeyGenerator,
	submitTimeout time.Duration,
	m *metrics.Metrics,
) *CheckoutService {
	return &CheckoutService{
		checkouts: make(map[string]*domain.Checkout),
		carts:     carts,
		orders:    orders,
		keys:      keys,
		timeout:   submitTimeout,
		metrics:   m,
	}
}

// Submit 执行结算。同一用户同一时间只允许一笔提交；
// 失败时购物车保持不变，成功后清空。
func (s *CheckoutService) Submit(ctx context.Context, userID, shippingAddress string) (*Result, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	checkout, err := s.begin(userID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.carts.Snapshot(ctx, userID)
	if err != nil {
		s.finishFailed(checkout, err)
		return nil, &domain.SubmissionError{Reason: "failed to read cart", Err: err}
	}
	if snapshot.Empty() {
		s.finishIdle(checkout)
		return nil, domain.ErrEmptyCart
	}

	req := SubmitOrderRequest{
		UserID:          userID,
		ClientOrderID:   s.keys.RequestKey(),
		Lines:           snapshot.Lines,
		Total:           snapshot.Total,
		ShippingAddress: shippingAddress,
	}

	submitCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		submitCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	orderID, err := s.orders.Submit(submitCtx, req)
	if err != nil {
		s.finishFailed(checkout, err)
		s.countCheckout("failure")
		logger.Error(ctx, "checkout submission failed",
			"user_id", userID, "client_order_id", req.ClientOrderID, "error", err)
		return nil, &domain.SubmissionError{Reason: "order submission failed", Err: err}
	}

	// 提交成功后清空购物车；清空失败不影响结算结果
	if err := s.carts.Clear(ctx, userID); err != nil {
		logger.Warn(ctx, "failed to clear cart after checkout",
			"user_id", userID, "order_id", orderID, "error", err)
	}

	s.finishSucceeded(checkout, orderID)
	s.countCheckout("success")
	logger.Info(ctx, "checkout succeeded",
		"user_id", userID, "order_id", orderID, "total", snapshot.Total.StringFixed(2))
	return &Result{OrderID: orderID, Total: snapshot.Total}, nil
}

// State 查询用户的结算状态
func (s *CheckoutService) State(userID string) domain.Checkout {
	s.mu.Lock()
	defer s.mu.Unlock()
	if checkout, ok := s.checkouts[userID]; ok {
		return *checkout
	}
	return *domain.NewCheckout(userID)
}

func (s *CheckoutService) begin(userID string) (*domain.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	checkout, ok := s.checkouts[userID]
	if !ok {
		checkout = domain.NewCheckout(userID)
		s.checkouts[userID] = checkout
	}
	if err := checkout.Begin(); err != nil {
		return nil, err
	}
	return checkout, nil
}

func (s *CheckoutService) finishSucceeded(checkout *domain.Checkout, orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkout.Succeed(orderID)
}

func (s *CheckoutService) finishFailed(checkout *domain.Checkout, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkout.Fail(err)
}

func (s *CheckoutService) finishIdle(checkout *domain.Checkout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkout.Reset()
}

func (s *CheckoutService) countCheckout(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.CheckoutsTotal.WithLabelValues(result).Inc()
}
