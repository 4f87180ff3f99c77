package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/agrigrow/storefront/internal/checkout/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCartGateway struct {
	mu       sync.Mutex
	snapshot *CartSnapshot
	cleared  int
	clearErr error
}

func (g *stubCartGateway) Snapshot(_ context.Context, _ string) (*CartSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	// 返回拷贝，模拟真实网关行为
	cp := *g.snapshot
	return &cp, nil
}

func (g *stubCartGateway) Clear(_ context.Context, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.clearErr != nil {
		return g.clearErr
	}
	g.cleared++
	g.snapshot = &CartSnapshot{Total: decimal.Zero}
	return nil
}

func (g *stubCartGateway) clearCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cleared
}

type stubOrderSubmitter struct {
	mu      sync.Mutex
	err     error
	block   chan struct{}
	keys    []string
	calls   int
	nextSeq int
}

func (s *stubOrderSubmitter) Submit(ctx context.Context, req SubmitOrderRequest) (string, error) {
	s.mu.Lock()
	s.calls++
	s.keys = append(s.keys, req.ClientOrderID)
	block := s.block
	err := s.err
	s.nextSeq++
	orderID := fmt.Sprintf("ORD%06d", s.nextSeq)
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return orderID, nil
}

type staticKeys struct {
	mu sync.Mutex
	n  int
}

func (k *staticKeys) RequestKey() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.n++
	return fmt.Sprintf("key-%d", k.n)
}

func filledSnapshot() *CartSnapshot {
	return &CartSnapshot{
		Lines: []CartLine{
			{
				ProductID: "1",
				Name:      "Urea",
				UnitPrice: decimal.NewFromInt(266),
				Quantity:  2,
				Subtotal:  decimal.NewFromInt(532),
			},
		},
		Total: decimal.NewFromInt(532),
	}
}

func TestSubmitRequiresAuthentication(t *testing.T) {
	svc := NewCheckoutService(&stubCartGateway{snapshot: filledSnapshot()}, &stubOrderSubmitter{}, &staticKeys{}, time.Second, nil)

	_, err := svc.Submit(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	carts := &stubCartGateway{snapshot: &CartSnapshot{Total: decimal.Zero}}
	submitter := &stubOrderSubmitter{}
	svc := NewCheckoutService(carts, submitter, &staticKeys{}, time.Second, nil)

	_, err := svc.Submit(context.Background(), "42", "")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Zero(t, submitter.calls)

	// 空购物车拒绝后状态回到空闲，可以再次尝试
	assert.Equal(t, domain.StateIdle, svc.State("42").State)
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	carts := &stubCartGateway{snapshot: filledSnapshot()}
	svc := NewCheckoutService(carts, &stubOrderSubmitter{}, &staticKeys{}, time.Second, nil)

	result, err := svc.Submit(context.Background(), "42", "Village Rampur, UP")
	require.NoError(t, err)
	assert.Equal(t, "ORD000001", result.OrderID)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(532)))
	assert.Equal(t, 1, carts.clearCount())

	state := svc.State("42")
	assert.Equal(t, domain.StateSucceeded, state.State)
	assert.Equal(t, "ORD000001", state.OrderID)
}

func TestSubmitFailurePreservesCart(t *testing.T) {
	carts := &stubCartGateway{snapshot: filledSnapshot()}
	submitter := &stubOrderSubmitter{err: errors.New("order service unavailable")}
	svc := NewCheckoutService(carts, submitter, &staticKeys{}, time.Second, nil)

	_, err := svc.Submit(context.Background(), "42", "")
	require.Error(t, err)

	var subErr *domain.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Zero(t, carts.clearCount())
	assert.Equal(t, domain.StateFailed, svc.State("42").State)

	// 失败后可以重试，重试使用新的幂等键
	submitter.mu.Lock()
	submitter.err = nil
	submitter.mu.Unlock()

	result, err := svc.Submit(context.Background(), "42", "")
	require.NoError(t, err)
	assert.NotEmpty(t, result.OrderID)
	assert.Equal(t, []string{"key-1", "key-2"}, submitter.keys)
}

func TestDoubleSubmitIsRejected(t *testing.T) {
	carts := &stubCartGateway{snapshot: filledSnapshot()}
	block := make(chan struct{})
	submitter := &stubOrderSubmitter{block: block}
	svc := NewCheckoutService(carts, submitter, &staticKeys{}, 5*time.Second, nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), "42", "")
		firstDone <- err
	}()

	// 等第一笔进入提交中状态
	require.Eventually(t, func() bool {
		st := svc.State("42")
		return st.InFlight()
	}, time.Second, 5*time.Millisecond)

	_, err := svc.Submit(context.Background(), "42", "")
	assert.ErrorIs(t, err, domain.ErrCheckoutInProgress)

	close(block)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, submitter.calls)
}

func TestConcurrentSubmitsOnlyOneWins(t *testing.T) {
	carts := &stubCartGateway{snapshot: filledSnapshot()}
	block := make(chan struct{})
	submitter := &stubOrderSubmitter{block: block}
	svc := NewCheckoutService(carts, submitter, &staticKeys{}, 5*time.Second, nil)

	winner := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), "42", "")
		winner <- err
	}()
	require.Eventually(t, func() bool {
		st := svc.State("42")
		return st.InFlight()
	}, time.Second, 5*time.Millisecond)

	// 提交进行中时所有竞争者都被拒绝
	const attempts = 7
	var wg sync.WaitGroup
	rejected := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(context.Background(), "42", "")
			rejected <- err
		}()
	}
	wg.Wait()
	close(rejected)
	for err := range rejected {
		assert.ErrorIs(t, err, domain.ErrCheckoutInProgress)
	}

	close(block)
	require.NoError(t, <-winner)
	assert.Equal(t, 1, submitter.calls)
}

func TestSubmitTimesOut(t *testing.T) {
	carts := &stubCartGateway{snapshot: filledSnapshot()}
	submitter := &stubOrderSubmitter{block: make(chan struct{})}
	svc := NewCheckoutService(carts, submitter, &staticKeys{}, 20*time.Millisecond, nil)

	_, err := svc.Submit(context.Background(), "42", "")
	require.Error(t, err)

	var subErr *domain.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, carts.clearCount())
	assert.Equal(t, domain.StateFailed, svc.State("42").State)
}

func TestOtherUsersUnaffectedByInFlightCheckout(t *testing.T) {
	carts := &stubCartGateway{snapshot: filledSnapshot()}
	block := make(chan struct{})
	submitter := &stubOrderSubmitter{block: block}
	svc := NewCheckoutService(carts, submitter, &staticKeys{}, 5*time.Second, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), "42", "")
		done <- err
	}()
	require.Eventually(t, func() bool {
		st := svc.State("42")
		return st.InFlight()
	}, time.Second, 5*time.Millisecond)

	// 另一个用户不受影响
	assert.Equal(t, domain.StateIdle, svc.State("99").State)

	close(block)
	require.NoError(t, <-done)
}
