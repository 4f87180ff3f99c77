// Package domain 包含结算流程的领域模型
package domain

import (
	"errors"
	"fmt"
	"time"
)

// State 结算状态
type State string

const (
	StateIdle       State = "IDLE"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
)

var (
	// ErrNotAuthenticated 未登录用户不能结算
	ErrNotAuthenticated = errors.New("checkout: not authenticated")
	// ErrEmptyCart 空购物车不能结算
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrCheckoutInProgress 已有结算在进行中
	ErrCheckoutInProgress = errors.New("checkout: submission already in progress")
)

// SubmissionError 订单提交失败；购物车保持不变，可以重试
type SubmissionError struct {
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("checkout submission failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("checkout submission failed: %s", e.Reason)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Checkout 单个用户的结算状态机
type Checkout struct {
	UserID      string
	State       State
	OrderID     string
	LastError   string
	SubmittedAt time.Time
	FinishedAt  time.Time
}

// NewCheckout 创建空闲状态的结算
func NewCheckout(userID string) *Checkout {
	return &Checkout{UserID: userID, State: StateIdle}
}

// Begin 进入提交中状态；提交中不允许再次开始
func (c *Checkout) Begin() error {
	if c.State == StateSubmitting {
		return ErrCheckoutInProgress
	}
	c.State = StateSubmitting
	c.OrderID = ""
	c.LastError = ""
	c.SubmittedAt = time.Now()
	c.FinishedAt = time.Time{}
	return nil
}

// Succeed 提交成功
func (c *Checkout) Succeed(orderID string) {
	c.State = StateSucceeded
	c.OrderID = orderID
	c.FinishedAt = time.Now()
}

// Fail 提交失败；保留错误信息供查询
func (c *Checkout) Fail(err error) {
	c.State = StateFailed
	if err != nil {
		c.LastError = err.Error()
	}
	c.FinishedAt = time.Now()
}

// Reset 回到空闲状态
func (c *Checkout) Reset() {
	c.State = StateIdle
	c.OrderID = ""
	c.LastError = ""
}

// InFlight 是否提交中
func (c *Checkout) InFlight() bool { return c.State == StateSubmitting }
