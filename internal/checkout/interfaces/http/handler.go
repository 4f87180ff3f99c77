// Package http 提供结算的 HTTP 接口
package http

import (
	"errors"
	"net/http"

	authhttp "github.com/agrigrow/storefront/internal/auth/interfaces/http"
	"github.com/agrigrow/storefront/internal/checkout/application"
	"github.com/agrigrow/storefront/internal/checkout/domain"
	"github.com/agrigrow/storefront/pkg/response"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler 结算 HTTP 处理器
type CheckoutHandler struct {
	app *application.CheckoutService
}

// NewCheckoutHandler 创建结算 HTTP 处理器实例
func NewCheckoutHandler(app *application.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/checkout")
	{
		api.POST("", h.Submit)
		api.GET("/state", h.State)
	}
}

// SubmitRequest 结算请求
type SubmitRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

// Submit 提交结算
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	result, err := h.app.Submit(c.Request.Context(), authhttp.UserID(c), req.ShippingAddress)
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		response.ErrorWithStatus(c, http.StatusUnauthorized, "sign in required")
	case errors.Is(err, domain.ErrEmptyCart):
		response.ErrorWithStatus(c, http.StatusUnprocessableEntity, "cart is empty")
	case errors.Is(err, domain.ErrCheckoutInProgress):
		response.ErrorWithStatus(c, http.StatusConflict, "checkout already in progress")
	case err != nil:
		response.ErrorWithStatus(c, http.StatusBadGateway, err.Error())
	default:
		response.Success(c, gin.H{
			"order_id": result.OrderID,
			"total":    result.Total.StringFixed(2),
		})
	}
}

// State 查询当前用户的结算状态
func (h *CheckoutHandler) State(c *gin.Context) {
	checkout := h.app.State(authhttp.UserID(c))
	response.Success(c, gin.H{
		"state":      string(checkout.State),
		"order_id":   checkout.OrderID,
		"last_error": checkout.LastError,
	})
}
