// Package http 提供订单的 HTTP 接口
package http

import (
	"errors"
	"net/http"
	"strconv"

	authhttp "github.com/agrigrow/storefront/internal/auth/interfaces/http"
	"github.com/agrigrow/storefront/internal/order/application"
	"github.com/agrigrow/storefront/internal/order/domain"
	"github.com/agrigrow/storefront/pkg/response"
	"github.com/gin-gonic/gin"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	app *application.OrderApplicationService
}

// NewOrderHandler 创建订单 HTTP 处理器实例
func NewOrderHandler(app *application.OrderApplicationService) *OrderHandler {
	return &OrderHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/orders")
	{
		api.GET("", h.ListOrders)
		api.GET("/:order_id", h.GetOrder)
		api.POST("/:order_id/cancel", h.CancelOrder)
	}
}

type orderItemView struct {
	FertilizerID    string  `json:"fertilizer_id"`
	Name            string  `json:"name"`
	UnitPrice       string  `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
	Quantity        int     `json:"quantity"`
	Subtotal        string  `json:"subtotal"`
}

type orderView struct {
	OrderID         string          `json:"order_id"`
	Status          string          `json:"status"`
	Items           []orderItemView `json:"items"`
	TotalAmount     string          `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

func toOrderView(order *domain.Order) orderView {
	items := make([]orderItemView, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, orderItemView{
			FertilizerID:    it.FertilizerID,
			Name:            it.Name,
			UnitPrice:       it.UnitPrice.StringFixed(2),
			DiscountPercent: it.DiscountPercent,
			Quantity:        it.Quantity,
			Subtotal:        it.Subtotal.StringFixed(2),
		})
	}
	return orderView{
		OrderID:         order.OrderID,
		Status:          string(order.Status),
		Items:           items,
		TotalAmount:     order.TotalAmount.StringFixed(2),
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ListOrders 分页列出当前用户订单
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, size := pagination(c)
	status := domain.OrderStatus(c.Query("status"))

	orders, total, err := h.app.ListOrders(c.Request.Context(), authhttp.UserID(c), status, page, size)
	if err != nil {
		response.Error(c, err.Error())
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	response.Success(c, gin.H{
		"items": views,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

// GetOrder 获取订单详情
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.app.GetOrder(c.Request.Context(), c.Param("order_id"), authhttp.UserID(c))
	if errors.Is(err, domain.ErrOrderNotFound) || errors.Is(err, application.ErrUnauthorized) {
		response.ErrorWithStatus(c, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, toOrderView(order))
}

// CancelOrder 取消订单
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	err := h.app.CancelOrder(c.Request.Context(), application.CancelOrderCommand{
		OrderID: c.Param("order_id"),
		UserID:  authhttp.UserID(c),
	})
	if errors.Is(err, domain.ErrOrderNotFound) || errors.Is(err, application.ErrUnauthorized) {
		response.ErrorWithStatus(c, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		response.ErrorWithStatus(c, http.StatusConflict, err.Error())
		return
	}
	response.Success(c, gin.H{"cancelled": true})
}

func pagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}
