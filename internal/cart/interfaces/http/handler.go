// Package http 提供购物车的 HTTP 接口
package http

import (
	"errors"
	"net/http"

	authhttp "github.com/agrigrow/storefront/internal/auth/interfaces/http"
	"github.com/agrigrow/storefront/internal/cart/application"
	"github.com/agrigrow/storefront/internal/cart/domain"
	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/agrigrow/storefront/pkg/response"
	"github.com/gin-gonic/gin"
)

// CartHandler 购物车 HTTP 处理器
type CartHandler struct {
	app *application.CartApplicationService
}

// NewCartHandler 创建购物车 HTTP 处理器实例
func NewCartHandler(app *application.CartApplicationService) *CartHandler {
	return &CartHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/cart")
	{
		api.GET("", h.GetCart)
		api.GET("/count", h.GetItemCount)
		api.POST("/items", h.AddItem)
		api.PUT("/items/:product_id", h.UpdateQuantity)
		api.DELETE("/items/:product_id", h.RemoveItem)
		api.DELETE("", h.ClearCart)
	}
}

type cartItemView struct {
	ProductID       string  `json:"product_id"`
	Name            string  `json:"name"`
	UnitPrice       string  `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
	Quantity        int     `json:"quantity"`
	Category        string  `json:"category"`
	Subtotal        string  `json:"subtotal"`
}

type cartView struct {
	UserID  string         `json:"user_id"`
	Items   []cartItemView `json:"items"`
	Total   string         `json:"total"`
	Version int64          `json:"version"`
}

func toCartView(cart *domain.Cart) cartView {
	items := make([]cartItemView, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, cartItemView{
			ProductID:       it.ProductID,
			Name:            it.Name,
			UnitPrice:       it.UnitPrice.StringFixed(2),
			DiscountPercent: it.DiscountPercent,
			Quantity:        it.Quantity,
			Category:        it.Category,
			Subtotal:        it.Subtotal().StringFixed(2),
		})
	}
	return cartView{
		UserID:  cart.UserID,
		Items:   items,
		Total:   cart.Total().StringFixed(2),
		Version: cart.Version,
	}
}

// GetCart 获取当前用户购物车
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := authhttp.UserID(c)
	cart := h.app.GetCart(c.Request.Context(), userID)
	response.Success(c, toCartView(cart))
}

// GetItemCount 获取购物车商品件数
func (h *CartHandler) GetItemCount(c *gin.Context) {
	userID := authhttp.UserID(c)
	count := h.app.GetItemCount(c.Request.Context(), userID)
	response.Success(c, gin.H{"count": count})
}

// AddItemRequest 添加商品请求
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// AddItem 将商品加入购物车；价格与折扣由商品目录决定
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := authhttp.UserID(c)
	if err := h.app.AddProduct(c.Request.Context(), userID, req.ProductID, req.Quantity); err != nil {
		logger.Error(c.Request.Context(), "failed to add item to cart",
			"user_id", userID, "product_id", req.ProductID, "error", err)
		response.ErrorWithStatus(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	cart := h.app.GetCart(c.Request.Context(), userID)
	response.Success(c, toCartView(cart))
}

// UpdateQuantityRequest 修改数量请求
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity 修改条目数量；数量小于 1 等价于移除
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := authhttp.UserID(c)
	productID := c.Param("product_id")
	err := h.app.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if errors.Is(err, domain.ErrItemNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "item not in cart")
		return
	}
	if err != nil {
		response.Error(c, err.Error())
		return
	}

	cart := h.app.GetCart(c.Request.Context(), userID)
	response.Success(c, toCartView(cart))
}

// RemoveItem 移除条目
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := authhttp.UserID(c)
	if err := h.app.RemoveItem(c.Request.Context(), userID, c.Param("product_id")); err != nil {
		response.Error(c, err.Error())
		return
	}

	cart := h.app.GetCart(c.Request.Context(), userID)
	response.Success(c, toCartView(cart))
}

// ClearCart 清空购物车
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := authhttp.UserID(c)
	if err := h.app.ClearCart(c.Request.Context(), userID); err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
