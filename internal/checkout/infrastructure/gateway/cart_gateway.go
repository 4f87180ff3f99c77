// Package gateway 将购物车与订单服务适配为结算编排所需的端口
package gateway

import (
	"context"

	cartapp "github.com/agrigrow/storefront/internal/cart/application"
	"github.com/agrigrow/storefront/internal/checkout/application"
)

type cartGateway struct {
	carts *cartapp.CartApplicationService
}

// NewCartGateway 创建购物车网关
func NewCartGateway(carts *cartapp.CartApplicationService) application.CartGateway {
	return &cartGateway{carts: carts}
}

func (g *cartGateway) Snapshot(ctx context.Context, userID string) (*application.CartSnapshot, error) {
	cart := g.carts.GetCart(ctx, userID)

	lines := make([]application.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, application.CartLine{
			ProductID:       item.ProductID,
			Name:            item.Name,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Quantity:        item.Quantity,
			Subtotal:        item.Subtotal(),
		})
	}
	return &application.CartSnapshot{Lines: lines, Total: cart.Total()}, nil
}

func (g *cartGateway) Clear(ctx context.Context, userID string) error {
	return g.carts.ClearCart(ctx, userID)
}
