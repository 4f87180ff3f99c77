package gateway

import (
	"context"

	"github.com/agrigrow/storefront/internal/checkout/application"
	orderapp "github.com/agrigrow/storefront/internal/order/application"
	orderdomain "github.com/agrigrow/storefront/internal/order/domain"
)

type orderSubmitter struct {
	orders *orderapp.OrderApplicationService
}

// NewOrderSubmitter 创建订单提交网关
func NewOrderSubmitter(orders *orderapp.OrderApplicationService) application.OrderSubmitter {
	return &orderSubmitter{orders: orders}
}

func (g *orderSubmitter) Submit(ctx context.Context, req application.SubmitOrderRequest) (string, error) {
	items := make(orderdomain.OrderItems, 0, len(req.Lines))
	for _, line := range req.Lines {
		items = append(items, orderdomain.OrderItem{
			FertilizerID:    line.ProductID,
			Name:            line.Name,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			Quantity:        line.Quantity,
			Subtotal:        line.Subtotal,
		})
	}

	return g.orders.PlaceOrder(ctx, orderapp.PlaceOrderCommand{
		UserID:          req.UserID,
		ClientOrderID:   req.ClientOrderID,
		Items:           items,
		TotalAmount:     req.Total,
		ShippingAddress: req.ShippingAddress,
	})
}
