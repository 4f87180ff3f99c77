package application

import (
	"context"

	"github.com/agrigrow/storefront/internal/cart/domain"
	"github.com/agrigrow/storefront/pkg/metrics"
	"github.com/shopspring/decimal"
)

// ProductInfo 商品目录协作方返回的定价信息
type ProductInfo struct {
	ID              string
	Name            string
	Price           decimal.Decimal
	DiscountPercent float64
	Category        string
}

// ProductCatalog 商品目录协作方端口；购物车在加入时取价，之后不追踪价格变化
type ProductCatalog interface {
	Product(ctx context.Context, productID string) (*ProductInfo, error)
}

// CartApplicationService 购物车服务门面，整合命令服务和查询服务
type CartApplicationService struct {
	commandService *CartCommandService
	queryService   *CartQueryService
}

// NewCartApplicationService 创建购物车服务门面实例
func NewCartApplicationService(
	repo domain.CartRepository,
	catalog ProductCatalog,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *CartApplicationService {
	store := newCartStore(repo, m)
	return &CartApplicationService{
		commandService: NewCartCommandService(store, catalog, publisher),
		queryService:   NewCartQueryService(store),
	}
}

// GetCart 返回用户购物车的拷贝
func (s *CartApplicationService) GetCart(ctx context.Context, userID string) *domain.Cart {
	return s.queryService.GetCart(ctx, userID)
}

// GetTotalPrice 获取购物车总金额
func (s *CartApplicationService) GetTotalPrice(ctx context.Context, userID string) decimal.Decimal {
	return s.queryService.GetTotalPrice(ctx, userID)
}

// GetItemCount 获取购物车商品件数
func (s *CartApplicationService) GetItemCount(ctx context.Context, userID string) int {
	return s.queryService.GetItemCount(ctx, userID)
}

// AddItem 添加条目
func (s *CartApplicationService) AddItem(ctx context.Context, userID string, item domain.CartItem) error {
	return s.commandService.AddItem(ctx, AddItemCommand{UserID: userID, Item: item})
}

// AddProduct 按商品目录信息添加商品
func (s *CartApplicationService) AddProduct(ctx context.Context, userID, productID string, quantity int) error {
	return s.commandService.AddProduct(ctx, AddProductCommand{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// UpdateQuantity 修改条目数量
func (s *CartApplicationService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	return s.commandService.UpdateQuantity(ctx, UpdateQuantityCommand{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// RemoveItem 移除条目
func (s *CartApplicationService) RemoveItem(ctx context.Context, userID, productID string) error {
	return s.commandService.RemoveItem(ctx, RemoveItemCommand{UserID: userID, ProductID: productID})
}

// ClearCart 清空购物车
func (s *CartApplicationService) ClearCart(ctx context.Context, userID string) error {
	return s.commandService.ClearCart(ctx, ClearCartCommand{UserID: userID})
}
