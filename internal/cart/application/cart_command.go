package application

import (
	"context"
	"fmt"
	"time"

	"github.com/agrigrow/storefront/internal/cart/domain"
	"github.com/agrigrow/storefront/pkg/logger"
)

// AddItemCommand 添加条目到购物车命令
type AddItemCommand struct {
	UserID string
	Item   domain.CartItem
}

// AddProductCommand 按商品目录信息添加商品命令
type AddProductCommand struct {
	UserID    string
	ProductID string
	Quantity  int
}

// UpdateQuantityCommand 修改条目数量命令
type UpdateQuantityCommand struct {
	UserID    string
	ProductID string
	Quantity  int
}

// RemoveItemCommand 从购物车移除条目命令
type RemoveItemCommand struct {
	UserID    string
	ProductID string
}

// ClearCartCommand 清空购物车命令
type ClearCartCommand struct {
	UserID string
}

// CartCommandService 购物车命令服务
type CartCommandService struct {
	store     *cartStore
	catalog   ProductCatalog
	publisher domain.EventPublisher
}

// NewCartCommandService 创建购物车命令服务实例
func NewCartCommandService(store *cartStore, catalog ProductCatalog, publisher domain.EventPublisher) *CartCommandService {
	return &CartCommandService{store: store, catalog: catalog, publisher: publisher}
}

// AddItem 处理添加条目；同一商品已存在时叠加数量
func (s *CartCommandService) AddItem(ctx context.Context, cmd AddItemCommand) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	cart := s.store.get(ctx, cmd.UserID)
	created := cart.Version == 0

	if err := cart.AddItem(cmd.Item); err != nil {
		return err
	}
	s.store.persist(ctx, cart)
	s.countMutation("add_item")

	if created {
		s.publish(ctx, "cart.created", cmd.UserID, domain.CartCreatedEvent{
			UserID:    cmd.UserID,
			Timestamp: time.Now(),
		})
	}
	s.publish(ctx, "cart.item.added", cmd.UserID, domain.CartItemAddedEvent{
		UserID:    cmd.UserID,
		ProductID: cmd.Item.ProductID,
		Quantity:  cmd.Item.Quantity,
		Version:   cart.Version,
		Timestamp: time.Now(),
	})
	return nil
}

// AddProduct 从商品目录取价后加入购物车
func (s *CartCommandService) AddProduct(ctx context.Context, cmd AddProductCommand) error {
	if s.catalog == nil {
		return fmt.Errorf("cart: no product catalog configured")
	}
	product, err := s.catalog.Product(ctx, cmd.ProductID)
	if err != nil {
		return fmt.Errorf("cart: resolve product %s: %w", cmd.ProductID, err)
	}

	return s.AddItem(ctx, AddItemCommand{
		UserID: cmd.UserID,
		Item: domain.CartItem{
			ProductID:       product.ID,
			Name:            product.Name,
			UnitPrice:       product.Price,
			DiscountPercent: product.DiscountPercent,
			Quantity:        cmd.Quantity,
			Category:        product.Category,
		},
	})
}

// UpdateQuantity 处理数量变更；目标数量小于 1 时移除条目
func (s *CartCommandService) UpdateQuantity(ctx context.Context, cmd UpdateQuantityCommand) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	cart := s.store.get(ctx, cmd.UserID)
	if err := cart.UpdateQuantity(cmd.ProductID, cmd.Quantity); err != nil {
		return err
	}
	s.store.persist(ctx, cart)
	s.countMutation("update_quantity")

	if cmd.Quantity < 1 {
		s.publish(ctx, "cart.item.removed", cmd.UserID, domain.CartItemRemovedEvent{
			UserID:    cmd.UserID,
			ProductID: cmd.ProductID,
			Version:   cart.Version,
			Timestamp: time.Now(),
		})
	} else {
		s.publish(ctx, "cart.item.quantity_changed", cmd.UserID, domain.CartQuantityChangedEvent{
			UserID:    cmd.UserID,
			ProductID: cmd.ProductID,
			Quantity:  cmd.Quantity,
			Version:   cart.Version,
			Timestamp: time.Now(),
		})
	}
	return nil
}

// RemoveItem 处理移除条目；条目不存在时不报错
func (s *CartCommandService) RemoveItem(ctx context.Context, cmd RemoveItemCommand) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	cart := s.store.get(ctx, cmd.UserID)
	before := len(cart.Items)
	cart.RemoveItem(cmd.ProductID)
	if len(cart.Items) == before {
		return nil
	}

	s.store.persist(ctx, cart)
	s.countMutation("remove_item")
	s.publish(ctx, "cart.item.removed", cmd.UserID, domain.CartItemRemovedEvent{
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
		Version:   cart.Version,
		Timestamp: time.Now(),
	})
	return nil
}

// ClearCart 处理清空购物车，幂等
func (s *CartCommandService) ClearCart(ctx context.Context, cmd ClearCartCommand) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	cart := s.store.get(ctx, cmd.UserID)
	if cart.IsEmpty() {
		return nil
	}

	cart.Clear()
	s.store.drop(ctx, cmd.UserID)
	s.countMutation("clear")
	s.publish(ctx, "cart.cleared", cmd.UserID, domain.CartClearedEvent{
		UserID:    cmd.UserID,
		Version:   cart.Version,
		Timestamp: time.Now(),
	})
	return nil
}

func (s *CartCommandService) publish(ctx context.Context, topic, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "failed to publish cart event", "topic", topic, "error", err)
	}
}

func (s *CartCommandService) countMutation(op string) {
	if s.store.metrics != nil {
		s.store.metrics.CartMutationsTotal.WithLabelValues(op).Inc()
	}
}
