package application

import (
	"context"
	"errors"
	"testing"

	"github.com/agrigrow/storefront/internal/cart/domain"
	"github.com/agrigrow/storefront/internal/cart/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingRepository implements domain.CartRepository and fails every call
type failingRepository struct {
	loadErr error
}

func (r *failingRepository) Load(_ context.Context, _ string) (*domain.Cart, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return nil, errors.New("redis: connection refused")
}

func (r *failingRepository) Save(_ context.Context, _ *domain.Cart) error {
	return errors.New("redis: connection refused")
}

func (r *failingRepository) Delete(_ context.Context, _ string) error {
	return errors.New("redis: connection refused")
}

// recordingPublisher captures published topics
type recordingPublisher struct {
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ string, _ any) error {
	p.topics = append(p.topics, topic)
	return nil
}

// staticCatalog implements ProductCatalog over a fixed map
type staticCatalog struct {
	products map[string]*ProductInfo
}

func (c *staticCatalog) Product(_ context.Context, id string) (*ProductInfo, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return p, nil
}

func newService(repo domain.CartRepository, pub domain.EventPublisher) *CartApplicationService {
	return NewCartApplicationService(repo, nil, pub, nil)
}

func addItem(t *testing.T, svc *CartApplicationService, userID, productID string, price int64, qty int) {
	t.Helper()
	err := svc.AddItem(context.Background(), userID, domain.CartItem{
		ProductID: productID,
		Name:      productID,
		UnitPrice: decimal.NewFromInt(price),
		Quantity:  qty,
	})
	require.NoError(t, err)
}

func TestAddItemPersistsAfterEveryMutation(t *testing.T) {
	repo := memory.NewCartRepository()
	svc := newService(repo, nil)
	ctx := context.Background()

	addItem(t, svc, "u1", "A", 100, 1)
	addItem(t, svc, "u1", "A", 100, 1)

	persisted, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, 2, persisted.Items[0].Quantity)
}

func TestCartSurvivesReload(t *testing.T) {
	repo := memory.NewCartRepository()
	ctx := context.Background()

	svc := newService(repo, nil)
	addItem(t, svc, "u1", "A", 100, 2)

	// 新的服务实例模拟进程重启后的加载
	restarted := newService(repo, nil)
	cart := restarted.GetCart(ctx, "u1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, restarted.GetTotalPrice(ctx, "u1").Equal(decimal.NewFromInt(200)))
}

func TestPersistenceFailureDegradesToMemoryOnly(t *testing.T) {
	svc := newService(&failingRepository{}, nil)
	ctx := context.Background()

	// 持久化完全不可用时购物车操作仍然可用
	addItem(t, svc, "u1", "A", 50, 1)
	require.NoError(t, svc.UpdateQuantity(ctx, "u1", "A", 3))

	cart := svc.GetCart(ctx, "u1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, svc.GetTotalPrice(ctx, "u1").Equal(decimal.NewFromInt(150)))
}

func TestCorruptedPersistedCartStartsEmpty(t *testing.T) {
	svc := newService(&failingRepository{loadErr: domain.ErrCartCorrupted}, nil)
	cart := svc.GetCart(context.Background(), "u1")
	assert.Empty(t, cart.Items)
}

func TestUpdateQuantityToZeroRemovesAndPersists(t *testing.T) {
	repo := memory.NewCartRepository()
	svc := newService(repo, nil)
	ctx := context.Background()

	addItem(t, svc, "u1", "A", 100, 2)
	require.NoError(t, svc.UpdateQuantity(ctx, "u1", "A", 0))

	assert.Empty(t, svc.GetCart(ctx, "u1").Items)
	persisted, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, persisted.Items)
}

func TestUpdateQuantityUnknownProduct(t *testing.T) {
	svc := newService(memory.NewCartRepository(), nil)
	err := svc.UpdateQuantity(context.Background(), "u1", "missing", 2)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestClearCartDeletesPersistedState(t *testing.T) {
	repo := memory.NewCartRepository()
	svc := newService(repo, nil)
	ctx := context.Background()

	addItem(t, svc, "u1", "A", 100, 1)
	require.NoError(t, svc.ClearCart(ctx, "u1"))

	assert.True(t, svc.GetTotalPrice(ctx, "u1").IsZero())
	assert.Empty(t, svc.GetCart(ctx, "u1").Items)
	_, err := repo.Load(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)

	// 幂等
	require.NoError(t, svc.ClearCart(ctx, "u1"))
}

func TestAddProductTakesPriceFromCatalog(t *testing.T) {
	catalog := &staticCatalog{products: map[string]*ProductInfo{
		"F1": {ID: "F1", Name: "Urea 46-0-0", Price: decimal.NewFromInt(50), DiscountPercent: 10, Category: "Nitrogen"},
	}}
	svc := NewCartApplicationService(memory.NewCartRepository(), catalog, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.AddProduct(ctx, "u1", "F1", 1))

	cart := svc.GetCart(ctx, "u1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Urea 46-0-0", cart.Items[0].Name)
	assert.Equal(t, "Nitrogen", cart.Items[0].Category)
	// 50 × 10% 折扣 = 45
	assert.True(t, svc.GetTotalPrice(ctx, "u1").Equal(decimal.NewFromInt(45)))
}

func TestAddProductUnknownID(t *testing.T) {
	catalog := &staticCatalog{products: map[string]*ProductInfo{}}
	svc := NewCartApplicationService(memory.NewCartRepository(), catalog, nil, nil)
	err := svc.AddProduct(context.Background(), "u1", "missing", 1)
	assert.Error(t, err)
}

func TestMutationsPublishEvents(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(memory.NewCartRepository(), pub)
	ctx := context.Background()

	addItem(t, svc, "u1", "A", 10, 1)
	require.NoError(t, svc.UpdateQuantity(ctx, "u1", "A", 2))
	require.NoError(t, svc.RemoveItem(ctx, "u1", "A"))

	assert.Equal(t, []string{
		"cart.created",
		"cart.item.added",
		"cart.item.quantity_changed",
		"cart.item.removed",
	}, pub.topics)
}

func TestRemoveAbsentItemPublishesNothing(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(memory.NewCartRepository(), pub)

	require.NoError(t, svc.RemoveItem(context.Background(), "u1", "missing"))
	assert.Empty(t, pub.topics)
}
