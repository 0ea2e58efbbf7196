package commands_test

import (
	"context"
	"testing"
	"time"

	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/model/restaurant"
	"orderhub/internal/core/domain/services"
	"orderhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, restaurantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllActive(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockMenuRepository struct{ mock.Mock }

func (m *MockMenuRepository) GetItems(
	ctx context.Context,
	restaurantID kernel.UUID,
	ids []kernel.UUID,
) ([]*menu.Item, error) {
	args := m.Called(ctx, restaurantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.Item), args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

type MockSubmitOrderUoW struct{ mock.Mock }

func (m *MockSubmitOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSubmitOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSubmitOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSubmitOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockSubmitOrderUoW) MenuRepository() ports.MenuRepository {
	args := m.Called()
	return args.Get(0).(ports.MenuRepository)
}
func (m *MockSubmitOrderUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

type MockSubmitOrderUoWFactory struct{ mock.Mock }

func (m *MockSubmitOrderUoWFactory) Create() commands.SubmitOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.SubmitOrderUoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Publish(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockNotifier) Subscribe(ctx context.Context, restaurantID kernel.UUID) (<-chan ports.OrderEvent, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan ports.OrderEvent), args.Error(1)
}

type MockPaymentAuthorizer struct{ mock.Mock }

func (m *MockPaymentAuthorizer) Authorize(
	ctx context.Context,
	orderID kernel.UUID,
	amount kernel.Money,
) (bool, error) {
	args := m.Called(ctx, orderID, amount)
	return args.Bool(0), args.Error(1)
}

// resolvedTenant builds a tenant context for the given role and restaurant.
func resolvedTenant(t *testing.T, role actor.Role, restaurantID kernel.UUID) actor.TenantContext {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role, []kernel.UUID{restaurantID}, "test actor")
	require.NoError(t, err)
	tenant, err := a.ResolveTenant(restaurantID)
	require.NoError(t, err)
	return tenant
}

// openRestaurant builds a stored-looking restaurant for the tenant check.
func openRestaurant(t *testing.T, restaurantID kernel.UUID) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.NewRestaurant(restaurantID, "Test Bistro", "", "")
	require.NoError(t, err)
	return r
}

// testCatalog is one available burger at 500 with an Extra Cheese modifier
// at +100.
func testCatalog(t *testing.T, restaurantID kernel.UUID) (burgerID, cheeseID kernel.UUID, catalog []*menu.Item) {
	t.Helper()
	burgerID = kernel.NewUUID()
	cheeseID = kernel.NewUUID()
	cheese, err := menu.NewModifier(cheeseID, "Extra Cheese", kernel.NewMoney(100))
	require.NoError(t, err)
	burger, err := menu.NewItem(burgerID, restaurantID, "Burger", kernel.NewMoney(500), true,
		[]menu.Modifier{cheese})
	require.NoError(t, err)
	return burgerID, cheeseID, []*menu.Item{burger}
}

// burgerSubmission is 2 burgers with extra cheese applied once:
// 2 * 500 + 100 = 1100, tax 88, total 1188.
func burgerSubmission(channel order.Channel, burgerID, cheeseID kernel.UUID) services.Submission {
	return services.Submission{
		Channel:         channel,
		TableNumber:     "12",
		CustomerName:    "Riley",
		DeliveryAddress: "1 Pine St",
		Items: []services.SubmissionItem{
			{MenuItemID: burgerID, Quantity: 2, ModifierIDs: []kernel.UUID{cheeseID}},
		},
		DeclaredSubtotal: kernel.NewMoney(1100),
		DeclaredTax:      kernel.NewMoney(88),
		DeclaredTip:      kernel.NewMoney(0),
		DeclaredTotal:    kernel.NewMoney(1188),
	}
}

// pendingOrder builds a persisted-looking pending order for transition tests.
func pendingOrder(t *testing.T, restaurantID kernel.UUID) *order.Order {
	t.Helper()

	item, err := order.NewLineItem(
		kernel.NewUUID(), kernel.NewUUID(), "Burger", kernel.NewMoney(500), 2, nil, "")
	require.NoError(t, err)
	charges, err := order.NewCharges(
		kernel.NewMoney(1000), kernel.NewMoney(80), kernel.NewMoney(0), kernel.NewMoney(1080))
	require.NoError(t, err)
	fulfillment, err := order.NewFulfillment(order.POS, "12", "", "")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), restaurantID, order.POS, "20260827-0001",
		fulfillment, []order.LineItem{item}, charges)
	require.NoError(t, err)
	return o
}
