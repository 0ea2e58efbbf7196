package queries_test

import (
	"context"
	"testing"
	"time"

	"orderhub/internal/adapters/out/postgres/orderrepo"
	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// buildBurgerOrder creates a pending dine-in order: two burgers at 500 with
// one Extra Cheese modifier at +100, a note on the line, tax 88.
func buildBurgerOrder(t *testing.T, restaurantID kernel.UUID) *order.Order {
	t.Helper()

	cheese, err := order.NewModifierSelection(kernel.NewUUID(), "Extra Cheese", kernel.NewMoney(100))
	require.NoError(t, err)

	line, err := order.NewLineItem(
		kernel.NewUUID(), kernel.NewUUID(), "Burger", kernel.NewMoney(500), 2,
		[]order.ModifierSelection{cheese}, "no onions")
	require.NoError(t, err)

	charges, err := order.NewCharges(
		kernel.NewMoney(1100), kernel.NewMoney(88), kernel.NewMoney(0), kernel.NewMoney(1188))
	require.NoError(t, err)

	fulfillment, err := order.NewFulfillment(order.POS, "12", "", "")
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), restaurantID, order.POS, "20260827-0042",
		fulfillment, []order.LineItem{line}, charges)
	require.NoError(t, err)
	return aggregate
}

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_items, orders").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ExistingOrder_ReturnsFullDetail() {
	ctx := context.Background()
	restaurantID := kernel.NewUUID()
	aggregate := buildBurgerOrder(suite.T(), restaurantID)
	suite.Require().NoError(suite.orderRepo.Add(ctx, aggregate))

	tenant := queryTenant(suite.T(), restaurantID)
	query, err := queries.NewGetOrderQuery(tenant, aggregate.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(result.ID.IsEqual(aggregate.ID()))
	suite.Equal("20260827-0042", result.OrderNumber)
	suite.Equal("pos", result.Channel)
	suite.Equal("pending", result.Status)
	suite.Equal("12", result.TableNumber)
	suite.Equal(int64(1100), result.Subtotal)
	suite.Equal(int64(88), result.Tax)
	suite.Equal(int64(0), result.Tip)
	suite.Equal(int64(1188), result.Total)
	suite.Equal(1, result.Version)

	suite.Require().Len(result.Items, 1)
	item := result.Items[0]
	suite.Equal("Burger", item.Name)
	suite.Equal(int64(500), item.UnitPrice)
	suite.Equal(2, item.Quantity)
	suite.Equal("no onions", item.SpecialInstructions)
	suite.Equal(int64(1100), item.Total)

	suite.Require().Len(item.Modifiers, 1)
	suite.Equal("Extra Cheese", item.Modifiers[0].Name)
	suite.Equal(int64(100), item.Modifiers[0].PriceDelta)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_TransitionedOrder_ReflectsStatusAndReason() {
	ctx := context.Background()
	restaurantID := kernel.NewUUID()
	aggregate := buildBurgerOrder(suite.T(), restaurantID)
	suite.Require().NoError(aggregate.Confirm(false))
	suite.Require().NoError(aggregate.Cancel("guest walked out"))
	suite.Require().NoError(suite.orderRepo.Add(ctx, aggregate))

	tenant := queryTenant(suite.T(), restaurantID)
	query, err := queries.NewGetOrderQuery(tenant, aggregate.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("cancelled", result.Status)
	suite.Equal("guest walked out", result.StatusReason)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_OtherTenantsOrder_ReturnsNotFound() {
	ctx := context.Background()
	owner := kernel.NewUUID()
	aggregate := buildBurgerOrder(suite.T(), owner)
	suite.Require().NoError(suite.orderRepo.Add(ctx, aggregate))

	intruder := queryTenant(suite.T(), kernel.NewUUID())
	query, err := queries.NewGetOrderQuery(intruder, aggregate.ID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFound() {
	tenant := queryTenant(suite.T(), kernel.NewUUID())
	query, err := queries.NewGetOrderQuery(tenant, kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalidQuery queries.GetOrderQuery

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
