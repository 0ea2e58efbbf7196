package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "orderhub/internal/adapters/out/postgres"
	"orderhub/internal/adapters/out/postgres/menurepo"
	"orderhub/internal/adapters/out/postgres/orderrepo"
	"orderhub/internal/adapters/out/postgres/restaurantrepo"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/menu"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/model/restaurant"
	"orderhub/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&menurepo.MenuItemDTO{},
		&menurepo.MenuModifierDTO{},
		&restaurantrepo.RestaurantDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE order_items, orders, menu_item_modifiers, menu_items, restaurants").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.MenuRepository(), "First instance should provide menu repository")
	suite.NotNil(uow1.RestaurantRepository(), "First instance should provide restaurant repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SubmissionWorkflow runs the order intake path end to end:
// the catalog is read and the order inserted within one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SubmissionWorkflow() {
	ctx := context.Background()
	restaurantID := kernel.NewUUID()
	burgerID := suite.seedCatalog(restaurantID)

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	items, err := uow.MenuRepository().GetItems(ctx, restaurantID, []kernel.UUID{burgerID})
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)

	testOrder := suite.buildOrderFromCatalog(restaurantID, items[0])
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.OrderRepository().Get(ctx, restaurantID, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal("Burger", retrieved.Items()[0].Name())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	restaurantID := kernel.NewUUID()
	burgerID := suite.seedCatalog(restaurantID)

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	items, err := uow.MenuRepository().GetItems(ctx, restaurantID, []kernel.UUID{burgerID})
	suite.Require().NoError(err)
	testOrder := suite.buildOrderFromCatalog(restaurantID, items[0])

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Visible inside the transaction.
	_, err = uow.OrderRepository().Get(ctx, restaurantID, testOrder.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, restaurantID, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	restaurantID := kernel.NewUUID()
	burgerID := suite.seedCatalog(restaurantID)

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)
	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	items, err := uow1.MenuRepository().GetItems(ctx, restaurantID, []kernel.UUID{burgerID})
	suite.Require().NoError(err)
	order1 := suite.buildOrderFromCatalog(restaurantID, items[0])
	order2 := suite.buildOrderFromCatalog(restaurantID, items[0])

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)
	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	// Each transaction should only see its own changes.
	_, err = uow1.OrderRepository().Get(ctx, restaurantID, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")
	_, err = uow1.OrderRepository().Get(ctx, restaurantID, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")
	_, err = uow2.OrderRepository().Get(ctx, restaurantID, order2.ID())
	suite.Require().NoError(err, "UOW2 should see order2")
	_, err = uow2.OrderRepository().Get(ctx, restaurantID, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)
	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, restaurantID, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")
	_, err = newUow.OrderRepository().Get(ctx, restaurantID, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	restaurantID := kernel.NewUUID()
	burgerID := suite.seedCatalog(restaurantID)

	uow := suite.factory.Create()
	items, err := uow.MenuRepository().GetItems(ctx, restaurantID, []kernel.UUID{burgerID})
	suite.Require().NoError(err)
	testOrder := suite.buildOrderFromCatalog(restaurantID, items[0])

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.OrderRepository().Get(ctx, restaurantID, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(testOrder.ID()))
}

// TestUnitOfWork_RestaurantLookup verifies restaurant records round-trip
// through the repository.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RestaurantLookup() {
	ctx := context.Background()

	id := kernel.NewUUID()
	aggregate, err := restaurant.NewRestaurant(id, "Pine Street Diner", "owner@pine.example", "+1 555 0100")
	suite.Require().NoError(err)

	repo := restaurantrepo.NewGormRestaurantRepository(suite.db)
	suite.Require().NoError(repo.Add(ctx, aggregate))

	uow := suite.factory.Create()
	retrieved, err := uow.RestaurantRepository().Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal("Pine Street Diner", retrieved.Name())

	_, err = uow.RestaurantRepository().Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
}

// seedCatalog inserts one available burger at 500 with an Extra Cheese
// modifier at +100, returning the item id.
func (suite *UnitOfWorkIntegrationTestSuite) seedCatalog(restaurantID kernel.UUID) kernel.UUID {
	burgerID := kernel.NewUUID()
	item := menurepo.MenuItemDTO{
		ID:           burgerID.Bytes(),
		RestaurantID: restaurantID.Bytes(),
		Name:         "Burger",
		Price:        500,
		Available:    true,
		Modifiers: []menurepo.MenuModifierDTO{
			{
				ID:         kernel.NewUUID().Bytes(),
				Name:       "Extra Cheese",
				PriceDelta: 100,
			},
		},
	}
	suite.Require().NoError(suite.db.Create(&item).Error)
	return burgerID
}

// buildOrderFromCatalog creates a pending dine-in order of two units of the
// given catalog item, without modifiers.
func (suite *UnitOfWorkIntegrationTestSuite) buildOrderFromCatalog(
	restaurantID kernel.UUID,
	item *menu.Item,
) *order.Order {
	line, err := order.NewLineItem(
		kernel.NewUUID(), item.ID(), item.Name(), item.Price(), 2, nil, "")
	suite.Require().NoError(err)

	subtotal := line.Total()
	charges, err := order.NewCharges(subtotal, kernel.NewMoney(0), kernel.NewMoney(0), subtotal)
	suite.Require().NoError(err)

	fulfillment, err := order.NewFulfillment(order.POS, "7", "", "")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), restaurantID, order.POS, "20260827-0007",
		fulfillment, []order.LineItem{line}, charges)
	suite.Require().NoError(err)
	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
