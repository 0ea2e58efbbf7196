package redisbus_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"orderhub/internal/adapters/out/redisbus"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisNotifierTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *goredis.Client
	notifier  *redisbus.RedisNotifier
}

func (suite *RedisNotifierTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = goredis.NewClient(&goredis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())

	suite.notifier = redisbus.NewRedisNotifier(suite.client, slog.New(slog.DiscardHandler))
}

func (suite *RedisNotifierTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *RedisNotifierTestSuite) testEvent(restaurantID kernel.UUID) ports.OrderEvent {
	return ports.OrderEvent{
		OrderID:      kernel.NewUUID(),
		RestaurantID: restaurantID,
		OrderNumber:  "20260827-0042",
		FromStatus:   "pending",
		ToStatus:     "confirmed",
		OccurredAt:   time.Now().UTC(),
	}
}

func (suite *RedisNotifierTestSuite) TestPublishSubscribe_RoundTrip() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	restaurantID := kernel.NewUUID()
	events, err := suite.notifier.Subscribe(ctx, restaurantID)
	suite.Require().NoError(err)

	sent := suite.testEvent(restaurantID)
	sent.Reason = "payment authorized"
	suite.Require().NoError(suite.notifier.Publish(ctx, sent))

	select {
	case received := <-events:
		suite.True(received.OrderID.IsEqual(sent.OrderID))
		suite.True(received.RestaurantID.IsEqual(restaurantID))
		suite.Equal("20260827-0042", received.OrderNumber)
		suite.Equal("pending", received.FromStatus)
		suite.Equal("confirmed", received.ToStatus)
		suite.Equal("payment authorized", received.Reason)
		suite.WithinDuration(sent.OccurredAt, received.OccurredAt, time.Millisecond)
	case <-time.After(5 * time.Second):
		suite.Fail("timed out waiting for published event")
	}
}

func (suite *RedisNotifierTestSuite) TestSubscribe_OtherTenantsEventsAreInvisible() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	restaurantID := kernel.NewUUID()
	events, err := suite.notifier.Subscribe(ctx, restaurantID)
	suite.Require().NoError(err)

	foreign := suite.testEvent(kernel.NewUUID())
	suite.Require().NoError(suite.notifier.Publish(ctx, foreign))

	own := suite.testEvent(restaurantID)
	suite.Require().NoError(suite.notifier.Publish(ctx, own))

	// The first event to arrive must be the tenant's own; the foreign one
	// was published earlier and would have arrived first had it leaked.
	select {
	case received := <-events:
		suite.True(received.OrderID.IsEqual(own.OrderID),
			"Subscriber should only see its own restaurant's events")
	case <-time.After(5 * time.Second):
		suite.Fail("timed out waiting for published event")
	}
}

func (suite *RedisNotifierTestSuite) TestSubscribe_MalformedPayloadIsSkipped() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	restaurantID := kernel.NewUUID()
	events, err := suite.notifier.Subscribe(ctx, restaurantID)
	suite.Require().NoError(err)

	err = suite.client.Publish(ctx, "orders:"+restaurantID.String(), "not json").Err()
	suite.Require().NoError(err)

	sent := suite.testEvent(restaurantID)
	suite.Require().NoError(suite.notifier.Publish(ctx, sent))

	select {
	case received := <-events:
		suite.True(received.OrderID.IsEqual(sent.OrderID),
			"Malformed payload should be skipped, not delivered")
	case <-time.After(5 * time.Second):
		suite.Fail("timed out waiting for published event")
	}
}

func (suite *RedisNotifierTestSuite) TestSubscribe_ContextCancelClosesChannel() {
	ctx, cancel := context.WithCancel(context.Background())

	events, err := suite.notifier.Subscribe(ctx, kernel.NewUUID())
	suite.Require().NoError(err)

	cancel()

	select {
	case _, open := <-events:
		suite.False(open, "Channel should close when the context is cancelled")
	case <-time.After(5 * time.Second):
		suite.Fail("timed out waiting for channel close")
	}
}

func (suite *RedisNotifierTestSuite) TestSubscribe_InvalidRestaurantID() {
	_, err := suite.notifier.Subscribe(context.Background(), kernel.UUID{})
	suite.Require().Error(err)
}

func TestRedisNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(RedisNotifierTestSuite))
}
