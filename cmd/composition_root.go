package cmd

import (
	"log/slog"

	"orderhub/internal/adapters/out/paymentgw"
	"orderhub/internal/adapters/out/postgres"
	"orderhub/internal/adapters/out/redisbus"
	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   *redisbus.RedisNotifier
	payment    *paymentgw.HTTPPaymentAuthorizer
	logger     *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   redisbus.NewRedisNotifier(redisClient, logger),
		payment:    paymentgw.NewHTTPPaymentAuthorizer(configs.PaymentGatewayURL, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) Notifier() ports.Notifier {
	return c.notifier
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.SubmitOrderUoWFactory = FuncSubmitOrderUoWFactory(func() commands.SubmitOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f, c.payment, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateFailStaleOrdersCommandHandler() commands.FailStaleOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFailStaleOrdersCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListActiveOrdersQueryHandler() queries.ListActiveOrdersQueryHandler {
	return queries.NewListActiveOrdersQueryHandler(c.gormDB)
}

type FuncSubmitOrderUoWFactory func() commands.SubmitOrderUoW

func (f FuncSubmitOrderUoWFactory) Create() commands.SubmitOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
