package cmd

import (
	"log/slog"
	"time"

	"bookstore/internal/adapters/out/eventbus"
	"bookstore/internal/adapters/out/postgres"
	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/ports"
	"bookstore/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters and use case handlers together.
// Each Create* method builds a fresh handler; the shared pieces are the
// database handle, the unit of work factory and the event bus.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	eventBus   ports.EventPublisher
	config     Config
}

// NewCompositionRoot builds the object graph for the given configuration.
// The in-process event bus is created here and pre-wired with the logging
// subscribers, so every placed or cancelled order leaves a log trail.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	bus := eventbus.NewInMemoryEventBus()
	eventbus.RegisterLoggingSubscribers(bus, logger)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		eventBus:   bus,
		config:     config,
	}
}

// EventBus exposes the publisher for additional subscribers.
func (c *CompositionRoot) EventBus() ports.EventPublisher {
	return c.eventBus
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddItemCommandHandler() commands.AddItemCommandHandler {
	return commands.NewAddItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRemoveItemCommandHandler() commands.RemoveItemCommandHandler {
	return commands.NewRemoveItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateItemQuantityCommandHandler() commands.UpdateItemQuantityCommandHandler {
	return commands.NewUpdateItemQuantityCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.eventBus)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.eventBus)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleDraftOrdersQueryHandler() queries.GetStaleDraftOrdersQueryHandler {
	return queries.NewGetStaleDraftOrdersQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs with their handlers.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	ttl := c.config.DraftOrderTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	cancelHandler := c.CreateCancelOrderCommandHandler()
	draftExpiryJob := jobs.NewDraftExpiryJob(
		c.CreateGetStaleDraftOrdersQueryHandler(),
		&cancelHandler,
		ttl,
		logger,
	)

	return jobs.NewJobManager(draftExpiryJob)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
