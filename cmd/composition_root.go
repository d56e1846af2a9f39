package cmd

import (
	"log/slog"

	"fooddelivery/internal/adapters/out/mongodb/courierstore"
	"fooddelivery/internal/adapters/out/mongodb/orderstore"
	"fooddelivery/internal/adapters/out/mongodb/sessionstore"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/eventbus"
	"fooddelivery/internal/jobs"
	"fooddelivery/internal/notifications"

	"go.mongodb.org/mongo-driver/mongo"
)

type CompositionRoot struct {
	config   Config
	orders   *orderstore.Store
	couriers *courierstore.Store
	sessions *sessionstore.Store
	bus      *eventbus.Bus
	notifier *notifications.Relay
	numbers  *order.NumberGenerator
	logger   *slog.Logger
}

func NewCompositionRoot(config Config, db *mongo.Database, logger *slog.Logger) CompositionRoot {
	bus := eventbus.NewBus(logger)
	sender := notifications.NewLogSender(logger)

	return CompositionRoot{
		config:   config,
		orders:   orderstore.NewStore(db),
		couriers: courierstore.NewStore(db),
		sessions: sessionstore.NewStore(db),
		bus:      bus,
		notifier: notifications.NewRelay(bus, sender, logger),
		numbers:  order.NewNumberGenerator(),
		logger:   logger,
	}
}

// EventBus exposes the bus for the HTTP event stream and shutdown.
func (c *CompositionRoot) EventBus() *eventbus.Bus {
	return c.bus
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orders, c.numbers, c.notifier)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orders, c.notifier)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	config := commands.DispatchConfig{
		RadiusMeters:   c.config.DispatchRadiusMeters,
		CandidateLimit: c.config.DispatchCandidateLimit,
		GeoTimeout:     c.config.DispatchGeoTimeout,
	}
	return commands.NewDispatchOrderCommandHandler(
		c.orders, c.couriers, services.NewCourierSelector(), c.notifier, config, c.logger,
	)
}

func (c *CompositionRoot) CreatePickUpOrderCommandHandler() commands.PickUpOrderCommandHandler {
	return commands.NewPickUpOrderCommandHandler(c.orders, c.notifier)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.orders, c.sessions, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.couriers)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.couriers, c.notifier)
}

func (c *CompositionRoot) CreateStartSessionCommandHandler() commands.StartSessionCommandHandler {
	return commands.NewStartSessionCommandHandler(c.sessions, c.couriers)
}

func (c *CompositionRoot) CreateEndSessionCommandHandler() commands.EndSessionCommandHandler {
	return commands.NewEndSessionCommandHandler(c.sessions)
}

func (c *CompositionRoot) CreateSettleSessionCommandHandler() commands.SettleSessionCommandHandler {
	return commands.NewSettleSessionCommandHandler(c.sessions)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetReadyOrdersQueryHandler() queries.GetReadyOrdersQueryHandler {
	return queries.NewGetReadyOrdersQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetOpenSessionQueryHandler() queries.GetOpenSessionQueryHandler {
	return queries.NewGetOpenSessionQueryHandler(c.sessions)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetReadyOrdersQueryHandler(),
		c.CreateDispatchOrderCommandHandler(),
		c.config.SweepSchedule,
		c.config.SweepBatchSize,
		c.logger,
	)
}
