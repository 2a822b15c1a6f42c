package cmd

import (
	"log/slog"

	"marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/clock"

	"gorm.io/gorm"
)

// CompositionRoot wires the use case handlers to their adapters.
// Every handler gets its own narrow unit of work view over one GORM factory.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      clock.Clock
	notifier   ports.Notifier
	codes      ports.CodeGenerator
}

// NewCompositionRoot creates the root using the system clock.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	codes ports.CodeGenerator,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock.System{},
		notifier:   notifier,
		codes:      codes,
	}
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return commands.UnitOfWorkFactoryFunc[commands.CartUoW](func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) checkoutUoWFactory() commands.CheckoutUoWFactory {
	return commands.UnitOfWorkFactoryFunc[commands.CheckoutUoW](func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return commands.UnitOfWorkFactoryFunc[commands.OrderUoW](func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) biddingUoWFactory() commands.BiddingUoWFactory {
	return commands.UnitOfWorkFactoryFunc[commands.BiddingUoW](func() commands.BiddingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return commands.UnitOfWorkFactoryFunc[commands.DeliveryUoW](func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return commands.UnitOfWorkFactoryFunc[commands.OutboxUoW](func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCapabilityResolver() ports.CapabilityResolver {
	return catalogrepo.NewGormCapabilityResolver(c.gormDB)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	return commands.NewDispatchNotificationsCommandHandler(c.outboxUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateOutboxDispatchJob(logger *slog.Logger) *jobs.OutboxDispatchJob {
	return jobs.NewOutboxDispatchJob(
		c.CreateDispatchNotificationsCommandHandler(),
		c.config.OutboxSchedule,
		c.config.OutboxBatchSize,
		c.config.OutboxMaxAttempts,
		logger,
	)
}

// CreateHTTPHandlers wires every use case exposed over HTTP.
func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	awarder := services.NewBidAwarder()
	finalizer := services.NewDeliveryFinalizer()

	return http.Handlers{
		GetCart: queries.NewGetCartQueryHandler(
			commands.UnitOfWorkFactoryFunc[queries.CartUoW](func() queries.CartUoW {
				return c.uowFactory.Create()
			}),
		),
		AddCartItem:        commands.NewAddCartItemCommandHandler(c.cartUoWFactory()),
		UpdateCartItem:     commands.NewUpdateCartItemCommandHandler(c.cartUoWFactory()),
		RemoveCartItem:     commands.NewRemoveCartItemCommandHandler(c.cartUoWFactory()),
		SetCartFulfillment: commands.NewSetCartFulfillmentCommandHandler(c.cartUoWFactory()),
		ClearCart:          commands.NewClearCartCommandHandler(c.cartUoWFactory()),

		Checkout:       commands.NewCheckoutCommandHandler(c.checkoutUoWFactory(), c.clock),
		ConfirmOrder:   commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.clock),
		MarkOrderReady: commands.NewMarkOrderReadyCommandHandler(c.orderUoWFactory(), c.clock),

		ListOpenOrders:      queries.NewListOpenOrdersQueryHandler(c.gormDB),
		CheckBidEligibility: queries.NewCheckBidEligibilityQueryHandler(c.gormDB, c.clock),
		ListBids: queries.NewListBidsQueryHandler(
			commands.UnitOfWorkFactoryFunc[queries.BidsUoW](func() queries.BidsUoW {
				return c.uowFactory.Create()
			}),
			c.clock,
		),
		SubmitBid: commands.NewSubmitBidCommandHandler(c.biddingUoWFactory(), c.clock),
		AcceptBid: commands.NewAcceptBidCommandHandler(c.biddingUoWFactory(), awarder, c.clock),

		IssueDeliveryCode:  commands.NewIssueDeliveryCodeCommandHandler(c.deliveryUoWFactory(), c.codes),
		RecordLocation:     commands.NewRecordLocationCommandHandler(c.deliveryUoWFactory(), c.clock),
		MarkPickedUp:       commands.NewMarkPickedUpCommandHandler(c.deliveryUoWFactory(), c.clock),
		MarkDelivered:      commands.NewMarkDeliveredCommandHandler(c.deliveryUoWFactory(), finalizer, c.clock),
		VerifyDelivery:     commands.NewVerifyDeliveryCommandHandler(c.deliveryUoWFactory(), finalizer, c.clock),
		GetTracking:        queries.NewGetTrackingQueryHandler(c.gormDB),
		GetNavigationLinks: queries.NewGetNavigationLinksQueryHandler(c.gormDB),
	}
}
