package cmd

import (
	"log/slog"

	httpin "dropship/internal/adapters/in/http"
	"dropship/internal/adapters/out/catalog"
	"dropship/internal/adapters/out/forwarder"
	"dropship/internal/adapters/out/postgres"
	"dropship/internal/adapters/out/supplier"
	"dropship/internal/core/application/usecases/commands"
	"dropship/internal/core/application/usecases/queries"
	"dropship/internal/core/domain/services"
	"dropship/internal/jobs"
	"dropship/internal/pkg/cache"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	router     services.FailureRouter

	supplierGateway  *supplier.Client
	forwarderGateway *forwarder.Client
	catalogClient    *catalog.Client
	logger           *slog.Logger
}

// NewCompositionRoot builds the object graph from the given config and an
// open database handle.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	supplierGateway, err := supplier.NewClient(supplier.Config{
		BaseURL: config.SupplierAPIURL,
		APIKey:  config.SupplierAPIKey,
		Timeout: config.ExternalTimeout,
	})
	if err != nil {
		return CompositionRoot{}, err
	}

	forwarderGateway, err := forwarder.NewClient(forwarder.Config{
		BaseURL: config.ForwarderAPIURL,
		APIKey:  config.ForwarderAPIKey,
		Timeout: config.ExternalTimeout,
	})
	if err != nil {
		return CompositionRoot{}, err
	}

	var productCache cache.Cache
	if config.RedisAddr != "" {
		productCache = cache.NewRedisCache(config.RedisAddr, "dropship")
	}
	catalogClient, err := catalog.NewClient(catalog.Config{
		BaseURL:  config.CatalogAPIURL,
		Timeout:  config.ExternalTimeout,
		CacheTTL: config.CatalogCacheTTL,
	}, productCache, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:           config,
		gormDB:           gormDB,
		uowFactory:       *postgres.NewGormUnitOfWorkFactory(gormDB),
		router:           services.NewFailureRouter(config.TransientErrorCodes, config.FatalErrorCodes),
		supplierGateway:  supplierGateway,
		forwarderGateway: forwarderGateway,
		catalogClient:    catalogClient,
		logger:           logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.catalogClient)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetBuyerInfoCommandHandler() commands.SetBuyerInfoCommandHandler {
	return commands.NewSetBuyerInfoCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreatePlaceSupplierOrderCommandHandler() commands.PlaceSupplierOrderCommandHandler {
	return commands.NewPlaceSupplierOrderCommandHandler(
		c.orderUoWFactory(), c.supplierGateway, c.router, c.config.MaxRetries)
}

func (c *CompositionRoot) CreateSubmitShipmentCommandHandler() commands.SubmitShipmentCommandHandler {
	return commands.NewSubmitShipmentCommandHandler(
		c.fullUoWFactory(), c.forwarderGateway, c.router, c.config.MaxRetries)
}

func (c *CompositionRoot) CreateRetryOrderCommandHandler() commands.RetryOrderCommandHandler {
	supplierStep := c.CreatePlaceSupplierOrderCommandHandler()
	shipmentStep := c.CreateSubmitShipmentCommandHandler()
	return commands.NewRetryOrderCommandHandler(c.orderUoWFactory(), &supplierStep, &shipmentStep)
}

func (c *CompositionRoot) CreateMarkManualReviewCommandHandler() commands.MarkManualReviewCommandHandler {
	return commands.NewMarkManualReviewCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateResolveManualReviewCommandHandler() commands.ResolveManualReviewCommandHandler {
	return commands.NewResolveManualReviewCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderAuditTrailQueryHandler() queries.GetOrderAuditTrailQueryHandler {
	return queries.NewGetOrderAuditTrailQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP server with all handlers wired.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateSetBuyerInfoCommandHandler(),
		c.CreateRetryOrderCommandHandler(),
		c.CreateMarkManualReviewCommandHandler(),
		c.CreateResolveManualReviewCommandHandler(),
		c.CreateGetOrdersByStatusQueryHandler(),
		c.CreateGetOrderAuditTrailQueryHandler(),
	)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetOrdersByStatusQueryHandler(),
		c.CreatePlaceSupplierOrderCommandHandler(),
		c.CreateSubmitShipmentCommandHandler(),
		c.CreateRetryOrderCommandHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
