package cmd

import (
	"log/slog"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/kafka"
	"orderflow/internal/adapters/out/matching"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/broker"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// CompositionRoot wires every dependency explicitly, without a DI
// framework. Constructed once at process start.
type CompositionRoot struct {
	config Config

	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	policyEngine  services.PolicyEngine
	aggregator    services.RatingAggregator
	courierClient ports.CourierClient
	publisher     ports.OrderEventPublisher
	statusBroker  *broker.CourierStatusBroker

	registry *prometheus.Registry
	metrics  *httpin.Metrics
	logger   *slog.Logger
}

// NewCompositionRoot builds the object graph from the loaded configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	metrics := httpin.NewMetrics(registry)

	return &CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB),
		policyEngine:  services.NewPolicyEngine(),
		aggregator:    services.NewRatingAggregator(),
		courierClient: matching.NewClient(config.MatchingServiceURL),
		publisher:     kafka.NewPublisher(config.KafkaHost, config.KafkaOrderChangedTopic),
		statusBroker:  broker.NewCourierStatusBroker(metrics.BrokerSubscribers),
		registry:      registry,
		metrics:       metrics,
		logger:        logger,
	}
}

// StatusBroker exposes the notification broker.
func (c *CompositionRoot) StatusBroker() *broker.CourierStatusBroker {
	return c.statusBroker
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(
		f, &c.policyEngine, c.courierClient, c.publisher, c.logger,
	)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, &c.policyEngine, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateEstimateDeliveryCommandHandler() commands.EstimateDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEstimateDeliveryCommandHandler(
		f, &c.policyEngine, &c.aggregator, c.courierClient, c.publisher,
		c.config.DeliveryEstimationTime, c.logger,
	)
}

func (c *CompositionRoot) CreateAddToBucketCommandHandler() commands.AddToBucketCommandHandler {
	return commands.NewAddToBucketCommandHandler(c.bucketUoWFactory(), &c.policyEngine)
}

func (c *CompositionRoot) CreateRemoveFromBucketCommandHandler() commands.RemoveFromBucketCommandHandler {
	return commands.NewRemoveFromBucketCommandHandler(c.bucketUoWFactory(), &c.policyEngine)
}

func (c *CompositionRoot) CreateClearBucketCommandHandler() commands.ClearBucketCommandHandler {
	return commands.NewClearBucketCommandHandler(c.bucketUoWFactory(), &c.policyEngine)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.productUoWFactory(), &c.policyEngine)
}

func (c *CompositionRoot) CreateUpdateProductCommandHandler() commands.UpdateProductCommandHandler {
	return commands.NewUpdateProductCommandHandler(c.productUoWFactory(), &c.policyEngine)
}

func (c *CompositionRoot) CreatePurgeStaleBucketsCommandHandler() commands.PurgeStaleBucketsCommandHandler {
	return commands.NewPurgeStaleBucketsCommandHandler(c.bucketUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, &c.policyEngine)
}

func (c *CompositionRoot) CreateFilterOrdersQueryHandler() queries.FilterOrdersQueryHandler {
	return queries.NewFilterOrdersQueryHandler(c.gormDB, &c.policyEngine)
}

func (c *CompositionRoot) CreateGetOrderItemsQueryHandler() queries.GetOrderItemsQueryHandler {
	return queries.NewGetOrderItemsQueryHandler(c.gormDB, &c.policyEngine)
}

func (c *CompositionRoot) CreateGetBucketItemsQueryHandler() queries.GetBucketItemsQueryHandler {
	return queries.NewGetBucketItemsQueryHandler(c.gormDB, &c.policyEngine)
}

func (c *CompositionRoot) CreateGetProductQueryHandler() queries.GetProductQueryHandler {
	return queries.NewGetProductQueryHandler(c.gormDB, &c.policyEngine)
}

func (c *CompositionRoot) CreateListProductsQueryHandler() queries.ListProductsQueryHandler {
	return queries.NewListProductsQueryHandler(c.gormDB, &c.policyEngine)
}

func (c *CompositionRoot) CreateWaitForCourierQueryHandler() queries.WaitForCourierQueryHandler {
	return queries.NewWaitForCourierQueryHandler(c.courierClient, &c.policyEngine)
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePurgeStaleBucketsCommandHandler(),
		c.config.BucketTTL,
		c.logger,
	)
}

// CreateHTTPServer wires the inbound HTTP surface.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateEstimateDeliveryCommandHandler(),
		c.CreateAddToBucketCommandHandler(),
		c.CreateRemoveFromBucketCommandHandler(),
		c.CreateClearBucketCommandHandler(),
		c.CreateCreateProductCommandHandler(),
		c.CreateUpdateProductCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateFilterOrdersQueryHandler(),
		c.CreateGetOrderItemsQueryHandler(),
		c.CreateGetBucketItemsQueryHandler(),
		c.CreateGetProductQueryHandler(),
		c.CreateListProductsQueryHandler(),
		c.CreateWaitForCourierQueryHandler(),
		c.statusBroker,
		httpin.NewClaimsMiddleware([]byte(c.config.JWTSecret)),
		c.metrics,
		c.registry,
	)
}

func (c *CompositionRoot) bucketUoWFactory() commands.BucketUoWFactory {
	return FuncBucketUoWFactory(func() commands.BucketUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) productUoWFactory() commands.ProductUoWFactory {
	return FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBucketUoWFactory func() commands.BucketUoW

func (f FuncBucketUoWFactory) Create() commands.BucketUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
